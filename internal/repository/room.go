package repository

import (
	"context"

	"roomboard/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const roomOrder = "rooms.updated_at DESC, rooms.created_at DESC"

// RoomRepository defines persistence operations for rooms and their participants.
type RoomRepository interface {
	Create(ctx context.Context, room *models.Room) error
	GetByID(ctx context.Context, id uint) (*models.Room, error)
	// Search returns rooms whose theme title, name or description contains q.
	Search(ctx context.Context, q string) ([]models.Room, error)
	List(ctx context.Context) ([]models.Room, error)
	ListByAuthor(ctx context.Context, userID uint) ([]models.Room, error)
	Update(ctx context.Context, room *models.Room) error
	Delete(ctx context.Context, id uint) error
	// AddComment stores comment and joins its author to the room in one transaction.
	AddComment(ctx context.Context, comment *models.Comment) error
	ListParticipants(ctx context.Context, roomID uint) ([]models.User, error)
}

type roomRepository struct {
	db *gorm.DB
}

// NewRoomRepository returns a new RoomRepository implementation.
func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

func withRoomRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Author").Preload("Theme").Preload("Participants", func(db *gorm.DB) *gorm.DB {
		return db.Order("users.id")
	})
}

func (r *roomRepository) Create(ctx context.Context, room *models.Room) error {
	if err := r.db.WithContext(ctx).Omit("Participants").Create(room).Error; err != nil {
		return internal(err)
	}
	return nil
}

func (r *roomRepository) GetByID(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := withRoomRelations(r.db.WithContext(ctx)).First(&room, id).Error; err != nil {
		return nil, lookupError(err, "Room", id)
	}
	return &room, nil
}

func (r *roomRepository) Search(ctx context.Context, q string) ([]models.Room, error) {
	var rooms []models.Room
	query := withRoomRelations(r.db.WithContext(ctx)).
		Select("rooms.*").
		Joins("LEFT JOIN themes ON themes.id = rooms.theme_id")
	if q != "" {
		pattern := containsPattern(q)
		query = query.Where(
			ilike("COALESCE(themes.title, '')")+" OR "+
				ilike("rooms.name")+" OR "+
				ilike("COALESCE(rooms.description, '')"),
			pattern, pattern, pattern,
		)
	}
	if err := query.Order(roomOrder).Find(&rooms).Error; err != nil {
		return nil, internal(err)
	}
	return rooms, nil
}

func (r *roomRepository) List(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if err := withRoomRelations(r.db.WithContext(ctx)).Order(roomOrder).Find(&rooms).Error; err != nil {
		return nil, internal(err)
	}
	return rooms, nil
}

func (r *roomRepository) ListByAuthor(ctx context.Context, userID uint) ([]models.Room, error) {
	var rooms []models.Room
	err := withRoomRelations(r.db.WithContext(ctx)).
		Where("author_id = ?", userID).
		Order(roomOrder).
		Find(&rooms).Error
	if err != nil {
		return nil, internal(err)
	}
	return rooms, nil
}

// Update saves the room's own columns; updated_at is refreshed by GORM.
func (r *roomRepository) Update(ctx context.Context, room *models.Room) error {
	err := r.db.WithContext(ctx).
		Model(room).
		Select("name", "description", "theme_id", "updated_at").
		Updates(map[string]interface{}{
			"name":        room.Name,
			"description": room.Description,
			"theme_id":    room.ThemeID,
		}).Error
	if err != nil {
		return internal(err)
	}
	return nil
}

// Delete removes the room together with its comments and participant rows.
func (r *roomRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("room_id = ?", id).Delete(&models.RoomParticipant{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Room{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return lookupError(err, "Room", id)
	}
	return nil
}

func (r *roomRepository) AddComment(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(comment).Error; err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.RoomParticipant{
			RoomID: comment.RoomID,
			UserID: comment.AuthorID,
		}).Error
	})
	if err != nil {
		return internal(err)
	}
	return nil
}

func (r *roomRepository) ListParticipants(ctx context.Context, roomID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Joins("JOIN room_participants ON room_participants.user_id = users.id").
		Where("room_participants.room_id = ?", roomID).
		Order("users.id").
		Find(&users).Error
	if err != nil {
		return nil, internal(err)
	}
	return users, nil
}
