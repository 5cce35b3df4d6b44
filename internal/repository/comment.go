package repository

import (
	"context"

	"roomboard/internal/models"

	"gorm.io/gorm"
)

const commentOrder = "comments.created_at DESC, comments.id DESC"

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByRoom(ctx context.Context, roomID uint) ([]models.Comment, error)
	ListByAuthor(ctx context.Context, userID uint) ([]models.Comment, error)
	// ListByThemeTitle returns comments whose room's theme title contains q.
	ListByThemeTitle(ctx context.Context, q string) ([]models.Comment, error)
	ListAll(ctx context.Context) ([]models.Comment, error)
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func withCommentRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Author").Preload("Room")
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := withCommentRelations(r.db.WithContext(ctx)).First(&comment, id).Error; err != nil {
		return nil, lookupError(err, "Comment", id)
	}
	return &comment, nil
}

func (r *commentRepository) ListByRoom(ctx context.Context, roomID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).Preload("Author").
		Where("room_id = ?", roomID).
		Order(commentOrder).
		Find(&comments).Error
	if err != nil {
		return nil, internal(err)
	}
	return comments, nil
}

func (r *commentRepository) ListByAuthor(ctx context.Context, userID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := withCommentRelations(r.db.WithContext(ctx)).
		Where("author_id = ?", userID).
		Order(commentOrder).
		Find(&comments).Error
	if err != nil {
		return nil, internal(err)
	}
	return comments, nil
}

func (r *commentRepository) ListByThemeTitle(ctx context.Context, q string) ([]models.Comment, error) {
	var comments []models.Comment
	err := withCommentRelations(r.db.WithContext(ctx)).
		Select("comments.*").
		Joins("JOIN rooms ON rooms.id = comments.room_id").
		Joins("JOIN themes ON themes.id = rooms.theme_id").
		Where(ilike("COALESCE(themes.title, '')"), containsPattern(q)).
		Order(commentOrder).
		Find(&comments).Error
	if err != nil {
		return nil, internal(err)
	}
	return comments, nil
}

func (r *commentRepository) ListAll(ctx context.Context) ([]models.Comment, error) {
	var comments []models.Comment
	if err := withCommentRelations(r.db.WithContext(ctx)).Order(commentOrder).Find(&comments).Error; err != nil {
		return nil, internal(err)
	}
	return comments, nil
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if res.Error != nil {
		return internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Comment", id)
	}
	return nil
}
