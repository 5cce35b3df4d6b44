// Package seed creates demo data for development databases and tests.
package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"roomboard/internal/models"
	"roomboard/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password every seeded user gets.
const DefaultPassword = "password123"

// Factory builds domain entities and persists them through the repositories,
// so seeded data obeys the same get-or-create and participant rules as the app.
type Factory struct {
	db       *gorm.DB
	opts     Options
	themes   repository.ThemeRepository
	rooms    repository.RoomRepository
	password string
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	if opts.RandSeed != 0 {
		gofakeit.Seed(opts.RandSeed)
	} else {
		gofakeit.Seed(time.Now().UnixNano())
	}
	return &Factory{
		db:     db,
		opts:   opts,
		themes: repository.NewThemeRepository(db),
		rooms:  repository.NewRoomRepository(db),
	}
}

// hashedPassword hashes DefaultPassword once per factory.
func (f *Factory) hashedPassword() (string, error) {
	if f.password != "" {
		return f.password, nil
	}
	cost := bcrypt.DefaultCost
	if f.opts.FastHash {
		cost = bcrypt.MinCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), cost)
	if err != nil {
		return "", err
	}
	f.password = string(hash)
	return f.password, nil
}

// fakeUsername returns a lowercase username limited to letters and digits.
func fakeUsername() string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		}
		return -1
	}, gofakeit.Username())
	return fmt.Sprintf("%s%d", name, gofakeit.Number(100, 999))
}

func fakeRoomName() string {
	adj := gofakeit.Adjective()
	if adj != "" {
		adj = strings.ToUpper(adj[:1]) + adj[1:]
	}
	return strings.TrimSpace(adj + " " + gofakeit.Noun())
}

// CreateUser constructs and persists a sample user.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(ctx context.Context, overrides ...func(*models.User)) (*models.User, error) {
	password, err := f.hashedPassword()
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username: fakeUsername(),
		Email:    gofakeit.Email(),
		Bio:      gofakeit.Sentence(10),
		Password: password,
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateRoom persists a room by author under the theme titled theme (created on first use).
func (f *Factory) CreateRoom(ctx context.Context, author *models.User, theme string, overrides ...func(*models.Room)) (*models.Room, error) {
	t, err := f.themes.GetOrCreate(ctx, theme)
	if err != nil {
		return nil, err
	}

	room := &models.Room{
		AuthorID:    &author.ID,
		Name:        fakeRoomName(),
		Description: gofakeit.Paragraph(1, 2, 8, " "),
	}
	if t != nil {
		room.ThemeID = &t.ID
	}
	for _, override := range overrides {
		override(room)
	}

	if err := f.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// CreateComment posts a sample comment by author in room, joining author to the room.
func (f *Factory) CreateComment(ctx context.Context, author *models.User, room *models.Room, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		AuthorID: author.ID,
		RoomID:   room.ID,
		Text:     gofakeit.Sentence(8),
	}
	for _, override := range overrides {
		override(comment)
	}

	if err := f.rooms.AddComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}
