package seed

import (
	"context"
	"fmt"
	"log/slog"

	"roomboard/internal/middleware"
	"roomboard/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// DefaultThemes are the topics seeded rooms are spread across.
var DefaultThemes = []string{"Games", "Music", "Python", "Go", "Cooking", "Movies"}

// Options controls how much demo data Seed creates.
type Options struct {
	Users           int
	Rooms           int
	CommentsPerRoom int
	// Clean wipes existing rows first.
	Clean bool
	// FastHash hashes the shared password at bcrypt.MinCost.
	FastHash bool
	// RandSeed makes gofakeit output reproducible when non-zero.
	RandSeed int64
}

// DefaultOptions returns a small but browsable data set.
func DefaultOptions() Options {
	return Options{Users: 10, Rooms: 15, CommentsPerRoom: 5, Clean: true}
}

// Stats reports what Seed created.
type Stats struct {
	Users    int
	Rooms    int
	Comments int
}

// Seed populates db with users, themed rooms, and comments.
func Seed(ctx context.Context, db *gorm.DB, opts Options) (Stats, error) {
	var stats Stats
	if opts.Users <= 0 {
		return stats, fmt.Errorf("seed needs at least one user")
	}
	if opts.Clean {
		if err := ClearAll(ctx, db); err != nil {
			return stats, fmt.Errorf("clear data: %w", err)
		}
	}

	f := NewFactory(db, opts)

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user, err := f.CreateUser(ctx)
		if err != nil {
			return stats, fmt.Errorf("create user: %w", err)
		}
		users = append(users, user)
	}
	stats.Users = len(users)

	for i := 0; i < opts.Rooms; i++ {
		author := users[gofakeit.Number(0, len(users)-1)]
		room, err := f.CreateRoom(ctx, author, gofakeit.RandomString(DefaultThemes))
		if err != nil {
			return stats, fmt.Errorf("create room: %w", err)
		}
		stats.Rooms++

		for j := 0; j < opts.CommentsPerRoom; j++ {
			commenter := users[gofakeit.Number(0, len(users)-1)]
			if _, err := f.CreateComment(ctx, commenter, room); err != nil {
				return stats, fmt.Errorf("create comment: %w", err)
			}
			stats.Comments++
		}
	}

	middleware.Logger.InfoContext(ctx, "seed complete",
		slog.Int("users", stats.Users),
		slog.Int("rooms", stats.Rooms),
		slog.Int("comments", stats.Comments))
	return stats, nil
}

// ClearAll deletes every row, children first.
func ClearAll(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, model := range []any{&models.Comment{}, &models.RoomParticipant{}, &models.Room{}, &models.Theme{}, &models.User{}} {
			if err := all.Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
