package repository

import (
	"context"
	"testing"

	"roomboard/internal/database"
	"roomboard/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	return gormDB, mock
}

// setupTestDB opens a migrated in-memory sqlite database. A single connection
// keeps every query on the same in-memory schema.
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(database.SQLiteDialector(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	u := &models.User{Username: username, Password: "hash"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createRoom(t *testing.T, db *gorm.DB, author *models.User, theme *models.Theme, name, description string) *models.Room {
	room := &models.Room{Name: name, Description: description}
	if author != nil {
		room.AuthorID = &author.ID
	}
	if theme != nil {
		room.ThemeID = &theme.ID
	}
	require.NoError(t, NewRoomRepository(db).Create(context.Background(), room))
	return room
}
