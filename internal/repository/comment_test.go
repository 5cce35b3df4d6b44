package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"roomboard/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_Listings(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	rooms := NewRoomRepository(db)
	repo := NewCommentRepository(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	games, err := NewThemeRepository(db).GetOrCreate(ctx, "Games")
	require.NoError(t, err)
	chess := createRoom(t, db, alice, games, "Chess Club", "")
	plain := createRoom(t, db, alice, nil, "Plain", "")

	require.NoError(t, rooms.AddComment(ctx, &models.Comment{AuthorID: alice.ID, RoomID: chess.ID, Text: "first"}))
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, rooms.AddComment(ctx, &models.Comment{AuthorID: bob.ID, RoomID: plain.ID, Text: "untagged"}))
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, rooms.AddComment(ctx, &models.Comment{AuthorID: bob.ID, RoomID: chess.ID, Text: "hello"}))

	t.Run("activity is newest first", func(t *testing.T) {
		all, err := repo.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "hello", all[0].Text)
		require.NotNil(t, all[0].Author)
		assert.Equal(t, "bob", all[0].Author.Username)
		require.NotNil(t, all[0].Room)
		assert.Equal(t, "Chess Club", all[0].Room.Name)
	})

	t.Run("by room", func(t *testing.T) {
		list, err := repo.ListByRoom(ctx, chess.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "hello", list[0].Text)
		assert.Equal(t, "first", list[1].Text)
	})

	t.Run("by author", func(t *testing.T) {
		list, err := repo.ListByAuthor(ctx, bob.ID)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("by theme title skips untagged rooms", func(t *testing.T) {
		list, err := repo.ListByThemeTitle(ctx, "GAM")
		require.NoError(t, err)
		require.Len(t, list, 2)

		list, err = repo.ListByThemeTitle(ctx, "")
		require.NoError(t, err)
		assert.Len(t, list, 2)

		list, err = repo.ListByThemeTitle(ctx, "music")
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestCommentRepository_ListByThemeTitle_NonASCII(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewCommentRepository(db)

	alice := createUser(t, db, "alice")
	cafe, err := NewThemeRepository(db).GetOrCreate(ctx, "CAFÉ Society")
	require.NoError(t, err)
	room := createRoom(t, db, alice, cafe, "Espresso", "")
	require.NoError(t, NewRoomRepository(db).AddComment(ctx, &models.Comment{AuthorID: alice.ID, RoomID: room.ID, Text: "ristretto"}))

	list, err := repo.ListByThemeTitle(ctx, "café")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "ristretto", list[0].Text)
}

func TestCommentRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	alice := createUser(t, db, "alice")
	room := createRoom(t, db, alice, nil, "Chess Club", "")
	comment := &models.Comment{AuthorID: alice.ID, RoomID: room.ID, Text: "bye"}
	require.NoError(t, NewRoomRepository(db).AddComment(ctx, comment))

	repo := NewCommentRepository(db)
	require.NoError(t, repo.Delete(ctx, comment.ID))

	_, err := repo.GetByID(ctx, comment.ID)
	assert.True(t, models.HasCode(err, models.CodeNotFound))
	assert.True(t, models.HasCode(repo.Delete(ctx, comment.ID), models.CodeNotFound))
}

func TestCommentRepository_GetByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewCommentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "comments" WHERE "comments"."id" = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "text"}))

	comment, err := repo.GetByID(context.Background(), 7)
	assert.Nil(t, comment)
	assert.True(t, models.HasCode(err, models.CodeNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
