package service

import (
	"context"
	"errors"
	"testing"

	"roomboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	deleteFn        func(context.Context, uint) error
	listFn          func(context.Context) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }
func (s *userRepoStub) List(ctx context.Context) ([]models.User, error) {
	return s.listFn(ctx)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "user"}, nil
		},
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
		listFn:          func(_ context.Context) ([]models.User, error) { return nil, nil },
	}
}

// roomRepoStub is a stub for repository.RoomRepository.
type roomRepoStub struct {
	createFn           func(context.Context, *models.Room) error
	getByIDFn          func(context.Context, uint) (*models.Room, error)
	searchFn           func(context.Context, string) ([]models.Room, error)
	listFn             func(context.Context) ([]models.Room, error)
	listByAuthorFn     func(context.Context, uint) ([]models.Room, error)
	updateFn           func(context.Context, *models.Room) error
	deleteFn           func(context.Context, uint) error
	addCommentFn       func(context.Context, *models.Comment) error
	listParticipantsFn func(context.Context, uint) ([]models.User, error)
}

func (s *roomRepoStub) Create(ctx context.Context, room *models.Room) error {
	return s.createFn(ctx, room)
}
func (s *roomRepoStub) GetByID(ctx context.Context, id uint) (*models.Room, error) {
	return s.getByIDFn(ctx, id)
}
func (s *roomRepoStub) Search(ctx context.Context, q string) ([]models.Room, error) {
	return s.searchFn(ctx, q)
}
func (s *roomRepoStub) List(ctx context.Context) ([]models.Room, error) { return s.listFn(ctx) }
func (s *roomRepoStub) ListByAuthor(ctx context.Context, userID uint) ([]models.Room, error) {
	return s.listByAuthorFn(ctx, userID)
}
func (s *roomRepoStub) Update(ctx context.Context, room *models.Room) error {
	return s.updateFn(ctx, room)
}
func (s *roomRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }
func (s *roomRepoStub) AddComment(ctx context.Context, comment *models.Comment) error {
	return s.addCommentFn(ctx, comment)
}
func (s *roomRepoStub) ListParticipants(ctx context.Context, roomID uint) ([]models.User, error) {
	return s.listParticipantsFn(ctx, roomID)
}

func noopRoomRepo() *roomRepoStub {
	return &roomRepoStub{
		createFn: func(_ context.Context, _ *models.Room) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Room, error) {
			return &models.Room{ID: id}, nil
		},
		searchFn:           func(_ context.Context, _ string) ([]models.Room, error) { return nil, nil },
		listFn:             func(_ context.Context) ([]models.Room, error) { return nil, nil },
		listByAuthorFn:     func(_ context.Context, _ uint) ([]models.Room, error) { return nil, nil },
		updateFn:           func(_ context.Context, _ *models.Room) error { return nil },
		deleteFn:           func(_ context.Context, _ uint) error { return nil },
		addCommentFn:       func(_ context.Context, _ *models.Comment) error { return nil },
		listParticipantsFn: func(_ context.Context, _ uint) ([]models.User, error) { return nil, nil },
	}
}

// themeRepoStub is a stub for repository.ThemeRepository.
type themeRepoStub struct {
	getOrCreateFn func(context.Context, string) (*models.Theme, error)
	listFn        func(context.Context, string) ([]models.Theme, error)
	recentFn      func(context.Context, int) ([]models.Theme, error)
	deleteFn      func(context.Context, uint) error
}

func (s *themeRepoStub) GetOrCreate(ctx context.Context, title string) (*models.Theme, error) {
	return s.getOrCreateFn(ctx, title)
}
func (s *themeRepoStub) List(ctx context.Context, q string) ([]models.Theme, error) {
	return s.listFn(ctx, q)
}
func (s *themeRepoStub) Recent(ctx context.Context, limit int) ([]models.Theme, error) {
	return s.recentFn(ctx, limit)
}
func (s *themeRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }

func noopThemeRepo() *themeRepoStub {
	return &themeRepoStub{
		getOrCreateFn: func(_ context.Context, title string) (*models.Theme, error) {
			if title == "" {
				return nil, nil
			}
			return &models.Theme{ID: 1, Title: title}, nil
		},
		listFn:   func(_ context.Context, _ string) ([]models.Theme, error) { return nil, nil },
		recentFn: func(_ context.Context, _ int) ([]models.Theme, error) { return nil, nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	getByIDFn          func(context.Context, uint) (*models.Comment, error)
	listByRoomFn       func(context.Context, uint) ([]models.Comment, error)
	listByAuthorFn     func(context.Context, uint) ([]models.Comment, error)
	listByThemeTitleFn func(context.Context, string) ([]models.Comment, error)
	listAllFn          func(context.Context) ([]models.Comment, error)
	deleteFn           func(context.Context, uint) error
}

func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByRoom(ctx context.Context, roomID uint) ([]models.Comment, error) {
	return s.listByRoomFn(ctx, roomID)
}
func (s *commentRepoStub) ListByAuthor(ctx context.Context, userID uint) ([]models.Comment, error) {
	return s.listByAuthorFn(ctx, userID)
}
func (s *commentRepoStub) ListByThemeTitle(ctx context.Context, q string) ([]models.Comment, error) {
	return s.listByThemeTitleFn(ctx, q)
}
func (s *commentRepoStub) ListAll(ctx context.Context) ([]models.Comment, error) {
	return s.listAllFn(ctx)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error { return s.deleteFn(ctx, id) }

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id}, nil
		},
		listByRoomFn:       func(_ context.Context, _ uint) ([]models.Comment, error) { return nil, nil },
		listByAuthorFn:     func(_ context.Context, _ uint) ([]models.Comment, error) { return nil, nil },
		listByThemeTitleFn: func(_ context.Context, _ string) ([]models.Comment, error) { return nil, nil },
		listAllFn:          func(_ context.Context) ([]models.Comment, error) { return nil, nil },
		deleteFn:           func(_ context.Context, _ uint) error { return nil },
	}
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) *models.AppError {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	return appErr
}

// assertUnauthorizedError asserts that err is an AppError with code UNAUTHORIZED.
func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
}

func uintPtr(v uint) *uint { return &v }
