package service

import (
	"context"
	"strings"

	"roomboard/internal/models"
	"roomboard/internal/policy"
	"roomboard/internal/repository"
	"roomboard/internal/validation"
)

// UserService manages profiles and user accounts.
type UserService struct {
	userRepo    repository.UserRepository
	roomRepo    repository.RoomRepository
	commentRepo repository.CommentRepository
	themeRepo   repository.ThemeRepository
}

// UpdateProfileInput is the update-user form.
type UpdateProfileInput struct {
	Username string
	Email    string
	Bio      string
}

// Profile is a user's page: what they authored plus the theme list.
type Profile struct {
	User     *models.User
	Rooms    []models.Room
	Comments []models.Comment
	Themes   []models.Theme
}

// NewUserService wires a UserService to its repositories.
func NewUserService(
	userRepo repository.UserRepository,
	roomRepo repository.RoomRepository,
	commentRepo repository.CommentRepository,
	themeRepo repository.ThemeRepository,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		roomRepo:    roomRepo,
		commentRepo: commentRepo,
		themeRepo:   themeRepo,
	}
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

// DeleteUser removes a user; their rooms are kept without an author.
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	return s.userRepo.Delete(ctx, id)
}

func (s *UserService) Profile(ctx context.Context, id uint) (*Profile, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rooms, err := s.roomRepo.ListByAuthor(ctx, id)
	if err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByAuthor(ctx, id)
	if err != nil {
		return nil, err
	}
	themes, err := s.themeRepo.List(ctx, "")
	if err != nil {
		return nil, err
	}
	return &Profile{User: user, Rooms: rooms, Comments: comments, Themes: themes}, nil
}

// UpdateProfile edits the actor's own record.
func (s *UserService) UpdateProfile(ctx context.Context, actor policy.Actor, in UpdateProfileInput) (*models.User, error) {
	if !actor.Authenticated() {
		return nil, notAllowed()
	}
	user, err := s.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	username := NormalizeUsername(in.Username)
	email := strings.TrimSpace(in.Email)

	errs := validation.FieldErrors{}
	errs.AddErr("username", validation.ValidateUsername(username))
	errs.AddErr("email", validation.ValidateEmail(email))
	errs.AddErr("bio", validation.ValidateBio(in.Bio))
	if _, bad := errs["username"]; !bad && username != user.Username {
		existing, err := s.userRepo.GetByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != user.ID {
			errs.Add("username", "A user with that username already exists.")
		}
	}
	if err := fieldErrors(errs); err != nil {
		return user, err
	}

	user.Username = username
	user.Email = email
	user.Bio = in.Bio
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
