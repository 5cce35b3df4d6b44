package service

import (
	"context"
	"errors"
	"strings"

	"roomboard/internal/models"
	"roomboard/internal/repository"
	"roomboard/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// AuthService registers and authenticates users.
type AuthService struct {
	userRepo repository.UserRepository
	cost     int
}

// RegisterInput is the registration form.
type RegisterInput struct {
	Username  string
	Email     string
	Password1 string
	Password2 string
}

// NewAuthService builds an AuthService hashing with cost; zero means bcrypt.DefaultCost.
func NewAuthService(userRepo repository.UserRepository, cost int) *AuthService {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &AuthService{userRepo: userRepo, cost: cost}
}

// NormalizeUsername trims and lowercases a submitted username.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// Register validates the signup form and persists the user with a bcrypt hash.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	username := NormalizeUsername(in.Username)
	email := strings.TrimSpace(in.Email)

	errs := validation.FieldErrors{}
	errs.AddErr("username", validation.ValidateUsername(username))
	errs.AddErr("email", validation.ValidateEmail(email))
	if in.Password1 != in.Password2 {
		errs.Add("password2", "The two password fields didn't match.")
	}
	errs.AddErr("password1", validation.ValidatePassword(in.Password1, username))

	if _, taken := errs["username"]; !taken && username != "" {
		existing, err := s.userRepo.GetByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			errs.Add("username", "A user with that username already exists.")
		}
	}
	if err := fieldErrors(errs); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password1), s.cost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks a username/password pair. A missing user stops before any
// password comparison.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, NormalizeUsername(username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnknownUser
	}
	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); cmpErr != nil {
		if errors.Is(cmpErr, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrBadCredentials
		}
		return nil, models.NewInternalError(cmpErr)
	}
	return user, nil
}
