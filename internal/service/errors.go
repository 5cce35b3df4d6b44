// Package service holds the business rules between the HTTP handlers and the repositories.
package service

import (
	"errors"

	"roomboard/internal/models"
	"roomboard/internal/validation"
)

// NotAllowedMessage is shown to an actor who does not own the resource.
const NotAllowedMessage = "You are not allowed here!"

var (
	// ErrUnknownUser is returned by Authenticate when no user has the given username.
	ErrUnknownUser = errors.New("User does not exist")
	// ErrBadCredentials is returned by Authenticate when the password does not match.
	ErrBadCredentials = errors.New("Incorrect username or password")
)

func notAllowed() error {
	return models.NewUnauthorizedError(NotAllowedMessage)
}

func fieldErrors(errs validation.FieldErrors) error {
	if errs.Empty() {
		return nil
	}
	return models.NewFieldValidationError(errs)
}
