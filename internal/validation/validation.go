// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	MaxUsernameLen    = 150
	MinPasswordLen    = 8
	MaxPasswordLen    = 128
	MaxEmailLen       = 254
	MaxBioLen         = 500
	MaxRoomNameLen    = 100
	MaxThemeTitleLen  = 100
	MaxCommentTextLen = 10000
)

var (
	usernameRegex = regexp.MustCompile(`^[A-Za-z0-9@.+_-]+$`)
	numericRegex  = regexp.MustCompile(`^[0-9]+$`)
)

var validate = validator.New()

var commonPasswords = map[string]struct{}{
	"password":    {},
	"password1":   {},
	"password123": {},
	"12345678":    {},
	"123456789":   {},
	"qwerty123":   {},
	"iloveyou":    {},
	"11111111":    {},
	"sunshine":    {},
	"letmein1":    {},
	"football":    {},
	"baseball":    {},
	"welcome1":    {},
	"abc12345":    {},
	"admin123":    {},
}

// FieldErrors collects validation messages per form field.
type FieldErrors map[string][]string

// Add records msg against field.
func (f FieldErrors) Add(field, msg string) {
	f[field] = append(f[field], msg)
}

// AddErr records err's message against field when err is non-nil.
func (f FieldErrors) AddErr(field string, err error) {
	if err != nil {
		f.Add(field, err.Error())
	}
}

// Empty reports whether no field failed.
func (f FieldErrors) Empty() bool {
	return len(f) == 0
}

// ValidateUsername checks if a username meets requirements
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username is required")
	}
	if utf8.RuneCountInString(username) > MaxUsernameLen {
		return fmt.Errorf("username must not exceed %d characters", MaxUsernameLen)
	}
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username may contain only letters, numbers, and @/./+/-/_ characters")
	}
	return nil
}

// ValidatePassword checks a new password against length, numeric-only, common-password,
// and username-similarity rules.
func ValidatePassword(password, username string) error {
	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}
	if len(password) > MaxPasswordLen {
		return fmt.Errorf("password must not exceed %d characters", MaxPasswordLen)
	}
	if numericRegex.MatchString(password) {
		return fmt.Errorf("password cannot be entirely numeric")
	}
	if _, common := commonPasswords[strings.ToLower(password)]; common {
		return fmt.Errorf("password is too common")
	}
	if username != "" && strings.EqualFold(password, username) {
		return fmt.Errorf("password is too similar to the username")
	}
	return nil
}

// ValidateEmail checks basic email format. An empty email is allowed.
func ValidateEmail(email string) error {
	if email == "" {
		return nil
	}
	if len(email) > MaxEmailLen {
		return fmt.Errorf("email must not exceed %d characters", MaxEmailLen)
	}
	if err := validate.Var(email, "email"); err != nil {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidateRoom checks the room form fields.
func ValidateRoom(name, themeTitle string) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(name) == "" {
		errs.Add("name", "name is required")
	} else if utf8.RuneCountInString(name) > MaxRoomNameLen {
		errs.Add("name", fmt.Sprintf("name must not exceed %d characters", MaxRoomNameLen))
	}
	if utf8.RuneCountInString(themeTitle) > MaxThemeTitleLen {
		errs.Add("theme", fmt.Sprintf("theme must not exceed %d characters", MaxThemeTitleLen))
	}
	return errs
}

// ValidateCommentText checks a comment body. Empty text is allowed and replaced by a default.
func ValidateCommentText(text string) error {
	if utf8.RuneCountInString(text) > MaxCommentTextLen {
		return fmt.Errorf("comment too long (max %d characters)", MaxCommentTextLen)
	}
	return nil
}

// ValidateBio checks the profile bio length.
func ValidateBio(bio string) error {
	if utf8.RuneCountInString(bio) > MaxBioLen {
		return fmt.Errorf("bio too long (max %d characters)", MaxBioLen)
	}
	return nil
}
