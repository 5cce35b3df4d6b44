// Package repository implements the data access layer for the application.
package repository

import (
	"errors"
	"strings"

	"roomboard/internal/models"

	"gorm.io/gorm"
)

// likeEscape is the escape character declared in every LIKE clause built by containsPattern.
const likeEscape = `\`

// containsPattern turns q into a lowercased LIKE pattern matching q as a literal substring.
func containsPattern(q string) string {
	r := strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")
	return "%" + r.Replace(strings.ToLower(q)) + "%"
}

// ilike builds a case-insensitive substring predicate over expr for use with containsPattern.
func ilike(expr string) string {
	return "LOWER(" + expr + ") LIKE ? ESCAPE '" + likeEscape + "'"
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

// lookupError maps a single-row lookup failure to an AppError.
func lookupError(err error, resource string, id interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	return models.NewInternalError(err)
}

func internal(err error) error {
	if err == nil {
		return nil
	}
	return models.NewInternalError(err)
}
