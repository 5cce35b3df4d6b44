// Package models contains data structures for the application's domain models.
package models

import "time"

// User is an account that can author rooms and comments and join rooms as a participant.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email     string    `gorm:"size:254" json:"email"`
	Bio       string    `gorm:"type:text" json:"bio"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
