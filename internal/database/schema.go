package database

import (
	"fmt"

	"roomboard/internal/models"

	"gorm.io/gorm"
)

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Theme{},
		&models.Room{},
		&models.RoomParticipant{},
		&models.Comment{},
	}
}

// Migrate registers the participant join model and auto-migrates every model.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.Room{}, "Participants", &models.RoomParticipant{}); err != nil {
		return fmt.Errorf("setup room participants join table: %w", err)
	}
	return db.AutoMigrate(PersistentModels()...)
}
