package repository

import (
	"context"
	"strings"

	"roomboard/internal/models"

	"gorm.io/gorm"
)

// ThemeRepository defines persistence operations for themes.
type ThemeRepository interface {
	// GetOrCreate returns the theme titled title, creating it on first use.
	// A blank title yields (nil, nil).
	GetOrCreate(ctx context.Context, title string) (*models.Theme, error)
	List(ctx context.Context, q string) ([]models.Theme, error)
	Recent(ctx context.Context, limit int) ([]models.Theme, error)
	Delete(ctx context.Context, id uint) error
}

type themeRepository struct {
	db *gorm.DB
}

// NewThemeRepository returns a new ThemeRepository implementation.
func NewThemeRepository(db *gorm.DB) ThemeRepository {
	return &themeRepository{db: db}
}

func (r *themeRepository) GetOrCreate(ctx context.Context, title string) (*models.Theme, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, nil
	}
	var theme models.Theme
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Titles carry no unique index, so concurrent creators of the same title
		// are serialized on postgres. sqlite already allows a single writer.
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", title).Error; err != nil {
				return err
			}
		}
		return tx.Where("title = ?", title).
			Order("id").
			Attrs(models.Theme{Title: title}).
			FirstOrCreate(&theme).Error
	})
	if err != nil {
		return nil, internal(err)
	}
	return &theme, nil
}

func (r *themeRepository) List(ctx context.Context, q string) ([]models.Theme, error) {
	var themes []models.Theme
	query := r.db.WithContext(ctx).Order("id")
	if q != "" {
		query = query.Where(ilike("COALESCE(title, '')"), containsPattern(q))
	}
	if err := query.Find(&themes).Error; err != nil {
		return nil, internal(err)
	}
	return themes, nil
}

func (r *themeRepository) Recent(ctx context.Context, limit int) ([]models.Theme, error) {
	if limit <= 0 {
		limit = 5
	}
	var themes []models.Theme
	if err := r.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&themes).Error; err != nil {
		return nil, internal(err)
	}
	return themes, nil
}

// Delete removes a theme, detaching it from every room first.
func (r *themeRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Room{}).Where("theme_id = ?", id).
			UpdateColumn("theme_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Theme{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return lookupError(err, "Theme", id)
	}
	return nil
}
