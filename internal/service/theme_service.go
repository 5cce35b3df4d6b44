package service

import (
	"context"

	"roomboard/internal/models"
	"roomboard/internal/repository"
)

// ThemeService lists and administers room themes.
type ThemeService struct {
	themeRepo repository.ThemeRepository
}

// NewThemeService returns a ThemeService backed by themeRepo.
func NewThemeService(themeRepo repository.ThemeRepository) *ThemeService {
	return &ThemeService{themeRepo: themeRepo}
}

// Search lists themes whose title contains q; an empty q lists them all.
func (s *ThemeService) Search(ctx context.Context, q string) ([]models.Theme, error) {
	return s.themeRepo.List(ctx, q)
}

// Delete removes a theme. Rooms that used it become untagged.
func (s *ThemeService) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return models.NewValidationError("theme id is required")
	}
	return s.themeRepo.Delete(ctx, id)
}
