package repositories

import (
	"context"

	"github.com/storytime-app/backend/internal/models"
	"gorm.io/gorm"
)

// ProfileRepository defines the interface for author profile lookups
type ProfileRepository interface {
	GetDisplayNames(ctx context.Context, ids []string) (map[string]string, error)
}

// PostgresProfileRepository implements ProfileRepository for PostgreSQL
type PostgresProfileRepository struct {
	db *gorm.DB
}

// NewPostgresProfileRepository creates a new PostgresProfileRepository
func NewPostgresProfileRepository(db *gorm.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

// GetDisplayNames returns a display-name map for the given profile ids.
// Missing profiles are simply absent from the map.
func (r *PostgresProfileRepository) GetDisplayNames(ctx context.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string)
	if len(ids) == 0 {
		return names, nil
	}

	var profiles []models.Profile
	err := r.db.WithContext(ctx).
		Select("id, display_name").
		Where("id IN ?", ids).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}

	for _, profile := range profiles {
		names[profile.ID] = profile.DisplayName
	}
	return names, nil
}
