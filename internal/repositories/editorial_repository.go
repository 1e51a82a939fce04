package repositories

import (
	"context"
	"time"

	"github.com/storytime-app/backend/internal/models"
	"gorm.io/gorm"
)

// EditorialRepository defines the interface for curated story-id lists
type EditorialRepository interface {
	GetCurrentPickIDs(ctx context.Context, now time.Time) ([]string, error)
	GetActiveFeaturedIDs(ctx context.Context, now time.Time) ([]string, error)
}

// PostgresEditorialRepository implements EditorialRepository for PostgreSQL
type PostgresEditorialRepository struct {
	db *gorm.DB
}

// NewPostgresEditorialRepository creates a new PostgresEditorialRepository
func NewPostgresEditorialRepository(db *gorm.DB) *PostgresEditorialRepository {
	return &PostgresEditorialRepository{db: db}
}

// GetCurrentPickIDs returns editorial pick story ids for a rolling
// three-month window, most recent month first, then curator order.
func (r *PostgresEditorialRepository) GetCurrentPickIDs(ctx context.Context, now time.Time) ([]string, error) {
	rollingStart := time.Date(now.Year(), now.Month()-2, 1, 0, 0, 0, 0, now.Location())
	nextMonthStart := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location())

	var ids []string
	err := r.db.WithContext(ctx).Model(&models.EditorialPick{}).
		Where("month_label >= ? AND month_label < ?", rollingStart, nextMonthStart).
		Order("month_label DESC").
		Order("sort_order ASC").
		Pluck("story_id", &ids).Error
	return ids, err
}

// GetActiveFeaturedIDs returns featured story ids whose slot is live at now,
// in curator order.
func (r *PostgresEditorialRepository) GetActiveFeaturedIDs(ctx context.Context, now time.Time) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.FeaturedStory{}).
		Where("(starts_at IS NULL OR starts_at <= ?) AND (ends_at IS NULL OR ends_at >= ?)", now, now).
		Order("sort_order ASC").
		Pluck("story_id", &ids).Error
	return ids, err
}
