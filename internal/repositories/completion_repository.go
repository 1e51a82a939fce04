package repositories

import (
	"context"
	"time"

	"github.com/storytime-app/backend/internal/models"
	"gorm.io/gorm"
)

// CompletionRepository defines the interface for the legacy completions table
type CompletionRepository interface {
	CountCompletionsByStory(ctx context.Context, storyIDs []string, since *time.Time) (map[string]int64, error)
}

// PostgresCompletionRepository implements CompletionRepository for PostgreSQL
type PostgresCompletionRepository struct {
	db *gorm.DB
}

// NewPostgresCompletionRepository creates a new PostgresCompletionRepository
func NewPostgresCompletionRepository(db *gorm.DB) *PostgresCompletionRepository {
	return &PostgresCompletionRepository{db: db}
}

// CountCompletionsByStory returns per-story legacy completion totals.
func (r *PostgresCompletionRepository) CountCompletionsByStory(ctx context.Context, storyIDs []string, since *time.Time) (map[string]int64, error) {
	return countByStory(ctx, r.db.Model(&models.Completion{}), storyIDs, since)
}
