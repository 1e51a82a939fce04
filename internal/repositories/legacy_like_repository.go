package repositories

import (
	"context"
	"time"

	"github.com/storytime-app/backend/internal/models"
	"gorm.io/gorm"
)

// LegacyLikeRepository defines the interface for the legacy story_likes table.
// Read-only: its counts only matter for stories with no unified reactions.
type LegacyLikeRepository interface {
	CountLikesByStory(ctx context.Context, storyIDs []string, since *time.Time) (map[string]int64, error)
}

// PostgresLegacyLikeRepository implements LegacyLikeRepository for PostgreSQL
type PostgresLegacyLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLegacyLikeRepository creates a new PostgresLegacyLikeRepository
func NewPostgresLegacyLikeRepository(db *gorm.DB) *PostgresLegacyLikeRepository {
	return &PostgresLegacyLikeRepository{db: db}
}

// CountLikesByStory returns per-story legacy like totals.
func (r *PostgresLegacyLikeRepository) CountLikesByStory(ctx context.Context, storyIDs []string, since *time.Time) (map[string]int64, error) {
	return countByStory(ctx, r.db.Model(&models.StoryLike{}), storyIDs, since)
}

// countByStory groups a signal table by story_id and returns row counts. The
// model must carry story_id and created_at columns.
func countByStory(ctx context.Context, tx *gorm.DB, storyIDs []string, since *time.Time) (map[string]int64, error) {
	counts := make(map[string]int64)
	if len(storyIDs) == 0 {
		return counts, nil
	}

	tx = tx.WithContext(ctx).
		Select("story_id, COUNT(*) AS count").
		Where("story_id IN ?", storyIDs).
		Group("story_id")
	if since != nil {
		tx = tx.Where("created_at >= ?", *since)
	}

	var rows []struct {
		StoryID string
		Count   int64
	}
	if err := tx.Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.StoryID] = row.Count
	}
	return counts, nil
}
