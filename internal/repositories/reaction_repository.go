package repositories

import (
	"context"
	"time"

	"github.com/storytime-app/backend/internal/models"
	"gorm.io/gorm"
)

// ReactionRepository defines the interface for unified reaction counts
type ReactionRepository interface {
	CountReactionsByStory(ctx context.Context, storyIDs []string, since *time.Time) (map[string]models.ReactionCounts, error)
}

// PostgresReactionRepository implements ReactionRepository for PostgreSQL
type PostgresReactionRepository struct {
	db *gorm.DB
}

// NewPostgresReactionRepository creates a new PostgresReactionRepository
func NewPostgresReactionRepository(db *gorm.DB) *PostgresReactionRepository {
	return &PostgresReactionRepository{db: db}
}

// CountReactionsByStory returns per-story like/dislike totals.
func (r *PostgresReactionRepository) CountReactionsByStory(ctx context.Context, storyIDs []string, since *time.Time) (map[string]models.ReactionCounts, error) {
	counts := make(map[string]models.ReactionCounts)
	if len(storyIDs) == 0 {
		return counts, nil
	}

	tx := r.db.WithContext(ctx).Model(&models.Reaction{}).
		Select("story_id, value, COUNT(*) AS count").
		Where("story_id IN ?", storyIDs).
		Group("story_id, value")
	if since != nil {
		tx = tx.Where("created_at >= ?", *since)
	}

	var rows []struct {
		StoryID string
		Value   string
		Count   int64
	}
	if err := tx.Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		c := counts[row.StoryID]
		switch row.Value {
		case models.ReactionLike:
			c.Likes += row.Count
		case models.ReactionDislike:
			c.Dislikes += row.Count
		}
		counts[row.StoryID] = c
	}
	return counts, nil
}
