package repositories

import (
	"context"

	"github.com/storytime-app/backend/internal/models"
	"gorm.io/gorm"
)

// FollowRepository defines the interface for the viewer's follow graph
type FollowRepository interface {
	GetFollowingIDs(ctx context.Context, followerID string) ([]string, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// GetFollowingIDs returns the author ids the given user follows.
func (r *PostgresFollowRepository) GetFollowingIDs(ctx context.Context, followerID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", followerID).
		Pluck("following_id", &ids).Error
	return ids, err
}
