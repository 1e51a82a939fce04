package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/storytime-app/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ShelfRepository defines the interface for shelf save counts and the
// save-to-shelf upsert used by feed actions.
type ShelfRepository interface {
	CountSavesByStory(ctx context.Context, storyIDs []string, since *time.Time) (map[string]int64, error)
	SaveToShelf(ctx context.Context, userID, storyID, shelfID, shelfName string) error
}

// PostgresShelfRepository implements ShelfRepository for PostgreSQL
type PostgresShelfRepository struct {
	db *gorm.DB
}

// NewPostgresShelfRepository creates a new PostgresShelfRepository
func NewPostgresShelfRepository(db *gorm.DB) *PostgresShelfRepository {
	return &PostgresShelfRepository{db: db}
}

// CountSavesByStory returns per-story shelf-save totals.
func (r *PostgresShelfRepository) CountSavesByStory(ctx context.Context, storyIDs []string, since *time.Time) (map[string]int64, error) {
	return countByStory(ctx, r.db.Model(&models.ShelfItem{}), storyIDs, since)
}

// SaveToShelf puts a story on one of the user's shelves. When no shelf id is
// given the named shelf ("Read Later" by default) is found or created first.
// Saving the same story twice is a no-op.
func (r *PostgresShelfRepository) SaveToShelf(ctx context.Context, userID, storyID, shelfID, shelfName string) error {
	db := r.db.WithContext(ctx)

	if shelfID == "" {
		name := strings.TrimSpace(shelfName)
		if name == "" {
			name = models.DefaultShelfName
		}
		shelf := models.Shelf{ID: uuid.NewString(), UserID: userID, Name: name}
		err := db.Where("user_id = ? AND name = ?", userID, name).
			FirstOrCreate(&shelf).Error
		if err != nil {
			return err
		}
		shelfID = shelf.ID
	}

	item := models.ShelfItem{ShelfID: shelfID, StoryID: storyID}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "shelf_id"}, {Name: "story_id"}},
		DoNothing: true,
	}).Create(&item).Error
}
