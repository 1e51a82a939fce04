package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/storytime-app/backend/internal/models"
	"gorm.io/gorm"
)

// VisibilityRepository defines the interface for per-viewer story visibility
// records. Rows are returned raw; whether a row currently hides its story is
// a time-dependent question answered by the caller.
type VisibilityRepository interface {
	GetForViewer(ctx context.Context, viewer models.Identity) ([]models.StoryVisibility, error)
	SetDismissed(ctx context.Context, viewer models.Identity, storyID string) error
	SetSnoozed(ctx context.Context, viewer models.Identity, storyID string, until time.Time) error
}

// PostgresVisibilityRepository implements VisibilityRepository for PostgreSQL
type PostgresVisibilityRepository struct {
	db *gorm.DB
}

// NewPostgresVisibilityRepository creates a new PostgresVisibilityRepository
func NewPostgresVisibilityRepository(db *gorm.DB) *PostgresVisibilityRepository {
	return &PostgresVisibilityRepository{db: db}
}

// GetForViewer returns all visibility records for the viewer's identity
// channel.
func (r *PostgresVisibilityRepository) GetForViewer(ctx context.Context, viewer models.Identity) ([]models.StoryVisibility, error) {
	var rows []models.StoryVisibility
	err := r.viewerScope(r.db.WithContext(ctx), viewer).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SetDismissed marks the story dismissed for the viewer and clears any
// snooze. Dismissal is terminal until manually reversed elsewhere.
func (r *PostgresVisibilityRepository) SetDismissed(ctx context.Context, viewer models.Identity, storyID string) error {
	return r.upsert(ctx, viewer, storyID, true, nil)
}

// SetSnoozed hides the story for the viewer until the given time. No cleanup
// runs at expiry; an expired snooze simply stops matching the hide filter.
func (r *PostgresVisibilityRepository) SetSnoozed(ctx context.Context, viewer models.Identity, storyID string, until time.Time) error {
	return r.upsert(ctx, viewer, storyID, false, &until)
}

func (r *PostgresVisibilityRepository) upsert(ctx context.Context, viewer models.Identity, storyID string, dismissed bool, snoozeUntil *time.Time) error {
	db := r.db.WithContext(ctx)

	var existing models.StoryVisibility
	err := r.viewerScope(db, viewer).Where("story_id = ?", storyID).First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		row := models.StoryVisibility{
			StoryID:     storyID,
			Dismissed:   dismissed,
			SnoozeUntil: snoozeUntil,
		}
		if viewer.IsAuthenticated() {
			row.UserID = &viewer.UserID
		} else {
			row.AnonSessionID = &viewer.AnonSessionID
		}
		return db.Create(&row).Error
	}

	return db.Model(&existing).Updates(map[string]interface{}{
		"dismissed":    dismissed,
		"snooze_until": snoozeUntil,
	}).Error
}

func (r *PostgresVisibilityRepository) viewerScope(tx *gorm.DB, viewer models.Identity) *gorm.DB {
	if viewer.IsAuthenticated() {
		return tx.Where("user_id = ?", viewer.UserID)
	}
	return tx.Where("anon_session_id = ?", viewer.AnonSessionID)
}
