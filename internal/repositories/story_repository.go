package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/storytime-app/backend/internal/models"
	"gorm.io/gorm"
)

// ErrStoryNotFound is returned by single-story lookups that match nothing.
var ErrStoryNotFound = errors.New("story not found")

// StoryQuery holds the filters for a published-story listing.
type StoryQuery struct {
	Search           string
	OnlyPublicDomain bool
	PublishedSince   *time.Time
	Genre            string
	LengthClass      string
	ExcludeIDs       []string
	Limit            int
}

// StoryRepository defines the interface for story read operations
type StoryRepository interface {
	FindPublished(ctx context.Context, q StoryQuery) ([]models.Story, error)
	FindPublishedByIDs(ctx context.Context, ids []string) ([]models.Story, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*models.Story, error)
}

// PostgresStoryRepository implements StoryRepository for PostgreSQL
type PostgresStoryRepository struct {
	db *gorm.DB
}

// NewPostgresStoryRepository creates a new PostgresStoryRepository
func NewPostgresStoryRepository(db *gorm.DB) *PostgresStoryRepository {
	return &PostgresStoryRepository{db: db}
}

// FindPublished retrieves published stories matching the query, newest
// first. Callers normalize the limit; it only goes unset in direct
// repository use.
func (r *PostgresStoryRepository) FindPublished(ctx context.Context, q StoryQuery) ([]models.Story, error) {
	tx := r.db.WithContext(ctx).
		Where("status = ?", models.StoryStatusPublished).
		Order("published_at DESC")
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	if q.OnlyPublicDomain {
		tx = tx.Where("is_public_domain = ?", true)
	}
	if q.PublishedSince != nil {
		tx = tx.Where("published_at >= ?", *q.PublishedSince)
	}
	if q.Genre != "" {
		tx = tx.Where("genre = ?", q.Genre)
	}
	if q.LengthClass != "" {
		tx = tx.Where("length_class = ?", q.LengthClass)
	}
	if len(q.ExcludeIDs) > 0 {
		tx = tx.Where("id NOT IN ?", q.ExcludeIDs)
	}
	if search := sanitizeSearch(q.Search); search != "" {
		pattern := "%" + search + "%"
		tx = tx.Where("title ILIKE ? OR synopsis_1 ILIKE ? OR genre ILIKE ?", pattern, pattern, pattern)
	}

	var stories []models.Story
	if err := tx.Find(&stories).Error; err != nil {
		return nil, err
	}
	return stories, nil
}

// FindPublishedByIDs retrieves the published stories among the given ids, in
// no particular order.
func (r *PostgresStoryRepository) FindPublishedByIDs(ctx context.Context, ids []string) ([]models.Story, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var stories []models.Story
	err := r.db.WithContext(ctx).
		Where("status = ?", models.StoryStatusPublished).
		Where("id IN ?", ids).
		Find(&stories).Error
	if err != nil {
		return nil, err
	}
	return stories, nil
}

// GetPublishedBySlug retrieves a single published story by its slug.
func (r *PostgresStoryRepository) GetPublishedBySlug(ctx context.Context, slug string) (*models.Story, error) {
	var story models.Story
	err := r.db.WithContext(ctx).
		Where("status = ? AND slug = ?", models.StoryStatusPublished, slug).
		First(&story).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrStoryNotFound, slug)
		}
		return nil, err
	}
	return &story, nil
}

// sanitizeSearch strips SQL wildcard characters from user-supplied search
// text so they cannot widen the ILIKE match.
func sanitizeSearch(s string) string {
	return strings.NewReplacer("%", "", "_", "").Replace(strings.TrimSpace(s))
}
