package models

import "time"

// Length classes, in ascending reading-time order. The order matters: the
// algo feed drains its length pools in this sequence.
const (
	LengthFlash     = "flash"
	LengthShort     = "short"
	LengthStorytime = "storytime"
)

// Story statuses.
const (
	StoryStatusDraft     = "draft"
	StoryStatusPending   = "pending"
	StoryStatusPublished = "published"
	StoryStatusHidden    = "hidden"
)

// Story represents a published or draft work (PostgreSQL).
// AuthorID is null for anonymous/public-domain reposts; when IsPublicDomain
// is set, OriginalAuthor is the attribution source of truth.
type Story struct {
	ID             string     `json:"id" gorm:"type:uuid;primaryKey"`
	Title          string     `json:"title"`
	Slug           string     `json:"slug" gorm:"uniqueIndex"`
	Synopsis1      string     `json:"synopsis_1,omitempty" gorm:"column:synopsis_1"`
	Body           string     `json:"body"`
	LengthClass    string     `json:"length_class" gorm:"index"`
	ReadingTime    int        `json:"reading_time"`
	Genre          string     `json:"genre" gorm:"index"`
	Tags           string     `json:"tags,omitempty"`
	CoverURL       string     `json:"cover_url,omitempty"`
	AuthorID       *string    `json:"author_id" gorm:"type:uuid;index"`
	OriginalAuthor string     `json:"original_author,omitempty"`
	IsPublicDomain bool       `json:"is_public_domain"`
	PublishedAt    *time.Time `json:"published_at" gorm:"index"`
	Status         string     `json:"status" gorm:"index;default:draft"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
