package models

import "time"

// Reaction values.
const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
)

// Reaction is a row in the unified reactions table (PostgreSQL). When a story
// has any unified reaction rows, they take precedence over legacy StoryLike
// counts for that story.
type Reaction struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	StoryID   string    `json:"story_id" gorm:"type:uuid;index;uniqueIndex:idx_reaction_story_user"`
	UserID    string    `json:"user_id" gorm:"type:uuid;uniqueIndex:idx_reaction_story_user"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

// ReactionCounts holds per-story like/dislike totals.
type ReactionCounts struct {
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`
}

// StoryLike is a row in the legacy per-story likes table (PostgreSQL).
// Kept read-only for metric reconciliation; new likes land in reactions.
type StoryLike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	StoryID   string    `json:"story_id" gorm:"type:uuid;index"`
	UserID    string    `json:"user_id" gorm:"type:uuid;index"`
	CreatedAt time.Time `json:"created_at"`
}
