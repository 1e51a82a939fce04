package models

import "time"

// Completion is a row in the legacy completions table (PostgreSQL). The
// unified event stream also records "complete" events; metrics take the max
// of the two counts per story.
type Completion struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	StoryID       string    `json:"story_id" gorm:"type:uuid;index"`
	UserID        *string   `json:"user_id,omitempty" gorm:"type:uuid;index"`
	AnonSessionID *string   `json:"anon_session_id,omitempty" gorm:"index"`
	CreatedAt     time.Time `json:"created_at"`
}
