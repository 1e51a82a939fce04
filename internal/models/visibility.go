package models

import "time"

// StoryVisibility is a per-viewer visibility record (PostgreSQL). A story is
// hidden from the viewer's feeds while Dismissed is set or SnoozeUntil lies
// in the future; an expired snooze reverts to default behavior without any
// stored transition. Exactly one of UserID and AnonSessionID is set.
type StoryVisibility struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	StoryID       string     `json:"story_id" gorm:"type:uuid;index"`
	UserID        *string    `json:"user_id,omitempty" gorm:"type:uuid;index"`
	AnonSessionID *string    `json:"anon_session_id,omitempty" gorm:"index"`
	Dismissed     bool       `json:"dismissed"`
	SnoozeUntil   *time.Time `json:"snooze_until,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// HiddenAt reports whether this record hides its story at the given time.
func (v StoryVisibility) HiddenAt(now time.Time) bool {
	if v.Dismissed {
		return true
	}
	return v.SnoozeUntil != nil && v.SnoozeUntil.After(now)
}
