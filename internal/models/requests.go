package models

import "time"

// Feed action types.
const (
	FeedActionOpen    = "open"
	FeedActionSave    = "save"
	FeedActionDismiss = "dismiss"
	FeedActionSnooze  = "snooze"
)

// FeedActionRequest defines the request body for a feed card action
type FeedActionRequest struct {
	Action      string     `json:"action" validate:"required,oneof=open save dismiss snooze"`
	StoryID     string     `json:"story_id" validate:"required"`
	ShelfID     string     `json:"shelf_id,omitempty"`
	ShelfName   string     `json:"shelf_name,omitempty"`
	SnoozeUntil *time.Time `json:"snooze_until,omitempty"`
}
