package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Engagement event kinds.
const (
	EventImpression = "impression"
	EventOpen       = "open"
	EventComplete   = "complete"
)

// StoryEvent is a single observed interaction, stored in MongoDB.
// Exactly one of UserID and AnonSessionID is set.
type StoryEvent struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	StoryID       string             `json:"story_id" bson:"story_id"`
	EventType     string             `json:"event_type" bson:"event_type"`
	UserID        string             `json:"user_id,omitempty" bson:"user_id,omitempty"`
	AnonSessionID string             `json:"anon_session_id,omitempty" bson:"anon_session_id,omitempty"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
}

// EventCounts holds per-story totals for each event kind.
type EventCounts struct {
	Impressions int64 `json:"impressions"`
	Opens       int64 `json:"opens"`
	Completes   int64 `json:"completes"`
}

// RecordEventRequest defines the request body for logging an engagement event
type RecordEventRequest struct {
	StoryID   string `json:"story_id" validate:"required"`
	EventType string `json:"event_type" validate:"required,oneof=impression open complete"`
}
