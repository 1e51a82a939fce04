package repositories

import (
	"context"
	"time"

	"github.com/storytime-app/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// EngagementEventRepository defines the interface for the unified engagement
// event stream (impression/open/complete).
type EngagementEventRepository interface {
	RecordEvent(ctx context.Context, event *models.StoryEvent) error
	CountEventsByStory(ctx context.Context, storyIDs []string, since *time.Time) (map[string]models.EventCounts, error)
}

// MongoEventRepository implements EngagementEventRepository for MongoDB
type MongoEventRepository struct {
	collection *mongo.Collection
}

// NewMongoEventRepository creates a new MongoEventRepository
func NewMongoEventRepository(db *mongo.Database) *MongoEventRepository {
	return &MongoEventRepository{collection: db.Collection("story_events")}
}

// RecordEvent appends an engagement event. Events are immutable once written.
func (r *MongoEventRepository) RecordEvent(ctx context.Context, event *models.StoryEvent) error {
	event.ID = primitive.NewObjectID()
	event.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, event)
	return err
}

// CountEventsByStory aggregates per-story event counts by kind, optionally
// restricted to events at or after since.
func (r *MongoEventRepository) CountEventsByStory(ctx context.Context, storyIDs []string, since *time.Time) (map[string]models.EventCounts, error) {
	counts := make(map[string]models.EventCounts)
	if len(storyIDs) == 0 {
		return counts, nil
	}

	match := bson.M{"story_id": bson.M{"$in": storyIDs}}
	if since != nil {
		match["created_at"] = bson.M{"$gte": *since}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"story_id": "$story_id", "event_type": "$event_type"},
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Key struct {
			StoryID   string `bson:"story_id"`
			EventType string `bson:"event_type"`
		} `bson:"_id"`
		Count int64 `bson:"count"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	for _, row := range rows {
		c := counts[row.Key.StoryID]
		switch row.Key.EventType {
		case models.EventImpression:
			c.Impressions += row.Count
		case models.EventOpen:
			c.Opens += row.Count
		case models.EventComplete:
			c.Completes += row.Count
		}
		counts[row.Key.StoryID] = c
	}
	return counts, nil
}
