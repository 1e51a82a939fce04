package models

import "time"

// DefaultShelfName is the shelf created on demand when a reader saves a
// story without picking one.
const DefaultShelfName = "Read Later"

// Shelf is a reader's named collection of saved stories (PostgreSQL).
type Shelf struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    string    `json:"user_id" gorm:"type:uuid;index;uniqueIndex:idx_user_shelf_name"`
	Name      string    `json:"name" gorm:"uniqueIndex:idx_user_shelf_name"`
	CreatedAt time.Time `json:"created_at"`
}

// ShelfItem is a story's membership on a shelf (PostgreSQL). Each row counts
// as one "save" toward the story's metrics.
type ShelfItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ShelfID   string    `json:"shelf_id" gorm:"type:uuid;index;uniqueIndex:idx_shelf_story"`
	StoryID   string    `json:"story_id" gorm:"type:uuid;index;uniqueIndex:idx_shelf_story"`
	CreatedAt time.Time `json:"created_at"`
}
