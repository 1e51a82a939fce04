package models

import "time"

// EditorialPick is a curated suggestion slot (PostgreSQL). Picks are grouped
// by the first day of their month; the suggestions feed shows a rolling
// three-month window ordered by month descending, then SortOrder.
type EditorialPick struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	StoryID    string    `json:"story_id" gorm:"type:uuid;index"`
	MonthLabel time.Time `json:"month_label" gorm:"type:date;index"`
	SortOrder  int       `json:"sort_order"`
	CreatedAt  time.Time `json:"created_at"`
}

// FeaturedStory is a front-page featured slot (PostgreSQL), active while now
// falls between StartsAt and EndsAt (either may be open-ended).
type FeaturedStory struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	StoryID       string     `json:"story_id" gorm:"type:uuid;index"`
	SortOrder     int        `json:"sort_order"`
	TitleOverride *string    `json:"title_override,omitempty"`
	Subtitle      *string    `json:"subtitle,omitempty"`
	StartsAt      *time.Time `json:"starts_at,omitempty"`
	EndsAt        *time.Time `json:"ends_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}
