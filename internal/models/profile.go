package models

import "time"

// Profile holds an author's public display data (PostgreSQL). The profile
// row shares its ID with the auth user it belongs to.
type Profile struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	Username    string    `json:"username" gorm:"uniqueIndex"`
	DisplayName string    `json:"display_name"`
	Bio         string    `json:"bio,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
