package models

import "time"

// User represents an account identified by a unique username.
// The token is an opaque bearer credential issued once at creation;
// it is never rotated or expired.
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Token     string    `gorm:"uniqueIndex;not null" json:"token"`
	CreatedAt time.Time `json:"created_at"`
}
