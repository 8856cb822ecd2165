package models

import "time"

// Group represents a chat group. Names are not unique; the creator is
// recorded for attribution only and carries no special permissions.
type Group struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatorID *uint     `json:"creator_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Members  []GroupMembership `gorm:"foreignKey:GroupID" json:"-"`
	Messages []Message         `gorm:"foreignKey:GroupID" json:"-"`
}
