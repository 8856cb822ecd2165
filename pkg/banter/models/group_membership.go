package models

import "time"

// GroupMembership represents the many-to-many relationship between users
// and groups. At most one row exists per (group, user) pair; CreatedAt is
// the join time.
type GroupMembership struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	GroupID   uint      `gorm:"not null;uniqueIndex:idx_group_user" json:"group_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_group_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Group Group `gorm:"foreignKey:GroupID" json:"-"`
}
