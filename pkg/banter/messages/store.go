package messages

import (
	"github.com/banterhq/banter/pkg/banter/models"
	"gorm.io/gorm"
)

// Create appends a message to the group's log. The record is immutable once
// written; the server assigns the ID and timestamp. Referential validity of
// the group and user is the caller's responsibility.
func Create(db *gorm.DB, groupID, userID uint, content string) (*models.Message, error) {
	message := models.Message{GroupID: groupID, UserID: userID, Content: content}
	if err := db.Create(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// ByGroup returns a page of the group's messages with their authors, oldest
// first. Offset pagination is not isolated from concurrent writers: an
// insert racing two page reads can shift the second page. Acceptable for a
// chat log.
func ByGroup(db *gorm.DB, groupID uint, limit, offset int) ([]models.Message, error) {
	var msgs []models.Message
	if err := db.Preload("User").
		Where("group_id = ?", groupID).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

// ByID returns a single message with its author.
func ByID(db *gorm.DB, id uint) (*models.Message, error) {
	var msg models.Message
	if err := db.Preload("User").First(&msg, id).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}
