package groups

import (
	"github.com/banterhq/banter/pkg/banter/models"
	"gorm.io/gorm"
)

// Create creates a group. The creator is recorded for attribution only and
// is not enrolled as a member here; that is the handler's job.
func Create(db *gorm.DB, name string, creatorID *uint) (*models.Group, error) {
	group := models.Group{Name: name, CreatorID: creatorID}
	if err := db.Create(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// GetByID returns a group by ID.
func GetByID(db *gorm.DB, id uint) (*models.Group, error) {
	var group models.Group
	if err := db.First(&group, id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// Exists reports whether a group with the given ID exists.
func Exists(db *gorm.DB, id uint) (bool, error) {
	var count int64
	if err := db.Model(&models.Group{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// All returns every group, most recently created first.
func All(db *gorm.DB) ([]models.Group, error) {
	var groups []models.Group
	if err := db.Order("created_at DESC, id DESC").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}
