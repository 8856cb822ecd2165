package groups

import (
	"net/http"
	"strconv"
	"time"

	"github.com/banterhq/banter/pkg/banter/auth"
	"github.com/banterhq/banter/pkg/banter/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Join records the user as a member of the group. Joining twice is a no-op:
// the duplicate insert is absorbed by the store's unique (group_id, user_id)
// index rather than guarded by a racy check-then-insert.
func Join(db *gorm.DB, groupID, userID uint) error {
	membership := models.GroupMembership{GroupID: groupID, UserID: userID}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&membership).Error
}

// IsMember reports whether the user belongs to the group.
func IsMember(db *gorm.DB, groupID, userID uint) (bool, error) {
	var count int64
	if err := db.Model(&models.GroupMembership{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Members returns the group's memberships with their users, ordered by join
// time, earliest joiner first.
func Members(db *gorm.DB, groupID uint) ([]models.GroupMembership, error) {
	var memberships []models.GroupMembership
	if err := db.Preload("User").
		Where("group_id = ?", groupID).
		Order("created_at ASC, id ASC").
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

// MemberResponse represents a group member in API responses
type MemberResponse struct {
	ID       uint      `json:"id"`
	Username string    `json:"username"`
	JoinedAt time.Time `json:"joined_at"`
}

// ListMembers returns all members of a group, earliest joiner first.
// Like the message read path, it is only available to members.
func (h *Handler) ListMembers(c *gin.Context) {
	groupID, err := strconv.ParseUint(c.Param("group_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	user, err := auth.Authenticate(h.db, c.Query("token"))
	if err != nil {
		auth.Respond(c, err)
		return
	}

	exists, err := Exists(h.db, uint(groupID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch group"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	member, err := IsMember(h.db, uint(groupID), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch members"})
		return
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not a member of this group"})
		return
	}

	memberships, err := Members(h.db, uint(groupID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch members"})
		return
	}

	members := make([]MemberResponse, len(memberships))
	for i, m := range memberships {
		members[i] = MemberResponse{
			ID:       m.User.ID,
			Username: m.User.Username,
			JoinedAt: m.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"group_id": uint(groupID),
		"members":  members,
	})
}
