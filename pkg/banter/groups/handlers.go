package groups

import (
	"net/http"
	"strconv"

	"github.com/banterhq/banter/pkg/banter/auth"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles group-related requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new groups handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateGroupRequest represents the request to create a group
type CreateGroupRequest struct {
	Name  string `json:"name"`
	Token string `json:"token"`
}

// JoinGroupRequest represents the request to join a group
type JoinGroupRequest struct {
	Token string `json:"token"`
}

// List returns all groups, most recently created first
// @Summary List groups
// @Description Get all chat groups; no authentication required
// @Tags groups
// @Produce json
// @Success 200 {array} models.Group
// @Router /groups [get]
func (h *Handler) List(c *gin.Context) {
	groups, err := All(h.db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch groups"})
		return
	}

	c.JSON(http.StatusOK, groups)
}

// Create creates a new group and enrolls the creator as its first member
// @Summary Create a group
// @Description Create a new chat group; the authenticated user becomes its first member
// @Tags groups
// @Accept json
// @Produce json
// @Param request body CreateGroupRequest true "Group details and token"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Group name is required"
// @Failure 401 {object} map[string]string "Missing or invalid token"
// @Router /groups [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = CreateGroupRequest{}
	}

	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Group name is required"})
		return
	}

	user, err := auth.Authenticate(h.db, req.Token)
	if err != nil {
		auth.Respond(c, err)
		return
	}

	group, err := Create(h.db, req.Name, &user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create group"})
		return
	}

	// Add creator as the first member
	if err := Join(h.db, group.ID, user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create group"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Group created successfully",
		"group":   group,
	})
}

// JoinGroup adds the authenticated user to a group. It succeeds for any
// authenticated user; joining a group you already belong to is a no-op,
// not an error.
// @Summary Join a group
// @Description Join a chat group; idempotent for existing members
// @Tags groups
// @Accept json
// @Produce json
// @Param group_id path int true "Group ID"
// @Param request body JoinGroupRequest true "Token"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string "Missing or invalid token"
// @Failure 404 {object} map[string]string "Group not found"
// @Router /groups/{group_id}/join [post]
func (h *Handler) JoinGroup(c *gin.Context) {
	groupID, err := strconv.ParseUint(c.Param("group_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	var req JoinGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = JoinGroupRequest{}
	}

	user, err := auth.Authenticate(h.db, req.Token)
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

	if err := Join(h.db, uint(groupID), user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join group"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Joined group successfully",
		"group_id": uint(groupID),
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
		},
	})
}

// RegisterRoutes registers group routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.POST("/:group_id/join", h.JoinGroup)
	rg.GET("/:group_id/members", h.ListMembers)
}
