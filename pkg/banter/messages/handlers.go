package messages

import (
	"net/http"
	"strconv"
	"time"

	"github.com/banterhq/banter/pkg/banter/auth"
	"github.com/banterhq/banter/pkg/banter/groups"
	"github.com/banterhq/banter/pkg/banter/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DefaultLimit is the page size used when the caller does not specify one.
// There is no upper bound on the limit a caller may request.
const DefaultLimit = 50

// Handler handles message requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new messages handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateMessageRequest represents the request to post a message
type CreateMessageRequest struct {
	Content string `json:"content"`
	Token   string `json:"token"`
}

// MessageResponse represents a message joined with its author's username
type MessageResponse struct {
	ID        uint      `json:"id"`
	GroupID   uint      `json:"group_id"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(m models.Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		GroupID:   m.GroupID,
		UserID:    m.UserID,
		Username:  m.User.Username,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

// Create posts a message to a group. A poster who is not yet a member is
// joined first: posting grants membership, reading never does.
// @Summary Send a message
// @Description Post a message to a group; non-members are auto-joined
// @Tags messages
// @Accept json
// @Produce json
// @Param group_id path int true "Group ID"
// @Param request body CreateMessageRequest true "Message content and token"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Message content is required"
// @Failure 401 {object} map[string]string "Missing or invalid token"
// @Failure 404 {object} map[string]string "Group not found"
// @Router /groups/{group_id}/messages [post]
func (h *Handler) Create(c *gin.Context) {
	groupID, err := strconv.ParseUint(c.Param("group_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group ID"})
		return
	}

	var req CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = CreateMessageRequest{}
	}

	if req.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message content is required"})
		return
	}

	user, err := auth.Authenticate(h.db, req.Token)
	if err != nil {
		auth.Respond(c, err)
		return
	}

	exists, err := groups.Exists(h.db, uint(groupID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch group"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	// Auto-join the group if not a member
	member, err := groups.IsMember(h.db, uint(groupID), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}
	if !member {
		if err := groups.Join(h.db, uint(groupID), user.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
			return
		}
	}

	msg, err := Create(h.db, uint(groupID), user.ID, req.Content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	// Re-read joined with the author for the response payload
	full, err := ByID(h.db, msg.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Message sent successfully",
		"data":    toResponse(*full),
	})
}

// List returns a page of a group's messages, oldest first. Read access is
// strictly membership-gated: non-members get 403, never partial data.
// @Summary Get messages
// @Description Get a page of a group's messages; members only
// @Tags messages
// @Produce json
// @Param group_id path int true "Group ID"
// @Param token query string true "Bearer token"
// @Param limit query int false "Page size (default 50)"
// @Param offset query int false "Row offset (default 0)"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string "Missing or invalid token"
// @Failure 403 {object} map[string]string "Not a member"
// @Failure 404 {object} map[string]string "Group not found"
// @Router /groups/{group_id}/messages [get]
func (h *Handler) List(c *gin.Context) {
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

	exists, err := groups.Exists(h.db, uint(groupID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch group"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	member, err := groups.IsMember(h.db, uint(groupID), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not a member of this group"})
		return
	}

	limit, offset, ok := paginationParams(c)
	if !ok {
		return
	}

	msgs, err := ByGroup(h.db, uint(groupID), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	responses := make([]MessageResponse, len(msgs))
	for i, m := range msgs {
		responses[i] = toResponse(m)
	}

	c.JSON(http.StatusOK, gin.H{
		"group_id": uint(groupID),
		"messages": responses,
		"pagination": gin.H{
			"limit":  limit,
			"offset": offset,
		},
	})
}

// paginationParams reads limit and offset from the query string. Absent
// values take the defaults; non-numeric or negative values are rejected
// rather than silently coerced. Writes the error response itself when the
// input is invalid.
func paginationParams(c *gin.Context) (limit, offset int, ok bool) {
	limit = DefaultLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters"})
			return 0, 0, false
		}
		limit = n
	}
	if raw := c.Query("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters"})
			return 0, 0, false
		}
		offset = n
	}
	return limit, offset, true
}

// RegisterRoutes registers message routes on the groups router
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/:group_id/messages", h.Create)
	rg.GET("/:group_id/messages", h.List)
}
