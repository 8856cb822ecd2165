package users

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles user requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new users handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateUserRequest represents the find-or-create request body
type CreateUserRequest struct {
	Username string `json:"username"`
}

// Create finds or creates a user and returns it along with its bearer token.
// The token is issued once: repeating the call for an existing username
// returns the same user and the same token.
func (h *Handler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = CreateUserRequest{}
	}

	if req.Username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username is required"})
		return
	}

	user, created, err := FindOrCreate(h.db, req.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	status := http.StatusOK
	message := "User retrieved successfully"
	if created {
		status = http.StatusCreated
		message = "User created successfully"
	}

	c.JSON(status, gin.H{
		"message": message,
		"user":    user,
	})
}

// RegisterRoutes registers user routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
}
