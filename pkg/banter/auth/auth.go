// Package auth resolves opaque bearer tokens to users. Tokens arrive in the
// request body for write operations and as a query parameter for reads; there
// is no Authorization header and tokens never expire.
package auth

import (
	"errors"
	"net/http"

	"github.com/banterhq/banter/pkg/banter/models"
	"github.com/banterhq/banter/pkg/banter/users"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// The error strings double as the client-facing response bodies, so they are
// capitalized to match the wire contract.
var (
	ErrTokenRequired = errors.New("Authentication token is required")
	ErrTokenInvalid  = errors.New("Invalid authentication token")
)

// Authenticate resolves a bearer token to its user. An absent token yields
// ErrTokenRequired; a token that was never issued yields ErrTokenInvalid.
// Token comparison is exact-string, with no normalization.
func Authenticate(db *gorm.DB, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrTokenRequired
	}

	user, err := users.GetByToken(db, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenInvalid
		}
		return nil, err
	}
	return user, nil
}

// Respond writes the error response for a failed authentication.
func Respond(c *gin.Context, err error) {
	if errors.Is(err, ErrTokenRequired) || errors.Is(err, ErrTokenInvalid) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Authentication failed"})
}
