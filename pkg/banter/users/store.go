package users

import (
	"crypto/rand"
	"encoding/hex"
	"errors"

	"github.com/banterhq/banter/pkg/banter/models"
	"gorm.io/gorm"
)

// TokenLength is the length of a generated token in bytes (16 bytes = 32 hex chars)
const TokenLength = 16

// generateToken generates a new random bearer token
func generateToken() (string, error) {
	bytes := make([]byte, TokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// FindOrCreate returns the user with the given username, creating it with a
// freshly generated token on first sight. An existing user's token is never
// regenerated. The second return value reports whether a new user was created.
func FindOrCreate(db *gorm.DB, username string) (*models.User, bool, error) {
	user, err := GetByUsername(db, username)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	token, err := generateToken()
	if err != nil {
		return nil, false, err
	}

	created := models.User{Username: username, Token: token}
	if err := db.Create(&created).Error; err != nil {
		return nil, false, err
	}
	return &created, true, nil
}

// GetByToken looks up a user by exact token match. A miss is reported as
// gorm.ErrRecordNotFound, not treated as a server error.
func GetByToken(db *gorm.DB, token string) (*models.User, error) {
	var user models.User
	if err := db.Where("token = ?", token).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername looks up a user by username.
func GetByUsername(db *gorm.DB, username string) (*models.User, error) {
	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID looks up a user by ID.
func GetByID(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
