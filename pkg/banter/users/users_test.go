package users

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/banterhq/banter/pkg/banter/models"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	models.AutoMigrate(db)
	return db
}

func setupTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(db)
	handler.RegisterRoutes(r.Group("/users"))
	return r
}

func TestFindOrCreateIssuesToken(t *testing.T) {
	db := setupTestDB(t)

	user, created, err := FindOrCreate(db, "john")
	if err != nil {
		t.Fatalf("FindOrCreate failed: %v", err)
	}
	if !created {
		t.Error("Expected a new user to be created")
	}
	if user.Username != "john" {
		t.Errorf("Expected username 'john', got %q", user.Username)
	}
	if len(user.Token) != TokenLength*2 {
		t.Errorf("Expected %d-char hex token, got %q", TokenLength*2, user.Token)
	}
}

func TestFindOrCreateIsIdempotent(t *testing.T) {
	db := setupTestDB(t)

	first, _, err := FindOrCreate(db, "john")
	if err != nil {
		t.Fatalf("FindOrCreate failed: %v", err)
	}

	second, created, err := FindOrCreate(db, "john")
	if err != nil {
		t.Fatalf("Second FindOrCreate failed: %v", err)
	}
	if created {
		t.Error("Expected the existing user, not a new one")
	}
	if second.ID != first.ID {
		t.Errorf("Expected user ID %d, got %d", first.ID, second.ID)
	}
	if second.Token != first.Token {
		t.Errorf("Token was regenerated: %q != %q", second.Token, first.Token)
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 user row, got %d", count)
	}
}

func TestGetByToken(t *testing.T) {
	db := setupTestDB(t)

	user, _, err := FindOrCreate(db, "john")
	if err != nil {
		t.Fatalf("FindOrCreate failed: %v", err)
	}

	found, err := GetByToken(db, user.Token)
	if err != nil {
		t.Fatalf("GetByToken failed: %v", err)
	}
	if found.ID != user.ID {
		t.Errorf("Expected user ID %d, got %d", user.ID, found.ID)
	}
}

func TestGetByTokenMiss(t *testing.T) {
	db := setupTestDB(t)

	// Well-formed but never issued
	_, err := GetByToken(db, "ffffffffffffffffffffffffffffffff")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("Expected ErrRecordNotFound for unissued token, got %v", err)
	}
}

func TestGetByIDAndUsername(t *testing.T) {
	db := setupTestDB(t)

	user, _, err := FindOrCreate(db, "john")
	if err != nil {
		t.Fatalf("FindOrCreate failed: %v", err)
	}

	byID, err := GetByID(db, user.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if byID.Username != "john" {
		t.Errorf("Expected username 'john', got %q", byID.Username)
	}

	byName, err := GetByUsername(db, "john")
	if err != nil {
		t.Fatalf("GetByUsername failed: %v", err)
	}
	if byName.ID != user.ID {
		t.Errorf("Expected user ID %d, got %d", user.ID, byName.ID)
	}

	if _, err := GetByUsername(db, "nobody"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("Expected ErrRecordNotFound for unknown username, got %v", err)
	}
}

func TestCreateUserEndpoint(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	body, _ := json.Marshal(CreateUserRequest{Username: "john"})
	req, _ := http.NewRequest("POST", "/users", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var response struct {
		Message string      `json:"message"`
		User    models.User `json:"user"`
	}
	json.Unmarshal(resp.Body.Bytes(), &response)

	if response.User.Username != "john" {
		t.Errorf("Expected username 'john', got %q", response.User.Username)
	}
	if response.User.Token == "" {
		t.Error("Expected a token in the response")
	}

	// Same username again returns the same user and token with 200
	req, _ = http.NewRequest("POST", "/users", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp2 := httptest.NewRecorder()

	router.ServeHTTP(resp2, req)

	if resp2.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d: %s", resp2.Code, resp2.Body.String())
	}

	var repeat struct {
		User models.User `json:"user"`
	}
	json.Unmarshal(resp2.Body.Bytes(), &repeat)

	if repeat.User.ID != response.User.ID || repeat.User.Token != response.User.Token {
		t.Error("Expected the same user and token on repeated create")
	}
}

func TestCreateUserRequiresUsername(t *testing.T) {
	db := setupTestDB(t)
	router := setupTestRouter(db)

	req, _ := http.NewRequest("POST", "/users", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", resp.Code)
	}

	var response map[string]string
	json.Unmarshal(resp.Body.Bytes(), &response)
	if response["error"] != "Username is required" {
		t.Errorf("Expected 'Username is required', got %q", response["error"])
	}
}
