package main

import (
	"log"

	"github.com/banterhq/banter/pkg/banter/config"
	"github.com/banterhq/banter/pkg/banter/database"
	"github.com/banterhq/banter/pkg/banter/groups"
	"github.com/banterhq/banter/pkg/banter/messages"
	"github.com/banterhq/banter/pkg/banter/models"
	"github.com/banterhq/banter/pkg/banter/users"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// Set up Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// API information
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"name":    "Banter API",
			"version": "1.0.0",
			"endpoints": []gin.H{
				{"method": "POST", "path": "/users", "description": "Create a user and receive a token"},
				{"method": "GET", "path": "/groups", "description": "List all chat groups"},
				{"method": "POST", "path": "/groups", "description": "Create a new chat group"},
				{"method": "POST", "path": "/groups/{group_id}/join", "description": "Join a chat group"},
				{"method": "GET", "path": "/groups/{group_id}/members", "description": "List members of a group"},
				{"method": "POST", "path": "/groups/{group_id}/messages", "description": "Send a message to a group"},
				{"method": "GET", "path": "/groups/{group_id}/messages", "description": "Get messages from a group"},
			},
		})
	})

	// User routes (public: creating a user is how a token is obtained)
	usersHandler := users.NewHandler(db)
	usersHandler.RegisterRoutes(r.Group("/users"))

	// Group and message routes; tokens are carried in request bodies and
	// query strings, so authentication happens inside the handlers.
	groupsGroup := r.Group("/groups")

	groupsHandler := groups.NewHandler(db)
	groupsHandler.RegisterRoutes(groupsGroup)

	messagesHandler := messages.NewHandler(db)
	messagesHandler.RegisterRoutes(groupsGroup)

	log.Printf("Starting Banter server on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
