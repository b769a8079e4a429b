package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"complyhub-backend/identity-service/handlers"
	"complyhub-backend/identity-service/middleware"
	"complyhub-backend/shared/config"
	"complyhub-backend/shared/database"
)

func main() {
	// Load configuration
	config.LoadConfig()

	// Initialize database
	if err := database.InitDatabase(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDatabase()

	router := gin.Default()

	// Internal account routes - service token required
	internal := router.Group("/api/internal", middleware.ServiceAuthMiddleware())
	internal.POST("/accounts", handlers.CreateAccount)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "identity",
		})
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Parse port from config URL
	port := strings.Split(config.GetConfig().IdentityServiceURL, ":")[2]
	log.Printf("Identity Service starting on port %s...", port)
	router.Run(":" + port)
}
