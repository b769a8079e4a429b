package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"complyhub-backend/notification-service/handlers"
	"complyhub-backend/shared/config"
)

func main() {
	// Load configuration
	config.LoadConfig()
	cfg := config.GetConfig()

	router := gin.Default()

	// Ops dashboards connect from the frontend origin
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	emailHandler := handlers.NewEmailHandler()

	// Notification routes
	router.POST("/api/notifications/welcome", emailHandler.SendWelcome)
	router.POST("/api/notifications/ops-alert", emailHandler.SendOpsAlert)

	// Ops feed
	router.GET("/ws/ops", handlers.HandleOpsFeed)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "notification",
		})
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Parse port from config URL
	port := strings.Split(cfg.NotificationServiceURL, ":")[2]
	log.Printf("Notification Service starting on port %s...", port)
	router.Run(":" + port)
}
