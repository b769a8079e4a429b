package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"complyhub-backend/shared/clients"
	"complyhub-backend/shared/config"
	"complyhub-backend/shared/database"
	"complyhub-backend/shared/utils/cache"
	"complyhub-backend/webhook-service/handlers"
	"complyhub-backend/webhook-service/services"
)

func main() {
	// Load configuration
	config.LoadConfig()
	cfg := config.GetConfig()

	// Initialize database
	if err := database.InitDatabase(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDatabase()

	// Redis dedup cache is a fast path only - start without it if unavailable
	var eventCache handlers.EventCache
	if err := cache.InitCacheManager(); err != nil {
		log.Printf("⚠️ Event cache disabled: %v", err)
	} else {
		eventCache = cache.GetCacheManager()
	}

	// Payload archive is best-effort compliance retention
	var archiver services.PayloadArchiver
	if archiveService, err := services.NewArchiveService(); err != nil {
		log.Printf("⚠️ Payload archive disabled: %v", err)
	} else {
		archiver = archiveService
	}

	// Wire the pipeline
	store := services.NewGormProcessStore(database.GetDB())
	recorder := services.NewGormAuditRecorder(database.GetDB())
	dispatcher := services.NewNotificationDispatcher(clients.NewNotificationClient(), recorder, cfg.AppBaseURL)
	syncer := services.NewCRMSyncService(cfg.CRMAPIURL, cfg.CRMAPIKey)
	provisioner := services.NewProvisioningService(store, clients.NewIdentityClient(), dispatcher, syncer, recorder)
	router := services.NewEventRouter(provisioner, store, recorder)
	webhookHandler := handlers.NewWebhookHandler(cfg.PaymentWebhookSecret, router, recorder, archiver, eventCache)

	if cfg.PaymentWebhookSecret == "" {
		log.Println("⚠️ PAYMENT_WEBHOOK_SECRET is not set - all webhook deliveries will be rejected")
	}
	if syncer.Enabled() {
		log.Println("✅ External CRM sync enabled")
	} else {
		log.Println("CRM sync not configured - skipping external sync step")
	}

	engine := gin.Default()

	// Webhook routes
	engine.POST("/api/webhooks/payment", webhookHandler.HandlePaymentWebhook)

	// Audit reconstruction
	engine.GET("/api/processes/:id/audit", handlers.GetProcessAuditTrail)

	// Health check
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "webhook",
		})
	})

	// Swagger documentation
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Parse port from config URL
	port := strings.Split(cfg.WebhookServiceURL, ":")[2]
	log.Printf("Webhook Service starting on port %s...", port)
	engine.Run(":" + port)
}
