package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Payment processor webhook
	PaymentWebhookSecret string

	// Internal service auth
	ServiceJWTSecret       string
	ServiceTokenTTLMinutes string

	// Service URLs (Dynamic based on environment)
	WebhookServiceURL      string
	IdentityServiceURL     string
	NotificationServiceURL string

	// Email Configuration
	EmailFrom     string
	EmailFromName string
	EmailReplyTo  string
	OpsAlertEmail string
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SMTPUseTLS    bool

	// External accounting/CRM sync (optional - presence enables sync)
	CRMAPIURL string
	CRMAPIKey string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       string

	// MinIO (raw webhook payload archive)
	MinIOServerURL    string
	MinIORootUser     string
	MinIORootPassword string
	MinIOUseSSL       bool
	MinIOBucketName   string

	// Public base URL used inside notification templates
	AppBaseURL string

	// Frontend URL (CORS / websocket origin)
	FrontendURL string
}

var cfg *Config

// LoadConfig loads configuration from environment variables
func LoadConfig() {
	envPaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	envLoaded := false
	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			log.Printf("✅ Environment loaded from: %s", path)
			envLoaded = true
			break
		}
	}

	if !envLoaded {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg = &Config{
		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "complyhub"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Payment processor webhook
		PaymentWebhookSecret: getEnv("PAYMENT_WEBHOOK_SECRET", ""),

		// Internal service auth
		ServiceJWTSecret:       getEnv("SERVICE_JWT_SECRET", "change-this-service-secret"),
		ServiceTokenTTLMinutes: getEnv("SERVICE_TOKEN_TTL_MINUTES", "5"),

		// Service URLs - Environment-based configuration
		WebhookServiceURL:      getEnv("WEBHOOK_SERVICE_URL", "http://localhost:8010"),
		IdentityServiceURL:     getEnv("IDENTITY_SERVICE_URL", "http://localhost:8011"),
		NotificationServiceURL: getEnv("NOTIFICATION_SERVICE_URL", "http://localhost:8012"),

		// Email Configuration
		EmailFrom:     getEnv("EMAIL_FROM", "noreply@complyhub.com"),
		EmailFromName: getEnv("EMAIL_FROM_NAME", "ComplyHub"),
		EmailReplyTo:  getEnv("EMAIL_REPLY_TO", "support@complyhub.com"),
		OpsAlertEmail: getEnv("OPS_ALERT_EMAIL", "ops@complyhub.com"),
		SMTPHost:      getEnv("SMTP_HOST", "smtp.example.com"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SMTPUseTLS:    getEnvAsBool("SMTP_USE_TLS", false),

		// External accounting/CRM sync
		CRMAPIURL: getEnv("CRM_API_URL", ""),
		CRMAPIKey: getEnv("CRM_API_KEY", ""),

		// Redis
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnv("REDIS_DB", "0"),

		// MinIO Configuration
		MinIOServerURL:    getEnv("MINIO_SERVER_URL", "http://localhost:9000"),
		MinIORootUser:     getEnv("MINIO_ROOT_USER", "minioadmin"),
		MinIORootPassword: getEnv("MINIO_ROOT_PASSWORD", "minioadmin"),
		MinIOUseSSL:       getEnvAsBool("MINIO_USE_SSL", false),
		MinIOBucketName:   getEnv("MINIO_BUCKET_NAME", "complyhub-webhook-archive"),

		// Public URLs
		AppBaseURL:  getEnv("APP_BASE_URL", "https://app.complyhub.com"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	log.Println("✅ Configuration loaded successfully")
}

// GetConfig returns the current configuration
func GetConfig() *Config {
	if cfg == nil {
		LoadConfig()
	}
	return cfg
}

// CRMSyncEnabled reports whether the external accounting/CRM sync is configured
func (c *Config) CRMSyncEnabled() bool {
	return c.CRMAPIURL != "" && c.CRMAPIKey != ""
}

// GetServiceTokenTTL returns the service token lifetime in minutes
func (c *Config) GetServiceTokenTTL() int {
	if value, err := strconv.Atoi(c.ServiceTokenTTLMinutes); err == nil {
		return value
	}
	return 5
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
