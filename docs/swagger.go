// Package docs ComplyHub API documentation
package docs

// Swagger documentation info
// @title ComplyHub Provisioning API
// @version 1.0
// @description Central API documentation - payment-triggered tenant provisioning services
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.complyhub.com/support
// @contact.email support@complyhub.com

// @host localhost:8010
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the service token.

// Webhook Service Endpoints
// @tag.name webhooks
// @tag.description Signed payment processor event intake
// @tag.name processes
// @tag.description Onboarding process audit reconstruction

// Identity Service Endpoints
// @tag.name accounts
// @tag.description Internal delegate account creation

// Notification Service Endpoints
// @tag.name notifications
// @tag.description Transactional email for provisioning
// @tag.name websocket
// @tag.description Operations live feed
