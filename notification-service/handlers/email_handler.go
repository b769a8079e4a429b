package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"complyhub-backend/notification-service/services"
	"complyhub-backend/shared/clients"
	"complyhub-backend/shared/config"
)

// EmailHandler serves the notification endpoints used by the provisioning
// pipeline
type EmailHandler struct {
	emailService *services.EmailService
}

// NewEmailHandler creates a new email handler
func NewEmailHandler() *EmailHandler {
	return &EmailHandler{
		emailService: services.NewEmailService(config.GetConfig()),
	}
}

// SendWelcome sends the tenant welcome email with the temporary credential
// @Summary Send welcome email
// @Description Send the customer-facing welcome message for a provisioned tenant
// @Tags notifications
// @Accept json
// @Produce json
// @Param payload body clients.WelcomeEmailRequest true "Welcome payload"
// @Success 200 {object} services.EmailResponse
// @Failure 400 {object} map[string]string "Invalid payload"
// @Failure 500 {object} map[string]string "Send failure"
// @Router /notifications/welcome [post]
func (h *EmailHandler) SendWelcome(ctx *gin.Context) {
	var req clients.WelcomeEmailRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	response, err := h.emailService.SendEmail(services.EmailRequest{
		To:         []string{req.Email},
		Subject:    fmt.Sprintf("Welcome to ComplyHub - %s is ready", req.OrganizationName),
		TemplateID: "welcome",
		TemplateVars: map[string]interface{}{
			"OrganizationName":  req.OrganizationName,
			"PlanCode":          req.PlanCode,
			"TemporaryPassword": req.TemporaryPassword,
			"LoginURL":          req.LoginURL,
		},
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// SendOpsAlert sends an internal operations alert and pushes it to the ops
// feed
// @Summary Send operations alert
// @Description Send an internal alert email and broadcast it on the ops feed
// @Tags notifications
// @Accept json
// @Produce json
// @Param payload body clients.OpsAlertRequest true "Alert payload"
// @Success 200 {object} services.EmailResponse
// @Failure 400 {object} map[string]string "Invalid payload"
// @Failure 500 {object} map[string]string "Send failure"
// @Router /notifications/ops-alert [post]
func (h *EmailHandler) SendOpsAlert(ctx *gin.Context) {
	var req clients.OpsAlertRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	// The live feed is best-effort and must not block the email path
	feedLevel := "info"
	if req.AlertType == "payment_failed" {
		feedLevel = "warning"
	}
	services.GetOpsFeedManager().Broadcast(&services.OpsFeedMessage{
		Type:    req.AlertType,
		Level:   feedLevel,
		Title:   fmt.Sprintf("Ops alert: %s", req.AlertType),
		Message: fmt.Sprintf("%s (%s, plan %s)", req.OrganizationName, req.ContactEmail, req.PlanCode),
		Data:    req,
	})

	response, err := h.emailService.SendEmail(services.EmailRequest{
		To:         []string{config.GetConfig().OpsAlertEmail},
		Subject:    fmt.Sprintf("[ComplyHub Ops] %s - %s", req.AlertType, req.OrganizationName),
		TemplateID: "ops_alert",
		TemplateVars: map[string]interface{}{
			"AlertType":        req.AlertType,
			"OrganizationName": req.OrganizationName,
			"ContactEmail":     req.ContactEmail,
			"PlanCode":         req.PlanCode,
			"ProcessID":        req.ProcessID,
			"Detail":           req.Detail,
			"Timestamp":        req.Timestamp,
		},
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, response)
}
