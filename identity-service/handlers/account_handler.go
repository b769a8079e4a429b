package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"complyhub-backend/shared/database"
	"complyhub-backend/shared/database/models"
	utils "complyhub-backend/shared/utils/auth"
)

// CreateAccountRequest represents request body for internal account creation
type CreateAccountRequest struct {
	Email             string    `json:"email" binding:"required,email"`
	TemporaryPassword string    `json:"temporary_password" binding:"required,min=12"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	OrganizationID    uuid.UUID `json:"organization_id" binding:"required"`
	PlanCode          string    `json:"plan_code"`
}

// AccountResponse represents the created account
type AccountResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// CreateAccount creates a delegate account with a temporary credential
// @Summary Create internal account
// @Description Create an authentication principal for a provisioned tenant. Internal use only.
// @Tags accounts
// @Accept json
// @Produce json
// @Param payload body CreateAccountRequest true "Account payload"
// @Security BearerAuth
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid payload"
// @Failure 500 {object} map[string]string "Server error"
// @Router /internal/accounts [post]
func CreateAccount(ctx *gin.Context) {
	db := database.DB

	var req CreateAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request payload",
			"message": err.Error(),
		})
		return
	}

	// Account creation is retried by provisioning recovery tooling; an
	// existing account for the same email and organization is returned
	// as-is instead of failing the retry.
	var existing models.User
	err := db.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		if existing.OrganizationID != nil && *existing.OrganizationID == req.OrganizationID {
			ctx.JSON(http.StatusOK, gin.H{
				"success": true,
				"data": AccountResponse{
					ID:    existing.ID,
					Email: existing.Email,
				},
			})
			return
		}
		ctx.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error":   "Email is already registered to another organization",
		})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to check existing accounts",
		})
		return
	}

	hashedPassword, err := utils.HashPassword(req.TemporaryPassword)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to hash temporary password",
		})
		return
	}

	orgID := req.OrganizationID
	user := models.User{
		Email:              req.Email,
		Password:           hashedPassword,
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Status:             "ACTIVE",
		MustRotatePassword: true,
		OrganizationID:     &orgID,
		PlanCode:           req.PlanCode,
	}

	if err := db.Create(&user).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to create account",
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": AccountResponse{
			ID:    user.ID,
			Email: user.Email,
		},
	})
}
