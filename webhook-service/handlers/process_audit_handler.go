package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"complyhub-backend/shared/database"
	"complyhub-backend/shared/database/models/audit"
)

// GetProcessAuditTrail returns the full audit trail for one onboarding
// process, in write order, for forensic reconstruction of a provisioning run
// @Summary Get process audit trail
// @Description Get all audit events recorded for an onboarding process
// @Tags processes
// @Produce json
// @Param id path string true "Process ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid process ID"
// @Failure 500 {object} map[string]string "Server error"
// @Router /processes/{id}/audit [get]
func GetProcessAuditTrail(ctx *gin.Context) {
	db := database.DB

	processID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid process ID",
		})
		return
	}

	var events []audit.AuditEvent
	if err := db.Where("process_id = ?", processID).
		Order("id ASC").
		Find(&events).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load audit trail",
			"message": err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"process_id": processID,
			"events":     events,
			"count":      len(events),
		},
	})
}
