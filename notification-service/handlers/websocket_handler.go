package handlers

import (
	"github.com/gin-gonic/gin"

	"complyhub-backend/notification-service/services"
)

// HandleOpsFeed handles ops feed WebSocket connection requests
// @Summary Ops feed connection
// @Description Establish a WebSocket connection for real-time provisioning alerts
// @Tags websocket
// @Router /ws/ops [get]
func HandleOpsFeed(c *gin.Context) {
	services.GetOpsFeedManager().HandleConnection(c)
}
