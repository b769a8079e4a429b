package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	utils "complyhub-backend/shared/utils/auth"
)

// ServiceAuthMiddleware validates the internal service token on
// service-to-service requests
func ServiceAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(401, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.JSON(401, gin.H{"error": "Invalid authorization format. Expected Bearer {token}"})
			c.Abort()
			return
		}

		claims, err := utils.ValidateServiceToken(tokenParts[1])
		if err != nil {
			c.JSON(401, gin.H{"error": "Invalid or expired service token"})
			c.Abort()
			return
		}

		c.Set("callerService", claims.Service)

		c.Next()
	}
}
