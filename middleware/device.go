package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DeviceDetailsMiddleware requires the X-Device-ID header on every request.
// The device ID keys anonymous booking drafts until the rider signs in.
func DeviceDetailsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID := c.GetHeader("X-Device-ID")
		if deviceID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "Missing required device details: X-Device-ID",
			})
			return
		}

		c.Set("deviceID", deviceID)
		c.Set("deviceIP", getClientIP(c))
		c.Next()
	}
}
