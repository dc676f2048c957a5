package version

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Get handles version requests
func Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "Wakeword Recorder API",
			"version":     "1.0.0",
			"description": "API for collecting wake-word samples and training on-device models",
			"status":      "running",
		})
	}
}
