package training

import (
	"github.com/gin-gonic/gin"

	"github.com/masterphooey/wakeword-recorder-api/api/types"
)

// RegisterRoutes registers training routes on the given router group
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.POST("", Post(deps))
	router.GET("", Get(deps))
	router.GET("/runs", GetRuns(deps))
}
