package training

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/masterphooey/wakeword-recorder-api/api/types"
)

// Get returns the current training snapshot
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, types.NewTrainingResponse(deps.Recorder.TrainingStatus()))
	}
}
