package training

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/masterphooey/wakeword-recorder-api/api/types"
)

// Post starts a training run. The response only acknowledges acceptance; the
// run's outcome is observable via the status endpoint.
func Post(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		safeWord, err := deps.Recorder.StartTraining(c.Request.Context())
		if err != nil {
			types.RespondError(c, err)
			return
		}

		c.JSON(http.StatusAccepted, types.StartTrainingResponse{
			Started:  true,
			SafeWord: safeWord,
		})
	}
}
