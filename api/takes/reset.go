package takes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/masterphooey/wakeword-recorder-api/api/types"
)

// Reset clears all persisted takes and the received list without altering
// session parameters
func Reset(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deps.Recorder.ResetRecordings(c.Request.Context()); err != nil {
			types.RespondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
