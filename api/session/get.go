package session

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/masterphooey/wakeword-recorder-api/api/types"
)

// Get returns the current session snapshot with the embedded training state
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, types.NewSessionResponse(deps.Recorder.Session()))
	}
}
