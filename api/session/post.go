package session

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/masterphooey/wakeword-recorder-api/api/types"
	apperrors "github.com/masterphooey/wakeword-recorder-api/pkg/errors"
	"github.com/masterphooey/wakeword-recorder-api/internal/services/recorder"
)

// Post handles session start requests. Starting a session replaces the
// previous one wholesale and wipes its recordings; a running training job is
// left untouched.
func Post(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.StartSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			types.RespondError(c, apperrors.New(apperrors.ErrCodeInvalidInput, "phrase is required"))
			return
		}

		snap, err := deps.Recorder.StartSession(c.Request.Context(), recorder.StartSessionParams{
			Phrase:          req.Phrase,
			SpeakersTotal:   req.SpeakersTotal,
			TakesPerSpeaker: req.TakesPerSpeaker,
			Language:        req.Lang,
		})
		if err != nil {
			types.RespondError(c, err)
			return
		}

		c.JSON(http.StatusOK, types.NewSessionResponse(snap))
	}
}
