package takes

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/masterphooey/wakeword-recorder-api/api/types"
	apperrors "github.com/masterphooey/wakeword-recorder-api/pkg/errors"
)

// Post handles take uploads. The request is multipart form data carrying
// speaker_index, take_index and the audio file.
func Post(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		speakerIndex, err := formInt(c, "speaker_index")
		if err != nil {
			types.RespondError(c, err)
			return
		}
		takeIndex, err := formInt(c, "take_index")
		if err != nil {
			types.RespondError(c, err)
			return
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			types.RespondError(c, apperrors.New(apperrors.ErrCodeInvalidInput, "file is required"))
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			types.RespondError(c, apperrors.Wrap(err, apperrors.ErrCodeInvalidPayload, "failed to open uploaded file"))
			return
		}
		defer file.Close()

		payload, err := io.ReadAll(file)
		if err != nil {
			types.RespondError(c, apperrors.Wrap(err, apperrors.ErrCodeInvalidPayload, "failed to read uploaded file"))
			return
		}

		name, count, err := deps.Recorder.IngestTake(c.Request.Context(), speakerIndex, takeIndex, payload)
		if err != nil {
			types.RespondError(c, err)
			return
		}

		c.JSON(http.StatusOK, types.UploadTakeResponse{
			SavedAs:       name,
			TakesReceived: count,
		})
	}
}

func formInt(c *gin.Context, field string) (int, error) {
	raw := c.PostForm(field)
	if raw == "" {
		return 0, apperrors.InvalidInput(field, "required")
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.InvalidInput(field, "must be an integer")
	}
	return n, nil
}
