package training

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/masterphooey/wakeword-recorder-api/api/types"
	apperrors "github.com/masterphooey/wakeword-recorder-api/pkg/errors"
)

// GetRuns lists archived training runs, newest first. Requires the run
// history database to be configured.
func GetRuns(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps.Runs == nil {
			types.RespondError(c, apperrors.New(apperrors.ErrCodeDatabaseConnection, "run history is not configured"))
			return
		}

		limit := 0
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				types.RespondError(c, apperrors.InvalidInput("limit", "must be a non-negative integer"))
				return
			}
			limit = n
		}

		found, err := deps.Runs.List(c.Request.Context(), limit)
		if err != nil {
			types.RespondError(c, apperrors.DatabaseError("list runs", err))
			return
		}

		out := make([]types.TrainingRunResponse, 0, len(found))
		for _, run := range found {
			out = append(out, types.NewTrainingRunResponse(run))
		}

		c.JSON(http.StatusOK, gin.H{"runs": out})
	}
}
