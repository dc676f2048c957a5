package types

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/masterphooey/wakeword-recorder-api/internal/models"
	"github.com/masterphooey/wakeword-recorder-api/internal/services/recorder"
	apperrors "github.com/masterphooey/wakeword-recorder-api/pkg/errors"
)

// ErrorBody is the uniform error payload
type ErrorBody struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps an error payload
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// SessionResponse reports the full session snapshot
type SessionResponse struct {
	Active          bool             `json:"active"`
	RawPhrase       string           `json:"raw_phrase,omitempty"`
	SafeWord        string           `json:"safe_word,omitempty"`
	Lang            string           `json:"lang,omitempty"`
	SpeakersTotal   int              `json:"speakers_total"`
	TakesPerSpeaker int              `json:"takes_per_speaker"`
	TakesTotal      int              `json:"takes_total"`
	TakesReceived   int              `json:"takes_received"`
	Takes           []string         `json:"takes"`
	Training        TrainingResponse `json:"training"`
}

// TrainingResponse reports the training snapshot
type TrainingResponse struct {
	Running  bool     `json:"running"`
	ExitCode *int     `json:"exit_code"`
	LogLines []string `json:"log_lines"`
	SafeWord string   `json:"safe_word,omitempty"`
	Lang     string   `json:"lang,omitempty"`
	LogPath  string   `json:"log_path,omitempty"`
}

// UploadTakeResponse reports a persisted take
type UploadTakeResponse struct {
	SavedAs       string `json:"saved_as"`
	TakesReceived int    `json:"takes_received"`
}

// StartTrainingResponse acknowledges an accepted run
type StartTrainingResponse struct {
	Started  bool   `json:"started"`
	SafeWord string `json:"safe_word"`
}

// TrainingRunResponse is one archived run in the history listing
type TrainingRunResponse struct {
	RunID      string    `json:"run_id"`
	SafeWord   string    `json:"safe_word"`
	Phrase     string    `json:"phrase"`
	Lang       string    `json:"lang"`
	ExitCode   int       `json:"exit_code"`
	Succeeded  bool      `json:"succeeded"`
	TakesUsed  int       `json:"takes_used"`
	LogPath    string    `json:"log_path"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// NewSessionResponse converts a snapshot into the wire shape
func NewSessionResponse(snap recorder.SessionSnapshot) SessionResponse {
	takes := snap.Takes
	if takes == nil {
		takes = []string{}
	}
	return SessionResponse{
		Active:          snap.Active,
		RawPhrase:       snap.RawPhrase,
		SafeWord:        snap.SafeID,
		Lang:            string(snap.Language),
		SpeakersTotal:   snap.SpeakersTotal,
		TakesPerSpeaker: snap.TakesPerSpeaker,
		TakesTotal:      snap.TakesTotal,
		TakesReceived:   snap.TakesReceived,
		Takes:           takes,
		Training:        NewTrainingResponse(snap.Training),
	}
}

// NewTrainingResponse converts a snapshot into the wire shape
func NewTrainingResponse(snap recorder.TrainingSnapshot) TrainingResponse {
	lines := snap.LogLines
	if lines == nil {
		lines = []string{}
	}
	return TrainingResponse{
		Running:  snap.Running,
		ExitCode: snap.ExitCode,
		LogLines: lines,
		SafeWord: snap.SafeID,
		Lang:     string(snap.Language),
		LogPath:  snap.LogPath,
	}
}

// NewTrainingRunResponse converts an archived run into the wire shape
func NewTrainingRunResponse(run *models.TrainingRun) TrainingRunResponse {
	return TrainingRunResponse{
		RunID:      run.RunID,
		SafeWord:   run.SafeID,
		Phrase:     run.Phrase,
		Lang:       run.Language,
		ExitCode:   run.ExitCode,
		Succeeded:  run.Succeeded(),
		TakesUsed:  run.TakesUsed,
		LogPath:    run.LogPath,
		StartedAt:  run.StartedAt,
		FinishedAt: run.FinishedAt,
	}
}

// RespondError writes a structured error response with the status mapped
// from the error's code
func RespondError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.Wrap(err, apperrors.ErrCodeInternal, "internal error")
	}

	c.JSON(appErr.GetHTTPCode(), ErrorResponse{
		Error: ErrorBody{
			Code:    string(appErr.Code),
			Message: appErr.Message,
			Details: appErr.Details,
		},
	})
}
