package types

import (
	"github.com/masterphooey/wakeword-recorder-api/internal/database"
	"github.com/masterphooey/wakeword-recorder-api/internal/services/recorder"
	"github.com/masterphooey/wakeword-recorder-api/internal/services/runs"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB       *database.DB
	Recorder recorder.Service
	Runs     runs.Service
}
