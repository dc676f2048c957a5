package models

import (
	"time"

	"gorm.io/gorm"
)

// SentinelExitCode marks runs that failed before producing a real process
// exit code (launch failure, stream failure). It sits outside the 0-255
// range normal processes can return.
const SentinelExitCode = 999

// TrainingRun archives one finished run of the external training script.
// Live session and training state are memory-resident; this table only
// exists so an operator can review past runs.
type TrainingRun struct {
	gorm.Model
	RunID      string    `json:"run_id" gorm:"uniqueIndex;not null"`
	SafeID     string    `json:"safe_id" gorm:"index;not null"`
	Phrase     string    `json:"phrase"`
	Language   string    `json:"language"`
	ExitCode   int       `json:"exit_code"`
	TakesUsed  int       `json:"takes_used"`
	LogPath    string    `json:"log_path"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Succeeded reports whether the run's script exited cleanly
func (r *TrainingRun) Succeeded() bool {
	return r.ExitCode == 0
}

// Crashed reports whether the run failed before the script could report an
// exit code of its own
func (r *TrainingRun) Crashed() bool {
	return r.ExitCode == SentinelExitCode
}

// AllModels returns every model for AutoMigrate
func AllModels() []interface{} {
	return []interface{}{
		&TrainingRun{},
	}
}
