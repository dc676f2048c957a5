package runs

import (
	"context"

	"github.com/masterphooey/wakeword-recorder-api/internal/models"
)

// Service defines the business logic interface for training-run history
type Service interface {
	// Record archives a finished training run
	Record(ctx context.Context, run *models.TrainingRun) error

	// List returns finished runs, newest first
	List(ctx context.Context, limit int) ([]*models.TrainingRun, error)

	// GetByRunID returns a single archived run
	GetByRunID(ctx context.Context, runID string) (*models.TrainingRun, error)

	// LatestForWord returns the most recent run for a normalized identifier
	LatestForWord(ctx context.Context, safeID string) (*models.TrainingRun, error)
}
