package runs

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/masterphooey/wakeword-recorder-api/internal/models"
)

const DefaultListLimit = 50

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) Record(ctx context.Context, run *models.TrainingRun) error {
	if run.RunID == "" {
		return fmt.Errorf("run is missing a run ID")
	}

	if err := s.repo.CreateRun(ctx, run); err != nil {
		return fmt.Errorf("recording run: %w", err)
	}

	log.Printf("[DEBUG] Archived training run %s for %q (exit_code=%d)", run.RunID, run.SafeID, run.ExitCode)

	return nil
}

func (s *service) List(ctx context.Context, limit int) ([]*models.TrainingRun, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	found, err := s.repo.GetRuns(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return found, nil
}

func (s *service) GetByRunID(ctx context.Context, runID string) (*models.TrainingRun, error) {
	run, err := s.repo.GetRunByRunID(ctx, runID)
	if err != nil {
		if errors.Is(err, ErrRunNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("getting run: %w", err)
	}
	return run, nil
}

func (s *service) LatestForWord(ctx context.Context, safeID string) (*models.TrainingRun, error) {
	run, err := s.repo.GetLatestRunForWord(ctx, safeID)
	if err != nil {
		if errors.Is(err, ErrRunNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("getting latest run: %w", err)
	}
	return run, nil
}
