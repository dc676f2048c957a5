package runs

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/masterphooey/wakeword-recorder-api/internal/models"
)

// Repository errors
var (
	ErrRunNotFound = errors.New("training run not found")
)

// Repository defines the interface for run-history persistence
type Repository interface {
	CreateRun(ctx context.Context, run *models.TrainingRun) error
	GetRunByRunID(ctx context.Context, runID string) (*models.TrainingRun, error)
	GetRuns(ctx context.Context, limit int) ([]*models.TrainingRun, error)
	GetLatestRunForWord(ctx context.Context, safeID string) (*models.TrainingRun, error)
}

// repository implements Repository interface
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new run-history repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

// CreateRun persists a finished training run
func (r *repository) CreateRun(ctx context.Context, run *models.TrainingRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

// GetRunByRunID retrieves a run by its run identifier
func (r *repository) GetRunByRunID(ctx context.Context, runID string) (*models.TrainingRun, error) {
	var run models.TrainingRun
	err := r.db.WithContext(ctx).Where("run_id = ?", runID).First(&run).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("getting run: %w", err)
	}
	return &run, nil
}

// GetRuns retrieves finished runs ordered newest first
func (r *repository) GetRuns(ctx context.Context, limit int) ([]*models.TrainingRun, error) {
	var found []*models.TrainingRun
	query := r.db.WithContext(ctx).Order("started_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&found).Error; err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return found, nil
}

// GetLatestRunForWord retrieves the most recent run for a normalized identifier
func (r *repository) GetLatestRunForWord(ctx context.Context, safeID string) (*models.TrainingRun, error) {
	var run models.TrainingRun
	err := r.db.WithContext(ctx).
		Where("safe_id = ?", safeID).
		Order("started_at DESC").
		First(&run).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("getting latest run for %s: %w", safeID, err)
	}
	return &run, nil
}
