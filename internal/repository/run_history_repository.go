package repository

import (
	"errors"
	"fmt"

	"otobook-rpa-service/internal/models"

	"gorm.io/gorm"
)

// RunHistoryRepository handles the append-only run history log
type RunHistoryRepository struct {
	db *gorm.DB
}

// NewRunHistoryRepository creates a new repository
func NewRunHistoryRepository(db *gorm.DB) *RunHistoryRepository {
	return &RunHistoryRepository{db: db}
}

// Create appends a new run record, normally in status "running"
func (r *RunHistoryRepository) Create(run *models.WorkflowRun) error {
	result := r.db.Create(run)
	if result.Error != nil {
		return fmt.Errorf("failed to create run record: %w", result.Error)
	}
	return nil
}

// Finalize writes the finished run state. Called exactly once per run;
// records are never touched again afterwards.
func (r *RunHistoryRepository) Finalize(run *models.WorkflowRun) error {
	result := r.db.Save(run)
	if result.Error != nil {
		return fmt.Errorf("failed to finalize run record: %w", result.Error)
	}
	return nil
}

// GetByRunID retrieves a run record by runID
func (r *RunHistoryRepository) GetByRunID(runID string) (*models.WorkflowRun, error) {
	var run models.WorkflowRun

	result := r.db.Where("run_id = ?", runID).First(&run)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("run %s: %w", runID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query run record: %w", result.Error)
	}

	return &run, nil
}

// Query returns at most limit run records, newest first, optionally
// filtered by workflowID. Ordered by insertion (id), so the result is the
// last limit appended entries in reverse-chronological order.
func (r *RunHistoryRepository) Query(workflowID string, limit int) ([]models.WorkflowRun, error) {
	var runs []models.WorkflowRun

	query := r.db.Order("id DESC")
	if workflowID != "" {
		query = query.Where("workflow_id = ?", workflowID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	result := query.Find(&runs)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to query run history: %w", result.Error)
	}

	return runs, nil
}
