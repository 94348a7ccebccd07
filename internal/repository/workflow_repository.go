package repository

import (
	"errors"
	"fmt"
	"time"

	"otobook-rpa-service/internal/models"

	"gorm.io/gorm"
)

// WorkflowRepository handles workflow data access
type WorkflowRepository struct {
	db *gorm.DB
}

// NewWorkflowRepository creates a new repository
func NewWorkflowRepository(db *gorm.DB) *WorkflowRepository {
	return &WorkflowRepository{db: db}
}

// Create persists a new workflow
func (r *WorkflowRepository) Create(workflow *models.Workflow) error {
	result := r.db.Create(workflow)
	if result.Error != nil {
		return fmt.Errorf("failed to create workflow: %w", result.Error)
	}
	return nil
}

// Get retrieves a workflow by workflowID
func (r *WorkflowRepository) Get(workflowID string) (*models.Workflow, error) {
	var workflow models.Workflow

	result := r.db.Where("workflow_id = ?", workflowID).First(&workflow)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("workflow %s: %w", workflowID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to query workflow: %w", result.Error)
	}

	return &workflow, nil
}

// List retrieves all workflows
func (r *WorkflowRepository) List() ([]models.Workflow, error) {
	var workflows []models.Workflow

	result := r.db.Order("id ASC").Find(&workflows)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list workflows: %w", result.Error)
	}

	return workflows, nil
}

// Update saves the merged workflow state
func (r *WorkflowRepository) Update(workflow *models.Workflow) error {
	result := r.db.Save(workflow)
	if result.Error != nil {
		return fmt.Errorf("failed to update workflow: %w", result.Error)
	}
	return nil
}

// Delete permanently removes a workflow. Run history rows are left in
// place: history of a deleted workflow stays queryable by id.
func (r *WorkflowRepository) Delete(workflowID string) error {
	result := r.db.Where("workflow_id = ?", workflowID).Delete(&models.Workflow{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete workflow: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("workflow %s: %w", workflowID, models.ErrNotFound)
	}
	return nil
}

// RecordRunCompletion bumps the workflow's run counters after an execution
// attempt. The increment runs as a single UPDATE so concurrent runs of the
// same workflow never lose counts; lastRun is last-write-wins.
func (r *WorkflowRepository) RecordRunCompletion(workflowID string, when time.Time) error {
	result := r.db.Model(&models.Workflow{}).
		Where("workflow_id = ?", workflowID).
		Updates(map[string]interface{}{
			"run_count": gorm.Expr("run_count + 1"),
			"last_run":  when,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to record run completion: %w", result.Error)
	}
	return nil
}
