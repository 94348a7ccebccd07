package service

import (
	"fmt"
	"math/rand"
	"time"

	"otobook-rpa-service/internal/catalog"
	"otobook-rpa-service/internal/config"
	"otobook-rpa-service/internal/engine"
	"otobook-rpa-service/internal/models"
	"otobook-rpa-service/internal/repository"

	"github.com/google/uuid"
)

// RPAService is the operation surface of the RPA engine: catalog reads,
// workflow CRUD, execution, connection testing and run history.
type RPAService interface {
	ListActionTypes() []catalog.ActionType
	ListPlatforms() []catalog.Platform
	GetPlatform(platformID string) (catalog.Platform, error)
	ListTemplates() []catalog.WorkflowTemplate
	GetTemplate(templateID string) (catalog.WorkflowTemplate, error)

	CreateWorkflow(req *CreateWorkflowRequest) (*models.Workflow, error)
	ListWorkflows() ([]models.Workflow, error)
	GetWorkflow(workflowID string) (*models.Workflow, error)
	UpdateWorkflow(workflowID string, req *UpdateWorkflowRequest) (*models.Workflow, error)
	DeleteWorkflow(workflowID string) error

	ExecuteWorkflow(workflowID string, opts engine.ExecuteOptions) (*models.WorkflowRun, error)
	DemoExecute(templateID string) (*models.WorkflowRun, error)
	TestConnection(platformID string, credentials models.JSONB) (*ConnectionTestResult, error)
	GetRunHistory(workflowID string, limit int) ([]models.WorkflowRun, error)
}

type rpaService struct {
	catalog      *catalog.Catalog
	workflowRepo *repository.WorkflowRepository
	historyRepo  *repository.RunHistoryRepository
	engine       *engine.Engine
	cfg          config.RPAConfig
}

// NewRPAService creates a new RPA service
func NewRPAService(
	cat *catalog.Catalog,
	workflowRepo *repository.WorkflowRepository,
	historyRepo *repository.RunHistoryRepository,
	eng *engine.Engine,
	cfg config.RPAConfig,
) RPAService {
	return &rpaService{
		catalog:      cat,
		workflowRepo: workflowRepo,
		historyRepo:  historyRepo,
		engine:       eng,
		cfg:          cfg,
	}
}

// ===== DTOs =====

type CreateWorkflowRequest struct {
	Name                string        `json:"name"`
	Description         string        `json:"description"`
	Steps               []models.Step `json:"steps"`
	Schedule            models.JSONB  `json:"schedule"`
	PlatformConnections models.JSONB  `json:"platformConnections"`
}

// UpdateWorkflowRequest carries a partial update: supplied fields overwrite,
// a non-nil Steps slice replaces the sequence wholesale. Merged content is
// not re-validated at this layer.
type UpdateWorkflowRequest struct {
	Name                string        `json:"name"`
	Description         string        `json:"description"`
	Steps               []models.Step `json:"steps"`
	Schedule            models.JSONB  `json:"schedule"`
	PlatformConnections models.JSONB  `json:"platformConnections"`
	Status              string        `json:"status"`
}

// ConnectionTestResult reports a simulated platform connection check.
type ConnectionTestResult struct {
	Platform     string    `json:"platform"`
	PlatformName string    `json:"platformName"`
	Success      bool      `json:"success"`
	Message      string    `json:"message"`
	Latency      int       `json:"latency"` // milliseconds
	Timestamp    time.Time `json:"timestamp"`
}

// ===== Catalog reads =====

func (s *rpaService) ListActionTypes() []catalog.ActionType {
	return s.catalog.ListActionTypes()
}

func (s *rpaService) ListPlatforms() []catalog.Platform {
	return s.catalog.ListPlatforms()
}

func (s *rpaService) GetPlatform(platformID string) (catalog.Platform, error) {
	return s.catalog.GetPlatform(platformID)
}

func (s *rpaService) ListTemplates() []catalog.WorkflowTemplate {
	return s.catalog.ListTemplates()
}

func (s *rpaService) GetTemplate(templateID string) (catalog.WorkflowTemplate, error) {
	return s.catalog.GetTemplate(templateID)
}

// ===== Workflow CRUD =====

func (s *rpaService) CreateWorkflow(req *CreateWorkflowRequest) (*models.Workflow, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required: %w", models.ErrValidation)
	}
	if len(req.Steps) == 0 {
		return nil, fmt.Errorf("steps array is required: %w", models.ErrValidation)
	}

	now := time.Now()
	workflow := &models.Workflow{
		WorkflowID:          "wf_" + uuid.New().String(),
		Name:                req.Name,
		Description:         req.Description,
		Steps:               models.StepList(req.Steps),
		Schedule:            req.Schedule,
		PlatformConnections: req.PlatformConnections,
		Status:              models.WorkflowStatusActive,
		RunCount:            0,
		LastRun:             nil,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.workflowRepo.Create(workflow); err != nil {
		return nil, err
	}
	return workflow, nil
}

func (s *rpaService) ListWorkflows() ([]models.Workflow, error) {
	return s.workflowRepo.List()
}

func (s *rpaService) GetWorkflow(workflowID string) (*models.Workflow, error) {
	return s.workflowRepo.Get(workflowID)
}

func (s *rpaService) UpdateWorkflow(workflowID string, req *UpdateWorkflowRequest) (*models.Workflow, error) {
	workflow, err := s.workflowRepo.Get(workflowID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		workflow.Name = req.Name
	}
	if req.Description != "" {
		workflow.Description = req.Description
	}
	if req.Steps != nil {
		workflow.Steps = models.StepList(req.Steps)
	}
	if req.Schedule != nil {
		workflow.Schedule = req.Schedule
	}
	if req.PlatformConnections != nil {
		workflow.PlatformConnections = req.PlatformConnections
	}
	if req.Status != "" {
		workflow.Status = req.Status
	}
	workflow.UpdatedAt = time.Now()

	if err := s.workflowRepo.Update(workflow); err != nil {
		return nil, err
	}
	return workflow, nil
}

func (s *rpaService) DeleteWorkflow(workflowID string) error {
	return s.workflowRepo.Delete(workflowID)
}

// ===== Execution =====

func (s *rpaService) ExecuteWorkflow(workflowID string, opts engine.ExecuteOptions) (*models.WorkflowRun, error) {
	return s.engine.Execute(workflowID, opts)
}

// DemoExecute seeds a throwaway workflow from a template, runs it and
// deletes the workflow again. The run record stays in history.
func (s *rpaService) DemoExecute(templateID string) (*models.WorkflowRun, error) {
	template, err := s.catalog.GetTemplate(templateID)
	if err != nil {
		return nil, err
	}

	workflow, err := s.CreateWorkflow(&CreateWorkflowRequest{
		Name:        "Demo: " + template.Name,
		Description: template.Description,
		Steps:       template.Steps,
	})
	if err != nil {
		return nil, err
	}

	run, err := s.engine.Execute(workflow.WorkflowID, engine.ExecuteOptions{})
	if delErr := s.workflowRepo.Delete(workflow.WorkflowID); delErr != nil && err == nil {
		err = delErr
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

func (s *rpaService) TestConnection(platformID string, credentials models.JSONB) (*ConnectionTestResult, error) {
	platform, err := s.catalog.GetPlatform(platformID)
	if err != nil {
		return nil, err
	}

	// Simulated handshake latency.
	delay := s.cfg.ConnTestMinMs + rand.Intn(s.cfg.ConnTestSpanMs+1)
	time.Sleep(time.Duration(delay) * time.Millisecond)

	success := rand.Float64() > 0.1
	message := "Connection successful"
	if !success {
		message = "Connection failed: Invalid credentials"
	}

	return &ConnectionTestResult{
		Platform:     platformID,
		PlatformName: platform.Name,
		Success:      success,
		Message:      message,
		Latency:      100 + rand.Intn(200),
		Timestamp:    time.Now(),
	}, nil
}

func (s *rpaService) GetRunHistory(workflowID string, limit int) ([]models.WorkflowRun, error) {
	if limit <= 0 {
		limit = s.cfg.HistoryLimit
	}
	return s.historyRepo.Query(workflowID, limit)
}
