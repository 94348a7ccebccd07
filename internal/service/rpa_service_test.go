package service

import (
	"errors"
	"testing"

	"otobook-rpa-service/internal/catalog"
	"otobook-rpa-service/internal/config"
	"otobook-rpa-service/internal/engine"
	"otobook-rpa-service/internal/models"
	"otobook-rpa-service/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Workflow{},
		&models.WorkflowRun{},
	)
	require.NoError(t, err)

	return db
}

func newTestService(t *testing.T) RPAService {
	db := setupTestDB(t)
	cat := catalog.New()
	workflows := repository.NewWorkflowRepository(db)
	history := repository.NewRunHistoryRepository(db)
	eng := engine.NewEngine(workflows, history, engine.NewDefaultRegistry(), nil, nil)

	// Zeroed connection-test delays keep tests fast.
	cfg := config.RPAConfig{HistoryLimit: 50, ConnTestMinMs: 0, ConnTestSpanMs: 0}
	return NewRPAService(cat, workflows, history, eng, cfg)
}

func validCreateRequest() *CreateWorkflowRequest {
	return &CreateWorkflowRequest{
		Name:        "Invoice Pipeline",
		Description: "extract and post invoices",
		Steps: []models.Step{
			{Type: "ocr", Action: "extract_form"},
			{Type: "api", Action: "post", Config: models.JSONB{"targets": []string{"notion"}}},
		},
	}
}

func TestCreateWorkflow(t *testing.T) {
	svc := newTestService(t)

	wf, err := svc.CreateWorkflow(validCreateRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, wf.WorkflowID)
	assert.Equal(t, "Invoice Pipeline", wf.Name)
	assert.Equal(t, models.WorkflowStatusActive, wf.Status)
	assert.Equal(t, 0, wf.RunCount)
	assert.Nil(t, wf.LastRun)
	assert.Len(t, wf.Steps, 2)
}

func TestCreateWorkflow_IDsAreUnique(t *testing.T) {
	svc := newTestService(t)

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		wf, err := svc.CreateWorkflow(validCreateRequest())
		require.NoError(t, err)
		assert.False(t, seen[wf.WorkflowID])
		seen[wf.WorkflowID] = true
	}
}

func TestCreateWorkflow_Validation(t *testing.T) {
	svc := newTestService(t)

	req := validCreateRequest()
	req.Name = ""
	_, err := svc.CreateWorkflow(req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrValidation))

	req = validCreateRequest()
	req.Steps = nil
	_, err = svc.CreateWorkflow(req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrValidation))
}

func TestUpdateWorkflow_PartialMerge(t *testing.T) {
	svc := newTestService(t)

	wf, err := svc.CreateWorkflow(validCreateRequest())
	require.NoError(t, err)

	updated, err := svc.UpdateWorkflow(wf.WorkflowID, &UpdateWorkflowRequest{
		Name:   "Renamed Pipeline",
		Status: models.WorkflowStatusPaused,
	})
	require.NoError(t, err)

	assert.Equal(t, "Renamed Pipeline", updated.Name)
	assert.Equal(t, models.WorkflowStatusPaused, updated.Status)
	// Untouched fields survive the merge.
	assert.Equal(t, "extract and post invoices", updated.Description)
	assert.Len(t, updated.Steps, 2)
}

func TestUpdateWorkflow_StepsReplacedWholesale(t *testing.T) {
	svc := newTestService(t)

	wf, err := svc.CreateWorkflow(validCreateRequest())
	require.NoError(t, err)

	updated, err := svc.UpdateWorkflow(wf.WorkflowID, &UpdateWorkflowRequest{
		Steps: []models.Step{{Type: "email", Action: "send"}},
	})
	require.NoError(t, err)
	require.Len(t, updated.Steps, 1)
	assert.Equal(t, "email", updated.Steps[0].Type)
}

func TestUpdateWorkflow_NotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.UpdateWorkflow("wf_missing", &UpdateWorkflowRequest{Name: "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestExecuteWorkflow(t *testing.T) {
	svc := newTestService(t)

	wf, err := svc.CreateWorkflow(validCreateRequest())
	require.NoError(t, err)

	run, err := svc.ExecuteWorkflow(wf.WorkflowID, engine.ExecuteOptions{})
	require.NoError(t, err)
	assert.Equal(t, models.RunStatusCompleted, run.Status)

	got, err := svc.GetWorkflow(wf.WorkflowID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.RunCount)
}

func TestDemoExecute(t *testing.T) {
	svc := newTestService(t)

	run, err := svc.DemoExecute("invoice_processing")
	require.NoError(t, err)

	assert.Equal(t, "Demo: Invoice Processing", run.WorkflowName)
	assert.Equal(t, models.RunStatusCompleted, run.Status)
	assert.Equal(t, 3, run.TotalSteps)

	// The throwaway workflow is gone, the run record is not.
	_, err = svc.GetWorkflow(run.WorkflowID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrNotFound))

	history, err := svc.GetRunHistory("", 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, run.RunID, history[0].RunID)
}

func TestDemoExecute_UnknownTemplate(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.DemoExecute("nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestTestConnection(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.TestConnection("wordpress", models.JSONB{"apiKey": "k"})
	require.NoError(t, err)

	assert.Equal(t, "wordpress", result.Platform)
	assert.Equal(t, "WordPress", result.PlatformName)
	assert.GreaterOrEqual(t, result.Latency, 100)
	assert.Less(t, result.Latency, 300)
	if result.Success {
		assert.Equal(t, "Connection successful", result.Message)
	} else {
		assert.Contains(t, result.Message, "Connection failed")
	}
}

func TestTestConnection_UnknownPlatform(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.TestConnection("myspace", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestGetRunHistory_DefaultLimit(t *testing.T) {
	svc := newTestService(t)

	wf, err := svc.CreateWorkflow(validCreateRequest())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := svc.ExecuteWorkflow(wf.WorkflowID, engine.ExecuteOptions{})
		require.NoError(t, err)
	}

	// limit <= 0 falls back to the configured default.
	runs, err := svc.GetRunHistory("", 0)
	require.NoError(t, err)
	assert.Len(t, runs, 3)

	runs, err = svc.GetRunHistory("", 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestDeleteWorkflow(t *testing.T) {
	svc := newTestService(t)

	wf, err := svc.CreateWorkflow(validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteWorkflow(wf.WorkflowID))

	err = svc.DeleteWorkflow(wf.WorkflowID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}
