package engine

import (
	"fmt"
	"time"

	"otobook-rpa-service/internal/log"
	"otobook-rpa-service/internal/metrics"
	"otobook-rpa-service/internal/models"
	"otobook-rpa-service/internal/repository"
	"otobook-rpa-service/internal/websocket"

	"github.com/google/uuid"
)

// ExecuteOptions controls a single execution attempt.
type ExecuteOptions struct {
	StopOnError bool `json:"stopOnError"`
}

// Engine executes a workflow's steps in order, dispatching each to the
// executor registered for its type and accumulating the outcomes into a
// run record. Step failures are recorded, not propagated; the only error
// Execute returns before producing a record is an unresolved workflow id.
type Engine struct {
	workflows *repository.WorkflowRepository
	history   *repository.RunHistoryRepository
	registry  *ExecutorRegistry
	hub       *websocket.Hub
	metrics   *metrics.Registry
}

// NewEngine creates an engine. hub and metricsReg may be nil.
func NewEngine(
	workflows *repository.WorkflowRepository,
	history *repository.RunHistoryRepository,
	registry *ExecutorRegistry,
	hub *websocket.Hub,
	metricsReg *metrics.Registry,
) *Engine {
	return &Engine{
		workflows: workflows,
		history:   history,
		registry:  registry,
		hub:       hub,
		metrics:   metricsReg,
	}
}

// Execute runs every step of the workflow sequentially and returns the
// finalized run record. Steps are read once up front: a workflow mutated
// mid-run does not affect an in-flight run.
func (e *Engine) Execute(workflowID string, opts ExecuteOptions) (*models.WorkflowRun, error) {
	workflow, err := e.workflows.Get(workflowID)
	if err != nil {
		// NotFound propagates before any run record exists.
		return nil, err
	}

	steps := workflow.Steps
	runID := "run_" + uuid.New().String()
	run := &models.WorkflowRun{
		RunID:        runID,
		WorkflowID:   workflowID,
		WorkflowName: workflow.Name,
		Status:       models.RunStatusRunning,
		StartTime:    time.Now(),
		Steps:        models.StepResultList{},
		TotalSteps:   len(steps),
	}
	if err := e.history.Create(run); err != nil {
		return nil, err
	}

	logger := log.GetLogger()
	logger.Infof("Executing workflow %s (%s), %d steps", workflow.Name, runID, len(steps))
	if e.hub != nil {
		e.hub.PublishRunStart(run)
	}
	if e.metrics != nil {
		e.metrics.IncActiveRuns(workflow.Name)
		// The gauge must come back down even when finalization fails.
		defer e.metrics.DecActiveRuns(workflow.Name)
	}

	var abortErr error
	for i, step := range steps {
		logger.Infof("  Step %d/%d: %s - %s", i+1, len(steps), step.Type, step.Action)

		result := e.executeStep(step, i+1)
		run.Steps = append(run.Steps, result)

		if result.Status == models.StepStatusCompleted {
			run.CompletedSteps++
		} else {
			run.FailedSteps++
		}
		if e.metrics != nil {
			e.metrics.RecordStep(workflow.Name, step.Type, time.Duration(result.Duration)*time.Millisecond)
		}
		if e.hub != nil {
			e.hub.PublishStepComplete(run, result)
		}

		if result.Status == models.StepStatusFailed && opts.StopOnError {
			abortErr = fmt.Errorf("step %d failed: %s", i+1, result.Error)
			break
		}
	}

	endTime := time.Now()
	run.EndTime = &endTime
	if abortErr != nil {
		run.Status = models.RunStatusFailed
		run.Error = abortErr.Error()
		logger.Errorf("Workflow %s failed: %v", workflow.Name, abortErr)
	} else if run.FailedSteps == 0 {
		run.Status = models.RunStatusCompleted
		logger.Infof("Workflow %s completed: %d/%d steps", workflow.Name, run.CompletedSteps, run.TotalSteps)
	} else {
		run.Status = models.RunStatusCompletedWithErrors
		logger.Warnf("Workflow %s completed with errors: %d/%d steps failed", workflow.Name, run.FailedSteps, run.TotalSteps)
	}

	// The accumulated record is persisted on every path, aborted runs included.
	if err := e.history.Finalize(run); err != nil {
		return nil, err
	}
	// Counters move after every attempt, success or failure alike.
	if err := e.workflows.RecordRunCompletion(workflowID, endTime); err != nil {
		logger.Errorf("Failed to record run completion for %s: %v", workflowID, err)
	}

	if e.metrics != nil {
		e.metrics.RecordExecution(workflow.Name, run.Status, endTime.Sub(run.StartTime))
	}
	if e.hub != nil {
		e.hub.PublishRunComplete(run)
	}

	return run, nil
}

// executeStep dispatches one step to its executor. Executor errors,
// including an unregistered step type, become a failed StepResult.
func (e *Engine) executeStep(step models.Step, stepNumber int) models.StepResult {
	start := time.Now()
	result := models.StepResult{
		StepNumber: stepNumber,
		Type:       step.Type,
		Action:     step.Action,
	}

	executor, err := e.registry.Get(step.Type)
	var output models.JSONB
	if err == nil {
		output, err = executor.Execute(step.Action, step.Config)
	}

	result.Duration = time.Since(start).Milliseconds()
	result.Timestamp = time.Now()
	if err != nil {
		result.Status = models.StepStatusFailed
		result.Error = err.Error()
		return result
	}

	result.Status = models.StepStatusCompleted
	result.Output = output
	return result
}
