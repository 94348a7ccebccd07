package models

import (
	"time"
)

// Workflow statuses
const (
	WorkflowStatusActive = "active"
	WorkflowStatusPaused = "paused"
)

// Run statuses
const (
	RunStatusRunning             = "running"
	RunStatusCompleted           = "completed"
	RunStatusCompletedWithErrors = "completed_with_errors"
	RunStatusFailed              = "failed"
)

// Step statuses
const (
	StepStatusCompleted = "completed"
	StepStatusFailed    = "failed"
)

// Step is one unit of work inside a workflow: an action of a given type
// with an opaque config bag. Steps have no identity of their own and are
// copied by value into run records.
type Step struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Config JSONB  `json:"config,omitempty"`
}

// Workflow is a user-defined, ordered sequence of steps for repeated execution.
type Workflow struct {
	ID                  uint       `gorm:"primaryKey" json:"-"`
	WorkflowID          string     `gorm:"uniqueIndex;size:64;not null" json:"id"`
	Name                string     `gorm:"size:255;not null" json:"name"`
	Description         string     `gorm:"type:text" json:"description,omitempty"`
	Steps               StepList   `gorm:"type:text;not null" json:"steps"`
	Schedule            JSONB      `gorm:"type:text" json:"schedule,omitempty"`
	PlatformConnections JSONB      `gorm:"type:text" json:"platformConnections,omitempty"`
	Status              string     `gorm:"size:32;not null;index" json:"status"`
	RunCount            int        `gorm:"not null;default:0" json:"runCount"`
	LastRun             *time.Time `json:"lastRun"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// TableName sets the table name
func (Workflow) TableName() string {
	return "workflows"
}

// WorkflowRun is the durable record of one execution attempt. A row is
// created with status "running" when execution starts and finalized exactly
// once; it is never updated or deleted after that.
type WorkflowRun struct {
	ID             uint           `gorm:"primaryKey" json:"-"`
	RunID          string         `gorm:"uniqueIndex;size:64;not null" json:"runId"`
	WorkflowID     string         `gorm:"size:64;not null;index" json:"workflowId"`
	WorkflowName   string         `gorm:"size:255" json:"workflowName"`
	Status         string         `gorm:"size:32;not null;index" json:"status"`
	StartTime      time.Time      `json:"startTime"`
	EndTime        *time.Time     `json:"endTime"`
	Steps          StepResultList `gorm:"type:text" json:"steps"`
	TotalSteps     int            `json:"totalSteps"`
	CompletedSteps int            `json:"completedSteps"`
	FailedSteps    int            `json:"failedSteps"`
	Error          string         `gorm:"type:text" json:"error,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// TableName sets the table name
func (WorkflowRun) TableName() string {
	return "workflow_runs"
}

// StepResult is the outcome of a single executed step.
type StepResult struct {
	StepNumber int       `json:"stepNumber"`
	Type       string    `json:"type"`
	Action     string    `json:"action"`
	Status     string    `json:"status"`
	Duration   int64     `json:"duration"` // milliseconds
	Output     JSONB     `json:"output,omitempty"`
	Error      string    `json:"error,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
