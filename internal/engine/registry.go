package engine

import (
	"fmt"

	"otobook-rpa-service/internal/models"
)

// Executor runs one action of a single step type. Implementations must be
// stateless with respect to the engine so real automation backends can be
// swapped in without touching it.
type Executor interface {
	Execute(action string, config models.JSONB) (models.JSONB, error)
}

// ExecutorRegistry maps step types to their executors
type ExecutorRegistry struct {
	executors map[string]Executor
}

// NewExecutorRegistry creates an empty registry
func NewExecutorRegistry() *ExecutorRegistry {
	return &ExecutorRegistry{
		executors: make(map[string]Executor),
	}
}

// Register registers an executor for a step type, replacing any previous one
func (r *ExecutorRegistry) Register(stepType string, executor Executor) {
	r.executors[stepType] = executor
}

// Get retrieves the executor for a step type
func (r *ExecutorRegistry) Get(stepType string) (Executor, error) {
	executor, exists := r.executors[stepType]
	if !exists {
		return nil, fmt.Errorf("unknown step type: %s", stepType)
	}
	return executor, nil
}

// NewDefaultRegistry returns a registry with the seven built-in simulated
// executors registered.
func NewDefaultRegistry() *ExecutorRegistry {
	r := NewExecutorRegistry()
	r.Register("ocr", &OCRExecutor{})
	r.Register("api", &APIExecutor{})
	r.Register("data", &DataExecutor{})
	r.Register("browser", &BrowserExecutor{})
	r.Register("file", &FileExecutor{})
	r.Register("database", &DatabaseExecutor{})
	r.Register("email", &EmailExecutor{})
	return r
}
