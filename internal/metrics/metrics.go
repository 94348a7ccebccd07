// Package metrics exposes Prometheus metrics for workflow execution.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry manages all Prometheus metrics for the RPA service.
type Registry struct {
	registry *prometheus.Registry

	executionsTotal   *prometheus.CounterVec
	executionDuration *prometheus.HistogramVec
	activeRuns        *prometheus.GaugeVec
	stepDuration      *prometheus.HistogramVec
}

// NewRegistry creates a registry with all workflow metrics registered.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		executionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rpa_workflow_executions_total",
			Help: "Total number of workflow executions by outcome status.",
		}, []string{"workflow", "status"}),
		executionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rpa_workflow_execution_duration_seconds",
			Help:    "Wall-clock duration of workflow executions.",
			Buckets: prometheus.DefBuckets,
		}, []string{"workflow"}),
		activeRuns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "rpa_workflow_active_runs",
			Help: "Number of workflow executions currently in flight.",
		}, []string{"workflow"}),
		stepDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rpa_workflow_step_duration_seconds",
			Help:    "Duration of individual workflow steps by step type.",
			Buckets: prometheus.DefBuckets,
		}, []string{"workflow", "type"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.executionsTotal,
		r.executionDuration,
		r.activeRuns,
		r.stepDuration,
	)
	return r
}

// RecordExecution records a completed workflow execution.
func (r *Registry) RecordExecution(workflowName, status string, duration time.Duration) {
	r.executionsTotal.WithLabelValues(workflowName, status).Inc()
	r.executionDuration.WithLabelValues(workflowName).Observe(duration.Seconds())
}

// RecordStep records a completed workflow step.
func (r *Registry) RecordStep(workflowName, stepType string, duration time.Duration) {
	r.stepDuration.WithLabelValues(workflowName, stepType).Observe(duration.Seconds())
}

// IncActiveRuns increments the in-flight run count for a workflow.
func (r *Registry) IncActiveRuns(workflowName string) {
	r.activeRuns.WithLabelValues(workflowName).Inc()
}

// DecActiveRuns decrements the in-flight run count for a workflow.
func (r *Registry) DecActiveRuns(workflowName string) {
	r.activeRuns.WithLabelValues(workflowName).Dec()
}

// Handler returns the scrape handler for this registry.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
