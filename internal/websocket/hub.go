// Package websocket streams run events to subscribed clients. A client
// subscribes to a topic, either a run id or a workflow id; every event is
// delivered under both, so a stream opened on a workflow sees all of its
// runs from run_start onward.
package websocket

import (
	"sync"
	"time"

	"otobook-rpa-service/internal/models"
)

// EventType identifies a run lifecycle event.
type EventType string

const (
	EventRunStart     EventType = "run_start"
	EventStepComplete EventType = "step_complete"
	EventRunComplete  EventType = "run_complete"
)

// RunEvent is one frame of a run's event stream. Step is set only on
// step_complete; the outcome fields only on run_complete.
type RunEvent struct {
	RunID          string             `json:"runId"`
	WorkflowID     string             `json:"workflowId"`
	Event          EventType          `json:"event"`
	Timestamp      time.Time          `json:"timestamp"`
	WorkflowName   string             `json:"workflowName,omitempty"`
	TotalSteps     int                `json:"totalSteps,omitempty"`
	Step           *models.StepResult `json:"step,omitempty"`
	Status         string             `json:"status,omitempty"`
	CompletedSteps int                `json:"completedSteps,omitempty"`
	FailedSteps    int                `json:"failedSteps,omitempty"`
}

// Hub fans run events out to subscribers, keyed by topic.
type Hub struct {
	subscribers map[string]map[*Client]struct{}

	events chan *RunEvent
	attach chan *Client
	detach chan *Client

	mu sync.RWMutex
}

// NewHub creates an idle hub; call Run to start delivery.
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[*Client]struct{}),
		events:      make(chan *RunEvent, 256),
		attach:      make(chan *Client),
		detach:      make(chan *Client),
	}
}

// Run delivers events until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.attach:
			h.mu.Lock()
			if h.subscribers[client.topic] == nil {
				h.subscribers[client.topic] = make(map[*Client]struct{})
			}
			h.subscribers[client.topic][client] = struct{}{}
			h.mu.Unlock()

		case client := <-h.detach:
			h.mu.Lock()
			h.drop(client)
			h.mu.Unlock()

		case event := <-h.events:
			h.deliver(event)
		}
	}
}

// deliver sends the event to subscribers of the run topic and of the
// workflow topic. A client whose buffer is full is dropped rather than
// allowed to stall the loop.
func (h *Hub) deliver(event *RunEvent) {
	h.mu.RLock()
	targets := make([]*Client, 0, 4)
	for _, topic := range []string{event.RunID, event.WorkflowID} {
		for client := range h.subscribers[topic] {
			targets = append(targets, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range targets {
		select {
		case client.send <- event:
		default:
			h.mu.Lock()
			h.drop(client)
			h.mu.Unlock()
		}
	}
}

// drop removes a client and closes its channel. Caller holds mu.
func (h *Hub) drop(client *Client) {
	subscribers, ok := h.subscribers[client.topic]
	if !ok {
		return
	}
	if _, ok := subscribers[client]; !ok {
		return
	}
	delete(subscribers, client)
	close(client.send)
	if len(subscribers) == 0 {
		delete(h.subscribers, client.topic)
	}
}

// PublishRunStart announces that a run has begun.
func (h *Hub) PublishRunStart(run *models.WorkflowRun) {
	h.events <- &RunEvent{
		RunID:        run.RunID,
		WorkflowID:   run.WorkflowID,
		Event:        EventRunStart,
		Timestamp:    time.Now(),
		WorkflowName: run.WorkflowName,
		TotalSteps:   run.TotalSteps,
	}
}

// PublishStepComplete announces the outcome of a single step.
func (h *Hub) PublishStepComplete(run *models.WorkflowRun, step models.StepResult) {
	h.events <- &RunEvent{
		RunID:      run.RunID,
		WorkflowID: run.WorkflowID,
		Event:      EventStepComplete,
		Timestamp:  time.Now(),
		Step:       &step,
	}
}

// PublishRunComplete announces the run's final status and counts.
func (h *Hub) PublishRunComplete(run *models.WorkflowRun) {
	h.events <- &RunEvent{
		RunID:          run.RunID,
		WorkflowID:     run.WorkflowID,
		Event:          EventRunComplete,
		Timestamp:      time.Now(),
		Status:         run.Status,
		CompletedSteps: run.CompletedSteps,
		FailedSteps:    run.FailedSteps,
	}
}

// Register subscribes a client to its topic.
func (h *Hub) Register(client *Client) {
	h.attach <- client
}

// Unregister removes a client's subscription.
func (h *Hub) Unregister(client *Client) {
	h.detach <- client
}
