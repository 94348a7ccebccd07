package handler

import (
	"net/http"

	"otobook-rpa-service/internal/websocket"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"
)

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for now - should be restricted in production
		return true
	},
}

// WebSocketHandler handles WebSocket connections
type WebSocketHandler struct {
	hub *websocket.Hub
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(hub *websocket.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// RegisterRoutes registers WebSocket routes
func (h *WebSocketHandler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/rpa")
	{
		api.GET("/runs/:runId/stream", h.StreamRun)
		api.GET("/workflows/:workflowId/stream", h.StreamWorkflow)
	}
}

// StreamRun establishes a WebSocket subscription to one run's events
func (h *WebSocketHandler) StreamRun(c *gin.Context) {
	h.stream(c, c.Param("runId"), "runId is required")
}

// StreamWorkflow subscribes to events from every run of one workflow.
// Opening this stream before executing catches run_start.
func (h *WebSocketHandler) StreamWorkflow(c *gin.Context) {
	h.stream(c, c.Param("workflowId"), "workflowId is required")
}

func (h *WebSocketHandler) stream(c *gin.Context, topic, missing string) {
	if topic == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": missing})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	client := websocket.NewClient(h.hub, conn, topic)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
