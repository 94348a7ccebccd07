package handler

import (
	"errors"
	"net/http"
	"strconv"

	"otobook-rpa-service/internal/engine"
	"otobook-rpa-service/internal/models"
	"otobook-rpa-service/internal/service"

	"github.com/gin-gonic/gin"
)

// RPAHandler binds the RPA service to HTTP
type RPAHandler struct {
	service service.RPAService
}

// NewRPAHandler creates a new RPA handler
func NewRPAHandler(service service.RPAService) *RPAHandler {
	return &RPAHandler{service: service}
}

// RegisterRoutes registers all RPA routes
func (h *RPAHandler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/rpa")
	{
		// Action and platform info
		api.GET("/actions", h.GetActionTypes)
		api.GET("/platforms", h.GetPlatforms)
		api.GET("/platforms/:platformId", h.GetPlatform)

		// Templates
		api.GET("/templates", h.GetTemplates)
		api.GET("/templates/:templateId", h.GetTemplate)

		// Workflow CRUD
		api.POST("/workflows", h.CreateWorkflow)
		api.GET("/workflows", h.ListWorkflows)
		api.GET("/workflows/:workflowId", h.GetWorkflow)
		api.PUT("/workflows/:workflowId", h.UpdateWorkflow)
		api.DELETE("/workflows/:workflowId", h.DeleteWorkflow)

		// Execution
		api.POST("/workflows/:workflowId/execute", h.ExecuteWorkflow)
		api.POST("/demo", h.DemoExecute)

		// Connection and history
		api.POST("/test-connection", h.TestConnection)
		api.GET("/history", h.GetRunHistory)
	}
}

// respondError maps service errors to status codes
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrValidation):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}

func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// GetActionTypes returns all action types
func (h *RPAHandler) GetActionTypes(c *gin.Context) {
	respondOK(c, http.StatusOK, h.service.ListActionTypes())
}

// GetPlatforms returns all platforms
func (h *RPAHandler) GetPlatforms(c *gin.Context) {
	respondOK(c, http.StatusOK, h.service.ListPlatforms())
}

// GetPlatform returns one platform's configuration
func (h *RPAHandler) GetPlatform(c *gin.Context) {
	platform, err := h.service.GetPlatform(c.Param("platformId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, platform)
}

// GetTemplates returns all workflow templates
func (h *RPAHandler) GetTemplates(c *gin.Context) {
	respondOK(c, http.StatusOK, h.service.ListTemplates())
}

// GetTemplate returns one workflow template
func (h *RPAHandler) GetTemplate(c *gin.Context) {
	template, err := h.service.GetTemplate(c.Param("templateId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, template)
}

// CreateWorkflow creates a new workflow
func (h *RPAHandler) CreateWorkflow(c *gin.Context) {
	var req service.CreateWorkflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	workflow, err := h.service.CreateWorkflow(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, workflow)
}

// ListWorkflows returns all workflows
func (h *RPAHandler) ListWorkflows(c *gin.Context) {
	workflows, err := h.service.ListWorkflows()
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, workflows)
}

// GetWorkflow returns one workflow
func (h *RPAHandler) GetWorkflow(c *gin.Context) {
	workflow, err := h.service.GetWorkflow(c.Param("workflowId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, workflow)
}

// UpdateWorkflow applies a partial update to a workflow
func (h *RPAHandler) UpdateWorkflow(c *gin.Context) {
	var req service.UpdateWorkflowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	workflow, err := h.service.UpdateWorkflow(c.Param("workflowId"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, workflow)
}

// DeleteWorkflow permanently removes a workflow
func (h *RPAHandler) DeleteWorkflow(c *gin.Context) {
	if err := h.service.DeleteWorkflow(c.Param("workflowId")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "Workflow deleted"})
}

// ExecuteWorkflow runs a workflow and returns the finalized run record
func (h *RPAHandler) ExecuteWorkflow(c *gin.Context) {
	var opts engine.ExecuteOptions
	// Options body is optional.
	_ = c.ShouldBindJSON(&opts)

	run, err := h.service.ExecuteWorkflow(c.Param("workflowId"), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, run)
}

type demoRequest struct {
	TemplateID string `json:"templateId"`
}

// DemoExecute runs a template as a throwaway workflow
func (h *RPAHandler) DemoExecute(c *gin.Context) {
	req := demoRequest{TemplateID: "invoice_processing"}
	_ = c.ShouldBindJSON(&req)

	run, err := h.service.DemoExecute(req.TemplateID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"run":    run,
		"isDemo": true,
		"note":   "This is a demo execution with simulated results.",
	})
}

type testConnectionRequest struct {
	PlatformID  string       `json:"platformId"`
	Credentials models.JSONB `json:"credentials"`
}

// TestConnection runs a simulated platform connection check
func (h *RPAHandler) TestConnection(c *gin.Context) {
	var req testConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if req.PlatformID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Platform ID is required"})
		return
	}

	result, err := h.service.TestConnection(req.PlatformID, req.Credentials)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, result)
}

// GetRunHistory returns recent run records, newest first
func (h *RPAHandler) GetRunHistory(c *gin.Context) {
	workflowID := c.Query("workflowId")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	history, err := h.service.GetRunHistory(workflowID, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, history)
}
