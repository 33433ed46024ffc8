package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/andchir/install-scripts/internal/models"
	"github.com/andchir/install-scripts/internal/services"
)

// RunHandler records and serves script execution results. Transcript text is
// sanitized inside the run service before it is stored.
type RunHandler struct {
	Runs *services.RunService
}

func NewRunHandler(runs *services.RunService) *RunHandler {
	return &RunHandler{Runs: runs}
}

type createRunRequest struct {
	ScriptName string           `json:"script_name" binding:"required"`
	Host       string           `json:"host"`
	Status     models.RunStatus `json:"status"`
	Output     string           `json:"output"`
}

type appendOutputRequest struct {
	Output string           `json:"output"`
	Status models.RunStatus `json:"status"`
}

func validStatus(s models.RunStatus) bool {
	switch s {
	case "", models.RunStatusRunning, models.RunStatusSucceeded, models.RunStatusFailed:
		return true
	}
	return false
}

// CreateRun ingests a captured execution result.
func (h *RunHandler) CreateRun(c *gin.Context) {
	var req createRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if !validStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unknown status"})
		return
	}

	run, err := h.Runs.Create(req.ScriptName, req.Host, req.Status, req.Output)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "result": run})
}

// AppendOutput adds a transcript chunk to an existing run and optionally
// moves it to a terminal status.
func (h *RunHandler) AppendOutput(c *gin.Context) {
	var req appendOutputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if !validStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unknown status"})
		return
	}

	run, err := h.Runs.AppendOutput(c.Param("id"), req.Output, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrRunNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error(), "result": nil})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "result": run})
}

// GetRun returns one execution result by id.
func (h *RunHandler) GetRun(c *gin.Context) {
	run, err := h.Runs.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrRunNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error(), "result": nil})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "result": run})
}

// ListRuns returns recent runs, newest first. Supports ?script= and ?limit=.
func (h *RunHandler) ListRuns(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	runs, err := h.Runs.List(c.Query("script"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(runs),
		"runs":    runs,
	})
}
