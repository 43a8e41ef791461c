package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/trackjob/internal/dtos"
	"github.com/justsurfingit/trackjob/internal/services"
)

// JobHandler serves the job routes. LLMService may be nil, in which case
// extraction answers 503.
type JobHandler struct {
	LLMService *services.LLMService
	JobService *services.JobService
}

func NewJobHandler(llm *services.LLMService, j *services.JobService) *JobHandler {
	return &JobHandler{LLMService: llm, JobService: j}
}

// ListJobs is GET /jobs
func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs, err := h.JobService.List(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err, "Failed to fetch jobs")
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// CreateJob is POST /jobs
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dtos.JobRequest
	if !bindJSON(c, &req) {
		return
	}
	job, err := h.JobService.Create(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		respondError(c, err, "Failed to create job")
		return
	}
	c.JSON(http.StatusCreated, job)
}

// UpdateJob is PUT /jobs/:id
func (h *JobHandler) UpdateJob(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dtos.JobRequest
	if !bindJSON(c, &req) {
		return
	}
	job, err := h.JobService.Update(c.Request.Context(), currentUser(c), id, &req)
	if err != nil {
		respondError(c, err, "Failed to update job")
		return
	}
	c.JSON(http.StatusOK, job)
}

// DeleteJob is DELETE /jobs/:id
func (h *JobHandler) DeleteJob(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.JobService.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		respondError(c, err, "Failed to delete job")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ParseJob is POST /jobs/extract
func (h *JobHandler) ParseJob(c *gin.Context) {
	if h.LLMService == nil {
		respondError(c, services.ErrLLMUnavailable, "")
		return
	}
	var req dtos.JobExtractionRequest
	if !bindJSON(c, &req) {
		return
	}
	extracted, err := h.LLMService.ExtractJob(c.Request.Context(), req.RawHTML)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "AI Extraction failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, extracted)
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
