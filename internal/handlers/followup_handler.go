package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/trackjob/internal/dtos"
	"github.com/justsurfingit/trackjob/internal/services"
)

type FollowUpHandler struct {
	FollowUpService *services.FollowUpService
}

func NewFollowUpHandler(f *services.FollowUpService) *FollowUpHandler {
	return &FollowUpHandler{FollowUpService: f}
}

// ListFollowUps is GET /followups
func (h *FollowUpHandler) ListFollowUps(c *gin.Context) {
	list, err := h.FollowUpService.List(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err, "Failed to load follow-ups")
		return
	}
	c.JSON(http.StatusOK, list)
}

// ListJobFollowUps is GET /followups/:jobId
func (h *FollowUpHandler) ListJobFollowUps(c *gin.Context) {
	jobID, ok := paramID(c, "jobId")
	if !ok {
		return
	}
	list, err := h.FollowUpService.ListByJob(c.Request.Context(), currentUser(c), jobID)
	if err != nil {
		respondError(c, err, "Failed to load follow-ups")
		return
	}
	c.JSON(http.StatusOK, list)
}

// CreateFollowUp is POST /followups
func (h *FollowUpHandler) CreateFollowUp(c *gin.Context) {
	var req dtos.FollowUpRequest
	if !bindJSON(c, &req) {
		return
	}
	f, err := h.FollowUpService.Create(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		respondError(c, err, "Failed to add follow-up")
		return
	}
	c.JSON(http.StatusCreated, f)
}

// JobFollowUp is PUT (or POST) /jobs/:id/followup
func (h *FollowUpHandler) JobFollowUp(c *gin.Context) {
	jobID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dtos.JobFollowUpRequest
	if !bindJSON(c, &req) {
		return
	}
	f, err := h.FollowUpService.ScheduleOrSend(c.Request.Context(), currentUser(c), jobID, &req)
	if err != nil {
		respondError(c, err, "Failed to send follow-up")
		return
	}
	c.JSON(http.StatusOK, f)
}

// DeleteFollowUp is DELETE /followups/:id
func (h *FollowUpHandler) DeleteFollowUp(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.FollowUpService.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		respondError(c, err, "Failed to delete follow-up")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
