package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/trackjob/internal/dtos"
	"github.com/justsurfingit/trackjob/internal/services"
)

// bindJSON decodes and validates the body into req. On failure it writes the
// 400 response and returns false.
func bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	var fe dtos.FieldErrors
	if errors.As(dtos.Translate(req, err), &fe) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fe.Error(), "fields": fe})
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
	return false
}

// paramID reads a positive numeric path parameter.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// respondError maps service errors onto status codes. Anything unexpected
// is a 500 prefixed with fallback.
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "Email is already registered"})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, services.ErrWrongPassword):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Current password is incorrect"})
	case errors.Is(err, services.ErrNoContactEmail):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Add a contact email to this job before sending a follow-up"})
	case errors.Is(err, services.ErrLLMUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Job extraction is not configured on this server"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback + ": " + err.Error()})
	}
}
