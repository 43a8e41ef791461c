package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/trackjob/internal/dtos"
	"github.com/justsurfingit/trackjob/internal/services"
)

type AuthHandler struct {
	UserService *services.UserService
}

func NewAuthHandler(users *services.UserService) *AuthHandler {
	return &AuthHandler{UserService: users}
}

// Register is POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dtos.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.UserService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Registration failed")
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Login is POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dtos.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.UserService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Login failed")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me is GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.UserService.Get(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err, "Failed to load profile")
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile is PUT /auth/update-profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req dtos.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.UserService.UpdateProfile(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		respondError(c, err, "Update failed")
		return
	}
	c.JSON(http.StatusOK, user)
}
