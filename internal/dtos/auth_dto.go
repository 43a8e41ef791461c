package dtos

import "github.com/justsurfingit/trackjob/internal/models"

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2" msg:"Name must be at least 2 characters"`
	Email    string `json:"email" binding:"required,email" msg:"Invalid email"`
	Password string `json:"password" binding:"required,min=8" msg:"Password must be at least 8 characters"`
	Terms    bool   `json:"terms" binding:"required" msg:"You must accept the Terms & Privacy Policy"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" msg:"Invalid email"`
	Password string `json:"password" binding:"required,min=8" msg:"Password must be at least 8 characters"`
	Remember bool   `json:"remember"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type UpdateProfileRequest struct {
	Name            string `json:"name" binding:"required,min=2" msg:"Name must be at least 2 characters"`
	Email           string `json:"email" binding:"required,email" msg:"Invalid email"`
	CurrentPassword string `json:"currentPassword,omitempty" binding:"required_with=NewPassword" msg:"Current password is required to set a new one"`
	NewPassword     string `json:"newPassword,omitempty" binding:"omitempty,min=8" msg:"Password must be at least 8 characters"`
}
