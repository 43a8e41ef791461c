package api

import (
	"context"
	"net/http"

	"github.com/justsurfingit/trackjob/internal/dtos"
	"github.com/justsurfingit/trackjob/internal/models"
)

func (c *Client) Register(ctx context.Context, req *dtos.RegisterRequest) (*models.User, error) {
	var user models.User
	if err := c.doRequest(ctx, http.MethodPost, "/auth/register", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for a bearer token and the user's profile.
func (c *Client) Login(ctx context.Context, req *dtos.LoginRequest) (*dtos.LoginResponse, error) {
	var resp dtos.LoginResponse
	if err := c.doRequest(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.doRequest(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateProfile(ctx context.Context, req *dtos.UpdateProfileRequest) (*models.User, error) {
	var user models.User
	if err := c.doRequest(ctx, http.MethodPut, "/auth/update-profile", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
