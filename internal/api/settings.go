package api

import (
	"context"
	"net/http"

	"github.com/justsurfingit/trackjob/internal/dtos"
	"github.com/justsurfingit/trackjob/internal/models"
)

func (c *Client) GetEmailSettings(ctx context.Context) (*models.EmailSettings, error) {
	var s models.EmailSettings
	if err := c.doRequest(ctx, http.MethodGet, "/email/settings", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) SaveEmailSettings(ctx context.Context, req *dtos.EmailSettingsRequest) (*models.EmailSettings, error) {
	var s models.EmailSettings
	if err := c.doRequest(ctx, http.MethodPost, "/email/settings", req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
