package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/justsurfingit/trackjob/internal/dtos"
	"github.com/justsurfingit/trackjob/internal/models"
	"go.uber.org/zap"
)

// ListFollowUps returns every follow-up of the user. A body that is not a
// JSON array is logged and read as an empty list.
func (c *Client) ListFollowUps(ctx context.Context) ([]models.FollowUp, error) {
	d, err := c.send(ctx, http.MethodGet, "/followups", nil)
	if err != nil {
		return nil, err
	}
	var followUps []models.FollowUp
	if err := json.Unmarshal(d, &followUps); err != nil {
		c.logger.Warn("unexpected follow-up list payload", zap.Error(err))
		return []models.FollowUp{}, nil
	}
	if followUps == nil {
		followUps = []models.FollowUp{}
	}
	return followUps, nil
}

func (c *Client) ListFollowUpsByJob(ctx context.Context, jobID uint) ([]models.FollowUp, error) {
	var followUps []models.FollowUp
	if err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/followups/%d", jobID), nil, &followUps); err != nil {
		return nil, err
	}
	return followUps, nil
}

func (c *Client) AddFollowUp(ctx context.Context, req *dtos.FollowUpRequest) (*models.FollowUp, error) {
	var f models.FollowUp
	if err := c.doRequest(ctx, http.MethodPost, "/followups", req, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// UpsertJobFollowUp schedules, reschedules or immediately sends the
// follow-up of one job.
func (c *Client) UpsertJobFollowUp(ctx context.Context, jobID uint, req *dtos.JobFollowUpRequest) (*models.FollowUp, error) {
	var f models.FollowUp
	if err := c.doRequest(ctx, http.MethodPut, fmt.Sprintf("/jobs/%d/followup", jobID), req, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (c *Client) DeleteFollowUp(ctx context.Context, id uint) error {
	return c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/followups/%d", id), nil, nil)
}
