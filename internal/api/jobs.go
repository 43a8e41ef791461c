package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/justsurfingit/trackjob/internal/dtos"
	"github.com/justsurfingit/trackjob/internal/models"
)

func (c *Client) ListJobs(ctx context.Context) ([]models.Job, error) {
	var jobs []models.Job
	if err := c.doRequest(ctx, http.MethodGet, "/jobs", nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (c *Client) CreateJob(ctx context.Context, req *dtos.JobRequest) (*models.Job, error) {
	var job models.Job
	if err := c.doRequest(ctx, http.MethodPost, "/jobs", req, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (c *Client) UpdateJob(ctx context.Context, id uint, req *dtos.JobRequest) (*models.Job, error) {
	var job models.Job
	if err := c.doRequest(ctx, http.MethodPut, fmt.Sprintf("/jobs/%d", id), req, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (c *Client) DeleteJob(ctx context.Context, id uint) error {
	return c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/jobs/%d", id), nil, nil)
}

// ExtractJob asks the service to read a job posting and suggest form values.
func (c *Client) ExtractJob(ctx context.Context, req *dtos.JobExtractionRequest) (*dtos.JobExtraction, error) {
	var out dtos.JobExtraction
	if err := c.doRequest(ctx, http.MethodPost, "/jobs/extract", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
