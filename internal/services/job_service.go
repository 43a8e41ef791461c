package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/justsurfingit/trackjob/internal/dtos"
	"github.com/justsurfingit/trackjob/internal/models"
	"gorm.io/gorm"
)

type JobService struct {
	DB *gorm.DB
}

func NewJobService(db *gorm.DB) *JobService {
	return &JobService{DB: db}
}

// List returns the user's jobs, newest first.
func (s *JobService) List(ctx context.Context, userID uint) ([]models.Job, error) {
	jobs := []models.Job{}
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&jobs).Error
	return jobs, err
}

func (s *JobService) Get(ctx context.Context, userID, id uint) (*models.Job, error) {
	var job models.Job
	err := s.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (s *JobService) Create(ctx context.Context, userID uint, req *dtos.JobRequest) (*models.Job, error) {
	job := &models.Job{UserID: userID}
	if err := applyJobRequest(job, req); err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Create(job).Error; err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	return job, nil
}

// Update replaces the editable fields of a job with the form values.
func (s *JobService) Update(ctx context.Context, userID, id uint, req *dtos.JobRequest) (*models.Job, error) {
	job, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := applyJobRequest(job, req); err != nil {
		return nil, err
	}
	// Explicit columns so cleared optional fields are written too.
	err = s.DB.WithContext(ctx).Model(job).
		Select("company", "position", "email", "status", "applied_date").
		Updates(job).Error
	if err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	return job, nil
}

// Delete removes a job together with its follow-ups.
func (s *JobService) Delete(ctx context.Context, userID, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Job{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("job_id = ?", id).Delete(&models.FollowUp{}).Error
	})
}

func applyJobRequest(job *models.Job, req *dtos.JobRequest) error {
	job.Company = strings.TrimSpace(req.Company)
	job.Position = strings.TrimSpace(req.Position)
	job.Email = strings.TrimSpace(req.Email)

	job.Status = req.Status
	if job.Status == "" {
		job.Status = models.StatusApplied
	}

	job.AppliedDate = nil
	if req.AppliedDate != "" {
		d, err := dtos.ParseDate(req.AppliedDate)
		if err != nil {
			return err
		}
		job.AppliedDate = &d
	}
	return nil
}
