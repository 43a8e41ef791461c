package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/justsurfingit/trackjob/internal/dtos"
	"github.com/justsurfingit/trackjob/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowUpService struct {
	DB       *gorm.DB
	Jobs     *JobService
	Settings *SettingsService
	Mailer   Mailer
	Logger   *zap.Logger

	now func() time.Time
}

func NewFollowUpService(db *gorm.DB, jobs *JobService, settings *SettingsService, mailer Mailer, logger *zap.Logger) *FollowUpService {
	return &FollowUpService{
		DB:       db,
		Jobs:     jobs,
		Settings: settings,
		Mailer:   mailer,
		Logger:   logger.Named("followups"),
		now:      time.Now,
	}
}

// List returns every follow-up on the user's jobs, earliest first, with the
// job's company and contact email filled in.
func (s *FollowUpService) List(ctx context.Context, userID uint) ([]models.FollowUp, error) {
	followUps := []models.FollowUp{}
	err := s.DB.WithContext(ctx).
		Joins("JOIN jobs ON jobs.id = follow_ups.job_id AND jobs.deleted_at IS NULL").
		Where("jobs.user_id = ?", userID).
		Preload("Job").
		Order("follow_ups.follow_up_date, follow_ups.id").
		Find(&followUps).Error
	if err != nil {
		return nil, err
	}
	denormalize(followUps)
	return followUps, nil
}

func (s *FollowUpService) ListByJob(ctx context.Context, userID, jobID uint) ([]models.FollowUp, error) {
	if _, err := s.Jobs.Get(ctx, userID, jobID); err != nil {
		return nil, err
	}
	followUps := []models.FollowUp{}
	err := s.DB.WithContext(ctx).
		Where("job_id = ?", jobID).
		Preload("Job").
		Order("follow_up_date, id").
		Find(&followUps).Error
	if err != nil {
		return nil, err
	}
	denormalize(followUps)
	return followUps, nil
}

func (s *FollowUpService) Create(ctx context.Context, userID uint, req *dtos.FollowUpRequest) (*models.FollowUp, error) {
	job, err := s.Jobs.Get(ctx, userID, req.JobID)
	if err != nil {
		return nil, err
	}
	date, err := dtos.ParseDate(req.FollowUpDate)
	if err != nil {
		return nil, err
	}

	f := &models.FollowUp{
		JobID:        job.ID,
		FollowUpDate: date.UTC(),
		Content:      strings.TrimSpace(req.Content),
		Type:         req.Type,
	}
	if f.Type == "" {
		f.Type = models.FollowUpReminder
	}
	now := s.now().UTC()
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(f).Error; err != nil {
			return err
		}
		return markPast(tx, f, now)
	})
	if err != nil {
		return nil, fmt.Errorf("create follow-up: %w", err)
	}
	f.Job = job
	denormalizeOne(f)
	return f, nil
}

// ScheduleOrSend handles the follow-up form of a job. With SendNow the email
// goes out immediately and is recorded as sent. Otherwise the job's pending
// follow-up is rescheduled, or a new one is created when there is none.
func (s *FollowUpService) ScheduleOrSend(ctx context.Context, userID, jobID uint, req *dtos.JobFollowUpRequest) (*models.FollowUp, error) {
	job, err := s.Jobs.Get(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	content := strings.TrimSpace(req.Content)

	if req.SendNow {
		return s.sendNow(ctx, userID, job, content, now)
	}

	date, err := dtos.ParseDate(req.FollowUpDate)
	if err != nil {
		return nil, err
	}
	followUpType := models.FollowUpReminder
	if job.Email != "" {
		followUpType = models.FollowUpEmail
	}

	var pending models.FollowUp
	err = s.DB.WithContext(ctx).
		Where("job_id = ? AND follow_up_date > ?", job.ID, now).
		Order("follow_up_date DESC").
		First(&pending).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		pending = models.FollowUp{JobID: job.ID}
	case err != nil:
		return nil, err
	}
	pending.FollowUpDate = date.UTC()
	pending.Content = content
	pending.Type = followUpType

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&pending).Error; err != nil {
			return err
		}
		return markPast(tx, &pending, now)
	})
	if err != nil {
		return nil, fmt.Errorf("schedule follow-up: %w", err)
	}
	pending.Job = job
	denormalizeOne(&pending)
	return &pending, nil
}

func (s *FollowUpService) sendNow(ctx context.Context, userID uint, job *models.Job, content string, now time.Time) (*models.FollowUp, error) {
	if job.Email == "" {
		return nil, ErrNoContactEmail
	}
	settings, err := s.Settings.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.Mailer.Send(ctx, FollowUpEmail(job, content, settings)); err != nil {
		return nil, fmt.Errorf("send follow-up: %w", err)
	}

	f := &models.FollowUp{
		JobID:        job.ID,
		FollowUpDate: now,
		Content:      content,
		Type:         models.FollowUpEmail,
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(f).Error; err != nil {
			return err
		}
		return tx.Create(&models.DispatchedFollowUp{FollowUpID: f.ID}).Error
	})
	if err != nil {
		// The email is already out; the record is what failed.
		s.Logger.Error("follow-up sent but not recorded", zap.Uint("job_id", job.ID), zap.Error(err))
		return nil, fmt.Errorf("record follow-up: %w", err)
	}
	f.Job = job
	denormalizeOne(f)
	return f, nil
}

func (s *FollowUpService) Delete(ctx context.Context, userID, id uint) error {
	var f models.FollowUp
	err := s.DB.WithContext(ctx).
		Joins("JOIN jobs ON jobs.id = follow_ups.job_id").
		Where("follow_ups.id = ? AND jobs.user_id = ?", id, userID).
		First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Delete(&f).Error
}

// markPast records a follow-up that is already due when saved as dispatched.
// It counts as sent, so the dispatcher must never mail it.
func markPast(tx *gorm.DB, f *models.FollowUp, now time.Time) error {
	if f.FollowUpDate.After(now) {
		return nil
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.DispatchedFollowUp{FollowUpID: f.ID}).Error
}

func denormalize(followUps []models.FollowUp) {
	for i := range followUps {
		denormalizeOne(&followUps[i])
	}
}

func denormalizeOne(f *models.FollowUp) {
	if f.Job != nil {
		f.Company = f.Job.Company
		f.Email = f.Job.Email
	}
}
