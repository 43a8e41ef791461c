package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/justsurfingit/trackjob/internal/dtos"
	"github.com/justsurfingit/trackjob/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsService struct {
	DB *gorm.DB

	now func() time.Time
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{DB: db, now: time.Now}
}

// Get returns the user's email settings. Users who never saved any get the
// defaults, with auto-send off.
func (s *SettingsService) Get(ctx context.Context, userID uint) (*models.EmailSettings, error) {
	var settings models.EmailSettings
	err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.EmailSettings{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Save upserts the user's email settings. Turning auto-send on stamps
// AutoSendSince; keeping it on leaves the stamp alone and turning it off
// clears it.
func (s *SettingsService) Save(ctx context.Context, userID uint, req *dtos.EmailSettingsRequest) (*models.EmailSettings, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.EmailSettings
		err := tx.Where("user_id = ?", userID).First(&current).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		settings := &models.EmailSettings{
			UserID:    userID,
			FromName:  req.FromName,
			ReplyTo:   req.ReplyTo,
			Signature: req.Signature,
			AutoSend:  req.AutoSend,
		}
		if req.AutoSend {
			settings.AutoSendSince = current.AutoSendSince
			if !current.AutoSend || settings.AutoSendSince == nil {
				since := s.now().UTC()
				settings.AutoSendSince = &since
			}
		}

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"from_name", "reply_to", "signature", "auto_send", "auto_send_since", "updated_at"}),
		}).Create(settings).Error
	})
	if err != nil {
		return nil, fmt.Errorf("save email settings: %w", err)
	}
	return s.Get(ctx, userID)
}
