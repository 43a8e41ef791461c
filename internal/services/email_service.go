package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"strings"
	"time"

	"github.com/justsurfingit/trackjob/internal/models"
	"go.uber.org/zap"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"gorm.io/gorm"
)

// OutgoingEmail is a plain-text follow-up message.
type OutgoingEmail struct {
	To       string
	FromName string
	ReplyTo  string
	Subject  string
	Body     string
}

type Mailer interface {
	Send(ctx context.Context, email OutgoingEmail) error
}

// GmailMailer sends through the Gmail API on behalf of Sender ("me" for the
// authorized account).
type GmailMailer struct {
	Client *gmail.Service
	Sender string
	Logger *zap.Logger
}

func NewGmailMailer(client *gmail.Service, sender string, logger *zap.Logger) *GmailMailer {
	return &GmailMailer{Client: client, Sender: sender, Logger: logger.Named("gmail")}
}

func (m *GmailMailer) Send(ctx context.Context, email OutgoingEmail) error {
	msg := &gmail.Message{Raw: base64.URLEncoding.EncodeToString(buildMessage(email))}
	return retry(ctx, m.Logger, 3, time.Second, func() error {
		_, err := m.Client.Users.Messages.Send(m.Sender, msg).Context(ctx).Do()
		return err
	})
}

// LogMailer stands in when Gmail is not configured. It only records what
// would have been sent.
type LogMailer struct {
	Logger *zap.Logger
}

func (m *LogMailer) Send(_ context.Context, email OutgoingEmail) error {
	m.Logger.Info("follow-up email not sent, no mailer configured",
		zap.String("to", email.To),
		zap.String("subject", email.Subject))
	return nil
}

// FollowUpEmail composes the message for a follow-up on job.
func FollowUpEmail(job *models.Job, content string, settings *models.EmailSettings) OutgoingEmail {
	body := content
	if settings.Signature != "" {
		body += "\n\n" + settings.Signature
	}
	return OutgoingEmail{
		To:       job.Email,
		FromName: settings.FromName,
		ReplyTo:  settings.ReplyTo,
		Subject:  fmt.Sprintf("Following up on my %s application", job.Position),
		Body:     body,
	}
}

func buildMessage(email OutgoingEmail) []byte {
	var b strings.Builder
	if email.FromName != "" {
		fmt.Fprintf(&b, "From: %s\r\n", mime.QEncoding.Encode("utf-8", email.FromName))
	}
	fmt.Fprintf(&b, "To: %s\r\n", email.To)
	if email.ReplyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", email.ReplyTo)
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", email.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(email.Body)
	return []byte(b.String())
}

// FollowUpDispatcher sends scheduled email follow-ups once they fall due, for
// users whose settings turn auto-send on.
type FollowUpDispatcher struct {
	DB       *gorm.DB
	Mailer   Mailer
	Logger   *zap.Logger
	Interval time.Duration

	now func() time.Time
}

func NewFollowUpDispatcher(db *gorm.DB, mailer Mailer, interval time.Duration, logger *zap.Logger) *FollowUpDispatcher {
	return &FollowUpDispatcher{
		DB:       db,
		Mailer:   mailer,
		Logger:   logger.Named("dispatcher"),
		Interval: interval,
		now:      time.Now,
	}
}

// Start runs a dispatch pass immediately and then every Interval until ctx
// is cancelled.
func (d *FollowUpDispatcher) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(d.Interval)
		defer ticker.Stop()

		for {
			if _, err := d.DispatchDue(ctx); err != nil && ctx.Err() == nil {
				d.Logger.Error("dispatch failed", zap.Error(err))
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

// DispatchDue sends every due, unsent email follow-up and returns how many
// went out. Only follow-ups due after the user turned auto-send on qualify.
// A failed send is retried on the next pass.
func (d *FollowUpDispatcher) DispatchDue(ctx context.Context) (int, error) {
	var due []models.FollowUp
	err := d.DB.WithContext(ctx).
		Joins("JOIN jobs ON jobs.id = follow_ups.job_id AND jobs.deleted_at IS NULL").
		Joins("JOIN email_settings ON email_settings.user_id = jobs.user_id").
		Where("email_settings.auto_send = ?", true).
		Where("email_settings.auto_send_since IS NOT NULL AND follow_ups.follow_up_date > email_settings.auto_send_since").
		Where("follow_ups.type = ? AND follow_ups.follow_up_date <= ?", models.FollowUpEmail, d.now().UTC()).
		Where("jobs.email <> ''").
		Where("NOT EXISTS (SELECT 1 FROM dispatched_follow_ups WHERE dispatched_follow_ups.follow_up_id = follow_ups.id)").
		Preload("Job").
		Order("follow_ups.follow_up_date").
		Find(&due).Error
	if err != nil {
		return 0, fmt.Errorf("find due follow-ups: %w", err)
	}
	if len(due) == 0 {
		return 0, nil
	}
	d.Logger.Info("dispatching follow-ups", zap.Int("count", len(due)))

	settingsByUser := map[uint]*models.EmailSettings{}
	sent := 0
	for _, f := range due {
		if f.Job == nil {
			continue
		}
		settings, ok := settingsByUser[f.Job.UserID]
		if !ok {
			settings = &models.EmailSettings{}
			if err := d.DB.WithContext(ctx).Where("user_id = ?", f.Job.UserID).First(settings).Error; err != nil {
				return sent, fmt.Errorf("load email settings: %w", err)
			}
			settingsByUser[f.Job.UserID] = settings
		}

		if err := d.Mailer.Send(ctx, FollowUpEmail(f.Job, f.Content, settings)); err != nil {
			d.Logger.Warn("follow-up send failed", zap.Uint("follow_up_id", f.ID), zap.Error(err))
			continue
		}
		if err := d.DB.WithContext(ctx).Create(&models.DispatchedFollowUp{FollowUpID: f.ID}).Error; err != nil {
			return sent, fmt.Errorf("mark follow-up %d dispatched: %w", f.ID, err)
		}
		sent++
	}
	return sent, nil
}

// retry runs f with exponential backoff. Client errors from Google are not
// retried.
func retry(ctx context.Context, logger *zap.Logger, attempts int, sleep time.Duration, f func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = f(); err == nil {
			return nil
		}
		if isPermanent(err) {
			return err
		}

		logger.Warn("api error, retrying", zap.Error(err), zap.Duration("backoff", sleep))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sleep):
		}
		sleep *= 2
	}
	return fmt.Errorf("failed after %d attempts: %w", attempts, err)
}

func isPermanent(err error) bool {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return gErr.Code >= 400 && gErr.Code < 500 && gErr.Code != 429
	}
	return false
}
