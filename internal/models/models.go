package models

import (
	"time"

	"gorm.io/gorm"
)

// Job statuses. The zero value is never stored; the database default is
// StatusApplied.
const (
	StatusApplied      = "applied"
	StatusInterviewing = "interviewing"
	StatusRejected     = "rejected"
	StatusOffer        = "offer"
)

// Statuses lists every job status in display order.
var Statuses = []string{StatusApplied, StatusInterviewing, StatusRejected, StatusOffer}

// Follow-up types.
const (
	FollowUpEmail    = "email"
	FollowUpReminder = "reminder"
	FollowUpStatus   = "status"
)

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
}

type Job struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Owner. Every query is scoped by it.
	UserID uint `gorm:"index;not null" json:"user_id"`

	Company     string     `gorm:"not null" json:"company"`
	Position    string     `gorm:"not null" json:"position"`
	Email       string     `json:"email,omitempty"`
	Status      string     `gorm:"default:'applied'" json:"status"`
	AppliedDate *time.Time `json:"applied_date,omitempty"`

	FollowUps []FollowUp `json:"-"`
}

type FollowUp struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	JobID uint `gorm:"index;not null" json:"job_id"`
	// Association: services Preload() it to fill Company and Email
	Job *Job `json:"-"`

	FollowUpDate time.Time `gorm:"not null" json:"follow_up_date"`
	Content      string    `gorm:"type:text" json:"content,omitempty"`
	Type         string    `gorm:"default:'reminder'" json:"type,omitempty"`

	// Denormalized from the owning job in list responses.
	Company string `gorm:"-" json:"company,omitempty"`
	Email   string `gorm:"-" json:"email,omitempty"`
}

type EmailSettings struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID    uint   `gorm:"uniqueIndex;not null" json:"-"`
	FromName  string `json:"from_name"`
	ReplyTo   string `json:"reply_to"`
	Signature string `gorm:"type:text" json:"signature"`
	AutoSend  bool   `json:"auto_send"`
	// When auto-send was last switched on. Only follow-ups due after it are
	// mailed by the dispatcher.
	AutoSendSince *time.Time `json:"auto_send_since,omitempty"`
}

// DispatchedFollowUp marks a scheduled follow-up whose email has gone out,
// so the dispatcher never sends it twice.
type DispatchedFollowUp struct {
	FollowUpID uint `gorm:"primaryKey"`
	CreatedAt  time.Time
}
