package dtos

import (
	"fmt"
	"time"
)

// FollowUpRequest is the body of POST /followups.
type FollowUpRequest struct {
	JobID        uint   `json:"job_id" binding:"required" msg:"Job is required"`
	FollowUpDate string `json:"follow_up_date" binding:"required,date" msg:"Follow-up date must be a date or an RFC 3339 timestamp"`
	Content      string `json:"content" binding:"required" msg:"Please enter your follow-up message."`
	Type         string `json:"type,omitempty" binding:"omitempty,oneof=email reminder status" msg:"Type must be one of email, reminder, status"`
}

// JobFollowUpRequest is the body of PUT /jobs/{id}/followup. With SendNow the
// date is ignored and the follow-up goes out immediately.
type JobFollowUpRequest struct {
	FollowUpDate string `json:"follow_up_date,omitempty" binding:"required_without=SendNow,omitempty,date" msg:"Pick a date or send now"`
	Content      string `json:"content" binding:"required" msg:"Please enter your follow-up message."`
	SendNow      bool   `json:"sendNow"`
}

const dateLayout = "2006-01-02"

// ParseDate accepts an RFC 3339 timestamp or a bare YYYY-MM-DD date, which is
// read as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}

// FormatDate renders t the way the job form expects applied dates.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
