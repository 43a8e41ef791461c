package tracker

import (
	"context"
	"time"

	"github.com/justsurfingit/trackjob/internal/dtos"
	"github.com/justsurfingit/trackjob/internal/models"
)

// FollowUpsAPI is the part of the API client FollowUps needs.
type FollowUpsAPI interface {
	ListFollowUps(ctx context.Context) ([]models.FollowUp, error)
	ListFollowUpsByJob(ctx context.Context, jobID uint) ([]models.FollowUp, error)
	AddFollowUp(ctx context.Context, req *dtos.FollowUpRequest) (*models.FollowUp, error)
	DeleteFollowUp(ctx context.Context, id uint) error
}

// FollowUps reads and writes follow-ups. Unlike JobList it keeps no state.
type FollowUps struct {
	remote FollowUpsAPI
}

func NewFollowUps(remote FollowUpsAPI) *FollowUps {
	return &FollowUps{remote: remote}
}

func (f *FollowUps) Create(ctx context.Context, req *dtos.FollowUpRequest) (*models.FollowUp, error) {
	return f.remote.AddFollowUp(ctx, req)
}

func (f *FollowUps) ListByJob(ctx context.Context, jobID uint) ([]models.FollowUp, error) {
	return f.remote.ListFollowUpsByJob(ctx, jobID)
}

func (f *FollowUps) List(ctx context.Context) ([]models.FollowUp, error) {
	return f.remote.ListFollowUps(ctx)
}

func (f *FollowUps) Delete(ctx context.Context, id uint) error {
	return f.remote.DeleteFollowUp(ctx, id)
}

type Delivery int

const (
	Sent Delivery = iota
	Scheduled
)

func (d Delivery) String() string {
	if d == Scheduled {
		return "scheduled"
	}
	return "sent"
}

// Classify reports a follow-up as Scheduled when its date is strictly after
// now. A date equal to now counts as sent.
func Classify(f models.FollowUp, now time.Time) Delivery {
	if f.FollowUpDate.After(now) {
		return Scheduled
	}
	return Sent
}

// Split partitions list into scheduled and sent follow-ups, keeping order.
func Split(list []models.FollowUp, now time.Time) (scheduled, sent []models.FollowUp) {
	scheduled, sent = []models.FollowUp{}, []models.FollowUp{}
	for _, f := range list {
		if Classify(f, now) == Scheduled {
			scheduled = append(scheduled, f)
		} else {
			sent = append(sent, f)
		}
	}
	return scheduled, sent
}
