// Package tracker holds the client-side state of a user's job applications.
package tracker

import (
	"context"
	"sync"

	"github.com/justsurfingit/trackjob/internal/dtos"
	"github.com/justsurfingit/trackjob/internal/models"
	"go.uber.org/zap"
)

type State int

const (
	Idle State = iota
	Loading
	Loaded
	Failed
	Mutating
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "error"
	case Mutating:
		return "mutating"
	}
	return "unknown"
}

// JobsAPI is the part of the API client JobList needs.
type JobsAPI interface {
	ListJobs(ctx context.Context) ([]models.Job, error)
	CreateJob(ctx context.Context, req *dtos.JobRequest) (*models.Job, error)
	UpdateJob(ctx context.Context, id uint, req *dtos.JobRequest) (*models.Job, error)
	DeleteJob(ctx context.Context, id uint) error
	UpsertJobFollowUp(ctx context.Context, jobID uint, req *dtos.JobFollowUpRequest) (*models.FollowUp, error)
}

// JobList is the authoritative copy of the user's jobs. It is only ever
// replaced wholesale by FetchAll; every mutation is followed by one.
type JobList struct {
	remote JobsAPI
	logger *zap.Logger

	mu    sync.Mutex
	jobs  []models.Job
	state State
	err   error
}

func NewJobList(remote JobsAPI, logger *zap.Logger) *JobList {
	return &JobList{remote: remote, logger: logger.Named("joblist"), jobs: []models.Job{}}
}

func (l *JobList) setState(state State, err error) {
	l.mu.Lock()
	l.state, l.err = state, err
	l.mu.Unlock()
}

func (l *JobList) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Err is the error behind the Failed state, nil otherwise.
func (l *JobList) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// FetchAll replaces the list with the server's. On failure the list is left
// as it was and the error is logged, recorded and returned. Callers may
// ignore the returned error; State and Err already report it.
func (l *JobList) FetchAll(ctx context.Context) error {
	l.setState(Loading, nil)

	jobs, err := l.remote.ListJobs(ctx)
	if err != nil {
		l.logger.Error("error fetching jobs", zap.Error(err))
		l.setState(Failed, err)
		return err
	}
	if jobs == nil {
		jobs = []models.Job{}
	}

	l.mu.Lock()
	l.jobs = jobs
	l.state, l.err = Loaded, nil
	l.mu.Unlock()
	return nil
}

// Jobs returns a copy of the list in fetch order.
func (l *JobList) Jobs() []models.Job {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.Job, len(l.jobs))
	copy(out, l.jobs)
	return out
}

// FilteredView is Filter over the current list.
func (l *JobList) FilteredView(filter, search string) []models.Job {
	return Filter(l.Jobs(), filter, search)
}

func (l *JobList) Counts() Stats {
	return CountJobs(l.Jobs())
}

// Create adds a job, then resyncs.
func (l *JobList) Create(ctx context.Context, req *dtos.JobRequest) (*models.Job, error) {
	l.setState(Mutating, nil)
	job, err := l.remote.CreateJob(ctx, req)
	if err != nil {
		l.logger.Error("error creating job", zap.Error(err))
		l.setState(Failed, err)
		return nil, err
	}
	l.resync(ctx)
	return job, nil
}

// Update replaces the fields of job id, then resyncs.
func (l *JobList) Update(ctx context.Context, id uint, req *dtos.JobRequest) (*models.Job, error) {
	l.setState(Mutating, nil)
	job, err := l.remote.UpdateJob(ctx, id, req)
	if err != nil {
		l.logger.Error("error updating job", zap.Uint("job_id", id), zap.Error(err))
		l.setState(Failed, err)
		return nil, err
	}
	l.resync(ctx)
	return job, nil
}

// Remove deletes job id, then resyncs.
func (l *JobList) Remove(ctx context.Context, id uint) error {
	l.setState(Mutating, nil)
	if err := l.remote.DeleteJob(ctx, id); err != nil {
		l.logger.Error("error deleting job", zap.Uint("job_id", id), zap.Error(err))
		l.setState(Failed, err)
		return err
	}
	l.resync(ctx)
	return nil
}

// ScheduleOrSendFollowUp schedules or sends the follow-up of job id. The job
// list is not touched.
func (l *JobList) ScheduleOrSendFollowUp(ctx context.Context, jobID uint, req *dtos.JobFollowUpRequest) (*models.FollowUp, error) {
	f, err := l.remote.UpsertJobFollowUp(ctx, jobID, req)
	if err != nil {
		l.logger.Error("error saving follow-up", zap.Uint("job_id", jobID), zap.Error(err))
		return nil, err
	}
	return f, nil
}

// resync runs after a successful mutation. A failure leaves the stale list
// in place; FetchAll has already logged it.
func (l *JobList) resync(ctx context.Context) {
	_ = l.FetchAll(ctx)
}
