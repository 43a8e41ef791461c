package tracker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/justsurfingit/trackjob/internal/api"
	"github.com/justsurfingit/trackjob/internal/dtos"
	"github.com/justsurfingit/trackjob/internal/handlers/handlertest"
	"github.com/justsurfingit/trackjob/internal/models"
	"github.com/justsurfingit/trackjob/internal/tracker"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// JobListSuite drives JobList through the real API.
type JobListSuite struct {
	suite.Suite

	ctx    context.Context
	srv    *handlertest.Server
	client *api.Client
	list   *tracker.JobList
}

func TestJobList(t *testing.T) {
	suite.Run(t, &JobListSuite{})
}

func (s *JobListSuite) SetupTest() {
	s.ctx = context.Background()
	s.srv = handlertest.New(s.T())

	anon := api.NewClient(s.srv.APIURL(), nil, zap.NewNop())
	_, err := anon.Register(s.ctx, &dtos.RegisterRequest{Name: "Linus T", Email: "linus@example.com", Password: "password123", Terms: true})
	s.Require().NoError(err)
	resp, err := anon.Login(s.ctx, &dtos.LoginRequest{Email: "linus@example.com", Password: "password123"})
	s.Require().NoError(err)

	s.client = api.NewClient(s.srv.APIURL(), oauth2.StaticTokenSource(&oauth2.Token{AccessToken: resp.Token}), zap.NewNop())
	s.list = tracker.NewJobList(s.client, zap.NewNop())
}

func (s *JobListSuite) create(company, position string) *models.Job {
	job, err := s.list.Create(s.ctx, &dtos.JobRequest{Company: company, Position: position})
	s.Require().NoError(err)
	return job
}

func (s *JobListSuite) TestStartsIdleAndEmpty() {
	s.Equal(tracker.Idle, s.list.State())
	s.Empty(s.list.Jobs())
	s.Empty(s.list.FilteredView(tracker.FilterAll, ""))
}

func (s *JobListSuite) TestFetchAllThenUnfilteredViewIsFullList() {
	s.create("Stripe", "Backend")
	s.create("Shopify", "SRE")
	s.create("Acme", "Platform")

	s.Require().NoError(s.list.FetchAll(s.ctx))
	s.Equal(tracker.Loaded, s.list.State())

	remote, err := s.client.ListJobs(s.ctx)
	s.Require().NoError(err)
	s.Equal(jobIDs(remote), jobIDs(s.list.FilteredView(tracker.FilterAll, "")))
	s.Equal(jobIDs(remote), jobIDs(s.list.Jobs()))
	s.Equal([]string{"Acme", "Shopify", "Stripe"}, companies(s.list.Jobs()))
}

func jobIDs(jobs []models.Job) []uint {
	out := []uint{}
	for _, j := range jobs {
		out = append(out, j.ID)
	}
	return out
}

func companies(jobs []models.Job) []string {
	out := []string{}
	for _, j := range jobs {
		out = append(out, j.Company)
	}
	return out
}

func (s *JobListSuite) TestCreateRoundTrip() {
	job := s.create("Stripe", "Backend Engineer")

	s.Equal(tracker.Loaded, s.list.State())
	jobs := s.list.Jobs()
	s.Require().Len(jobs, 1)
	s.Equal(job.ID, jobs[0].ID)
	s.Equal("Stripe", jobs[0].Company)
	s.Equal("Backend Engineer", jobs[0].Position)
	s.Equal(models.StatusApplied, jobs[0].Status)
}

func (s *JobListSuite) TestRemove() {
	keep := s.create("Stripe", "Backend")
	gone := s.create("Shopify", "SRE")

	s.Require().NoError(s.list.Remove(s.ctx, gone.ID))
	for _, j := range s.list.Jobs() {
		s.NotEqual(gone.ID, j.ID)
	}
	s.Len(s.list.Jobs(), 1)
	s.Equal(keep.ID, s.list.Jobs()[0].ID)
}

func (s *JobListSuite) TestSequentialUpdatesLastWins() {
	job := s.create("Stripe", "Backend")

	_, err := s.list.Update(s.ctx, job.ID, &dtos.JobRequest{Company: "Stripe", Position: "Backend", Status: models.StatusInterviewing})
	s.Require().NoError(err)
	_, err = s.list.Update(s.ctx, job.ID, &dtos.JobRequest{Company: "Stripe", Position: "Backend", Status: models.StatusRejected})
	s.Require().NoError(err)

	s.Require().Len(s.list.Jobs(), 1)
	s.Equal(models.StatusRejected, s.list.Jobs()[0].Status)
	s.Equal(tracker.Stats{Total: 1, Rejected: 1}, s.list.Counts())
}

func (s *JobListSuite) TestFailedMutationKeepsList() {
	s.create("Stripe", "Backend")
	before := s.list.Jobs()

	_, err := s.list.Update(s.ctx, 9999, &dtos.JobRequest{Company: "Nope", Position: "Nope"})
	s.Require().Error(err)
	s.Equal(tracker.Failed, s.list.State())
	s.Equal(err, s.list.Err())
	s.Equal(before, s.list.Jobs())

	s.Error(s.list.Remove(s.ctx, 9999))
	s.Equal(before, s.list.Jobs())
}

func (s *JobListSuite) TestScheduleOrSendFollowUpLeavesListAlone() {
	job, err := s.list.Create(s.ctx, &dtos.JobRequest{Company: "Stripe", Position: "Backend", Email: "hr@stripe.com"})
	s.Require().NoError(err)
	before := s.list.Jobs()

	f, err := s.list.ScheduleOrSendFollowUp(s.ctx, job.ID, &dtos.JobFollowUpRequest{Content: "Ping", SendNow: true})
	s.Require().NoError(err)
	s.Equal(models.FollowUpEmail, f.Type)
	s.Equal(1, s.srv.Mailer.Count())
	s.Equal(before, s.list.Jobs())

	followUps := tracker.NewFollowUps(s.client)
	list, err := followUps.ListByJob(s.ctx, job.ID)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(tracker.Sent, tracker.Classify(list[0], time.Now()))
}

func (s *JobListSuite) TestFollowUpsService() {
	job := s.create("Stripe", "Backend")
	followUps := tracker.NewFollowUps(s.client)

	past, err := followUps.Create(s.ctx, &dtos.FollowUpRequest{JobID: job.ID, FollowUpDate: "2020-01-01", Content: "Applied"})
	s.Require().NoError(err)
	future, err := followUps.Create(s.ctx, &dtos.FollowUpRequest{JobID: job.ID, FollowUpDate: time.Now().AddDate(0, 0, 7).UTC().Format(time.RFC3339), Content: "Check in"})
	s.Require().NoError(err)

	all, err := followUps.List(s.ctx)
	s.Require().NoError(err)
	scheduled, sent := tracker.Split(all, time.Now())
	s.Require().Len(scheduled, 1)
	s.Require().Len(sent, 1)
	s.Equal(future.ID, scheduled[0].ID)
	s.Equal(past.ID, sent[0].ID)
	s.Equal("Stripe", scheduled[0].Company)

	s.Require().NoError(followUps.Delete(s.ctx, future.ID))
	all, err = followUps.List(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 1)
}

type flakyRemote struct {
	tracker.JobsAPI
	jobs     []models.Job
	listErr  error
	createOK bool
}

func (f *flakyRemote) ListJobs(context.Context) ([]models.Job, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.jobs, nil
}

func (f *flakyRemote) CreateJob(_ context.Context, req *dtos.JobRequest) (*models.Job, error) {
	if !f.createOK {
		return nil, errors.New("create failed")
	}
	return &models.Job{ID: 99, Company: req.Company, Position: req.Position}, nil
}

func TestFetchAllFailureKeepsList(t *testing.T) {
	ctx := context.Background()
	remote := &flakyRemote{jobs: []models.Job{{ID: 1, Company: "A1", Position: "P1", Status: models.StatusApplied}}}
	l := tracker.NewJobList(remote, zap.NewNop())

	if err := l.FetchAll(ctx); err != nil {
		t.Fatalf("first fetch: %v", err)
	}

	remote.listErr = errors.New("network down")
	err := l.FetchAll(ctx)
	if !errors.Is(err, remote.listErr) {
		t.Fatalf("got %v, want %v", err, remote.listErr)
	}
	if l.State() != tracker.Failed || !errors.Is(l.Err(), remote.listErr) {
		t.Fatalf("state %s err %v", l.State(), l.Err())
	}
	if got := l.Jobs(); len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("list changed: %+v", got)
	}
}

func TestResyncFailureAfterCreateIsNotAnError(t *testing.T) {
	ctx := context.Background()
	remote := &flakyRemote{createOK: true, listErr: errors.New("network down")}
	l := tracker.NewJobList(remote, zap.NewNop())

	job, err := l.Create(ctx, &dtos.JobRequest{Company: "Stripe", Position: "Backend"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if job.ID != 99 {
		t.Fatalf("unexpected job %+v", job)
	}
	if l.State() != tracker.Failed {
		t.Fatalf("state %s, want error", l.State())
	}
	if len(l.Jobs()) != 0 {
		t.Fatal("stale list should stay empty")
	}
}

func TestCreateFailure(t *testing.T) {
	l := tracker.NewJobList(&flakyRemote{}, zap.NewNop())
	_, err := l.Create(context.Background(), &dtos.JobRequest{Company: "Stripe", Position: "Backend"})
	if err == nil || l.State() != tracker.Failed {
		t.Fatalf("err %v state %s", err, l.State())
	}
}
