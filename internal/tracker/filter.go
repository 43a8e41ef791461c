package tracker

import (
	"strings"

	"github.com/justsurfingit/trackjob/internal/models"
)

// FilterAll is the status filter that keeps every job.
const FilterAll = "all"

// Filter returns the jobs whose status matches filter and whose company or
// position contains search, case-insensitively. An empty search matches
// everything. Order is preserved and jobs is never modified.
func Filter(jobs []models.Job, filter, search string) []models.Job {
	query := strings.ToLower(search)
	out := make([]models.Job, 0, len(jobs))
	for _, job := range jobs {
		if filter != FilterAll && job.Status != filter {
			continue
		}
		if !matches(job, query) {
			continue
		}
		out = append(out, job)
	}
	return out
}

func matches(job models.Job, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(job.Company), query) ||
		strings.Contains(strings.ToLower(job.Position), query)
}

// Stats are per-status counts over a job list.
type Stats struct {
	Total        int `json:"total" yaml:"total"`
	Applied      int `json:"applied" yaml:"applied"`
	Interviewing int `json:"interviewing" yaml:"interviewing"`
	Rejected     int `json:"rejected" yaml:"rejected"`
	Offer        int `json:"offer" yaml:"offer"`
}

// Count returns the number for a filter tab; FilterAll gives the total.
func (s Stats) Count(filter string) int {
	switch filter {
	case FilterAll:
		return s.Total
	case models.StatusApplied:
		return s.Applied
	case models.StatusInterviewing:
		return s.Interviewing
	case models.StatusRejected:
		return s.Rejected
	case models.StatusOffer:
		return s.Offer
	}
	return 0
}

func CountJobs(jobs []models.Job) Stats {
	s := Stats{Total: len(jobs)}
	for _, job := range jobs {
		switch job.Status {
		case models.StatusApplied:
			s.Applied++
		case models.StatusInterviewing:
			s.Interviewing++
		case models.StatusRejected:
			s.Rejected++
		case models.StatusOffer:
			s.Offer++
		}
	}
	return s
}
