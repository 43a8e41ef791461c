package tracker

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/justsurfingit/trackjob/internal/models"
	"github.com/stretchr/testify/assert"
)

func sampleJobs() []models.Job {
	return []models.Job{
		{ID: 5, Company: "Stripe", Position: "Backend Engineer", Status: models.StatusApplied},
		{ID: 4, Company: "Shopify", Position: "SRE", Status: models.StatusInterviewing},
		{ID: 3, Company: "Acme", Position: "Platform engineer", Status: models.StatusRejected},
		{ID: 2, Company: "Globex", Position: "Designer", Status: models.StatusOffer},
		{ID: 1, Company: "ENGINE Labs", Position: "Intern", Status: models.StatusApplied},
	}
}

func ids(jobs []models.Job) []uint {
	out := make([]uint, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	jobs := sampleJobs()
	cases := []struct {
		filter, search string
		want           []uint
	}{
		{FilterAll, "", []uint{5, 4, 3, 2, 1}},
		{models.StatusApplied, "", []uint{5, 1}},
		{FilterAll, "engine", []uint{5, 3, 1}},
		{models.StatusApplied, "ENGINE", []uint{5, 1}},
		{models.StatusRejected, "stripe", []uint{}},
		{FilterAll, "sho", []uint{4}},
		{"unknown", "", []uint{}},
	}
	for _, tc := range cases {
		t.Run(tc.filter+"/"+tc.search, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(Filter(jobs, tc.filter, tc.search)))
		})
	}
	assert.Equal(t, sampleJobs(), jobs, "input must not be modified")
}

// Every job is kept exactly when the predicate holds, in input order.
func TestFilterMatchesPredicate(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	words := []string{"Go", "go", "Rust", "Data", "data eng", "", "Platform", "ops"}
	filters := append([]string{FilterAll}, models.Statuses...)

	for i := 0; i < 200; i++ {
		jobs := make([]models.Job, rng.Intn(10))
		for j := range jobs {
			jobs[j] = models.Job{
				ID:       uint(j + 1),
				Company:  words[rng.Intn(len(words))] + " Inc",
				Position: words[rng.Intn(len(words))],
				Status:   models.Statuses[rng.Intn(len(models.Statuses))],
			}
		}
		filter := filters[rng.Intn(len(filters))]
		search := words[rng.Intn(len(words))]

		want := []uint{}
		for _, j := range jobs {
			statusOK := filter == FilterAll || j.Status == filter
			q := strings.ToLower(search)
			searchOK := search == "" ||
				strings.Contains(strings.ToLower(j.Company), q) ||
				strings.Contains(strings.ToLower(j.Position), q)
			if statusOK && searchOK {
				want = append(want, j.ID)
			}
		}
		assert.Equal(t, want, ids(Filter(jobs, filter, search)))
	}
}

func TestCountJobs(t *testing.T) {
	s := CountJobs(sampleJobs())
	assert.Equal(t, Stats{Total: 5, Applied: 2, Interviewing: 1, Rejected: 1, Offer: 1}, s)
	assert.Equal(t, 5, s.Count(FilterAll))
	assert.Equal(t, 2, s.Count(models.StatusApplied))
	assert.Equal(t, 1, s.Count(models.StatusOffer))
	assert.Equal(t, 0, s.Count("bogus"))
	assert.Equal(t, Stats{}, CountJobs(nil))
}
