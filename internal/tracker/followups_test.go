package tracker

import (
	"testing"
	"time"

	"github.com/justsurfingit/trackjob/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, Sent, Classify(models.FollowUp{FollowUpDate: now.Add(-time.Hour)}, now))
	assert.Equal(t, Scheduled, Classify(models.FollowUp{FollowUpDate: now.Add(time.Second)}, now))
	assert.Equal(t, Sent, Classify(models.FollowUp{FollowUpDate: now}, now))
	// Same instant in another zone.
	assert.Equal(t, Sent, Classify(models.FollowUp{FollowUpDate: now.In(time.FixedZone("X", 3600))}, now))

	assert.Equal(t, "scheduled", Scheduled.String())
	assert.Equal(t, "sent", Sent.String())
}

func TestSplit(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	list := []models.FollowUp{
		{ID: 1, FollowUpDate: now.Add(-48 * time.Hour)},
		{ID: 2, FollowUpDate: now.Add(24 * time.Hour)},
		{ID: 3, FollowUpDate: now},
		{ID: 4, FollowUpDate: now.Add(72 * time.Hour)},
	}

	scheduled, sent := Split(list, now)
	assert.Equal(t, []uint{2, 4}, followUpIDs(scheduled))
	assert.Equal(t, []uint{1, 3}, followUpIDs(sent))

	scheduled, sent = Split(nil, now)
	assert.NotNil(t, scheduled)
	assert.NotNil(t, sent)
	assert.Empty(t, scheduled)
	assert.Empty(t, sent)
}

func followUpIDs(list []models.FollowUp) []uint {
	out := []uint{}
	for _, f := range list {
		out = append(out, f.ID)
	}
	return out
}
