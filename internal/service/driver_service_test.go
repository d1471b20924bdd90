package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/M0steK/taxifleet-manager/internal/model"
)

func pickupAt(t time.Time) model.PickupLocation {
	return model.PickupLocation{PickupTimestamp: t}
}

func TestSummarizePickups(t *testing.T) {
	base := time.Date(2026, 3, 12, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, PickupSummary{}, summarizePickups(nil))

	one := summarizePickups([]model.PickupLocation{pickupAt(base)})
	assert.Equal(t, 1, one.Count)
	assert.Zero(t, one.AvgMinutesBetweenPickups)

	// Three pickups over 60 minutes: two gaps, 30 minutes average.
	many := summarizePickups([]model.PickupLocation{
		pickupAt(base),
		pickupAt(base.Add(20 * time.Minute)),
		pickupAt(base.Add(60 * time.Minute)),
	})
	assert.Equal(t, 3, many.Count)
	assert.InDelta(t, 30.0, many.AvgMinutesBetweenPickups, 0.001)
}
