package shift

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/M0steK/taxifleet-manager/internal/model"
)

func firstIndex(n int) int { return 0 }

func TestPickVehicleFillsCapacityThenRejects(t *testing.T) {
	// Two valid vehicles. Three drivers sign up for the same morning shift;
	// the first two succeed, the third gets "shift full".
	v1 := activeVehicle(farFuture)
	v2 := activeVehicle(farFuture)
	vehicles := []model.Vehicle{v1, v2}

	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	start, end := Window(day, LabelMorning)

	var entries []model.Schedule

	driverX := uuid.New()
	picked1, err := PickVehicle(driverX, start, end, vehicles, entries, firstIndex)
	require.NoError(t, err)
	assert.Contains(t, []uuid.UUID{v1.ID, v2.ID}, picked1)
	entries = append(entries, entry(driverX, picked1, start, end))

	driverY := uuid.New()
	picked2, err := PickVehicle(driverY, start, end, vehicles, entries, firstIndex)
	require.NoError(t, err)
	assert.NotEqual(t, picked1, picked2)
	entries = append(entries, entry(driverY, picked2, start, end))

	driverZ := uuid.New()
	_, err = PickVehicle(driverZ, start, end, vehicles, entries, firstIndex)
	assert.ErrorIs(t, err, ErrShiftFull)
}

func TestPickVehicleRejectsExactDuplicate(t *testing.T) {
	v := activeVehicle(farFuture)
	driver := uuid.New()
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	start, end := Window(day, LabelAfternoon)

	existing := []model.Schedule{entry(driver, v.ID, start, end)}
	_, err := PickVehicle(driver, start, end, []model.Vehicle{v}, existing, firstIndex)
	assert.ErrorIs(t, err, ErrDuplicateSignup)
}

func TestPickVehicleRejectsOverlap(t *testing.T) {
	v1 := activeVehicle(farFuture)
	v2 := activeVehicle(farFuture)
	driver := uuid.New()
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	// Manual 10:00-18:00 entry blocks the canonical afternoon window even
	// though the windows differ.
	existing := []model.Schedule{entry(driver, v1.ID, day.Add(10*time.Hour), day.Add(18*time.Hour))}
	aStart, aEnd := Window(day, LabelAfternoon)

	_, err := PickVehicle(driver, aStart, aEnd, []model.Vehicle{v1, v2}, existing, firstIndex)
	assert.ErrorIs(t, err, ErrOverlappingShift)
}

func TestPickVehicleNoEligibleVehicles(t *testing.T) {
	expired := activeVehicle(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	start, end := Window(day, LabelMorning)

	_, err := PickVehicle(uuid.New(), start, end, []model.Vehicle{expired}, nil, firstIndex)
	assert.ErrorIs(t, err, ErrNoEligibleVehicles)
}

func TestPickVehicleMorningAndNightSameDay(t *testing.T) {
	// Morning and night of the same date do not overlap, so a driver may
	// hold both.
	v1 := activeVehicle(farFuture)
	v2 := activeVehicle(farFuture)
	vehicles := []model.Vehicle{v1, v2}
	driver := uuid.New()
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	mStart, mEnd := Window(day, LabelMorning)
	picked, err := PickVehicle(driver, mStart, mEnd, vehicles, nil, firstIndex)
	require.NoError(t, err)

	nStart, nEnd := Window(day, LabelNight)
	existing := []model.Schedule{entry(driver, picked, mStart, mEnd)}
	// Only overlapping entries are handed to the decision; the morning entry
	// does not overlap the night window, so the slice is empty.
	overlapping := make([]model.Schedule, 0)
	for _, e := range existing {
		if Overlaps(e.StartTime, e.EndTime, nStart, nEnd) {
			overlapping = append(overlapping, e)
		}
	}
	_, err = PickVehicle(driver, nStart, nEnd, vehicles, overlapping, firstIndex)
	assert.NoError(t, err)
}

func TestPickVehicleUsesPinnedRandomIndex(t *testing.T) {
	v1 := activeVehicle(farFuture)
	v2 := activeVehicle(farFuture)
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	start, end := Window(day, LabelMorning)

	picked, err := PickVehicle(uuid.New(), start, end, []model.Vehicle{v1, v2}, nil, func(n int) int {
		require.Equal(t, 2, n)
		return 1
	})
	require.NoError(t, err)
	assert.Equal(t, v2.ID, picked)
}
