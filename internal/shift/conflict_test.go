package shift

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/M0steK/taxifleet-manager/internal/model"
)

func TestFindConflictDriverDoubleBooked(t *testing.T) {
	driver := uuid.New()
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	// Existing 08:00-16:00, candidate 10:00-18:00 on another vehicle: the
	// shared driver overlaps 10:00-16:00.
	existing := entry(driver, uuid.New(),
		day.Add(8*time.Hour), day.Add(16*time.Hour))

	c := FindConflict(driver, uuid.New(), day.Add(10*time.Hour), day.Add(18*time.Hour),
		[]model.Schedule{existing}, nil)
	require.NotNil(t, c)
	assert.True(t, c.OfDriver)
	assert.Equal(t, existing.ID, c.Entry.ID)
}

func TestFindConflictVehicleDoubleBooked(t *testing.T) {
	vehicle := uuid.New()
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	existing := entry(uuid.New(), vehicle, day.Add(6*time.Hour), day.Add(14*time.Hour))

	c := FindConflict(uuid.New(), vehicle, day.Add(13*time.Hour), day.Add(21*time.Hour),
		[]model.Schedule{existing}, nil)
	require.NotNil(t, c)
	assert.False(t, c.OfDriver)
}

func TestFindConflictSymmetry(t *testing.T) {
	driver := uuid.New()
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	a := entry(driver, uuid.New(), day.Add(8*time.Hour), day.Add(16*time.Hour))
	b := entry(driver, uuid.New(), day.Add(10*time.Hour), day.Add(18*time.Hour))

	// Whichever entry exists first, the other one's insert must fail.
	assert.NotNil(t, FindConflict(b.UserID, b.VehicleID, b.StartTime, b.EndTime, []model.Schedule{a}, nil))
	assert.NotNil(t, FindConflict(a.UserID, a.VehicleID, a.StartTime, a.EndTime, []model.Schedule{b}, nil))
}

func TestFindConflictSkipsNonOverlapping(t *testing.T) {
	driver := uuid.New()
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	mStart, mEnd := Window(day, LabelMorning)
	aStart, aEnd := Window(day, LabelAfternoon)

	existing := entry(driver, uuid.New(), mStart, mEnd)

	// Adjacent shift with the same driver is allowed: half-open intervals.
	assert.Nil(t, FindConflict(driver, uuid.New(), aStart, aEnd, []model.Schedule{existing}, nil))
}

func TestFindConflictExcludesEditedEntry(t *testing.T) {
	driver := uuid.New()
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	existing := entry(driver, uuid.New(), day.Add(8*time.Hour), day.Add(16*time.Hour))

	// Editing the entry itself must not report it as its own conflict.
	assert.Nil(t, FindConflict(driver, existing.VehicleID, existing.StartTime, existing.EndTime,
		[]model.Schedule{existing}, &existing.ID))
}

func TestFindConflictDriverReasonWins(t *testing.T) {
	driver := uuid.New()
	vehicle := uuid.New()
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	// Same driver and same vehicle: the driver conflict is the one reported.
	existing := entry(driver, vehicle, day.Add(8*time.Hour), day.Add(16*time.Hour))
	c := FindConflict(driver, vehicle, day.Add(9*time.Hour), day.Add(17*time.Hour),
		[]model.Schedule{existing}, nil)
	require.NotNil(t, c)
	assert.True(t, c.OfDriver)
}
