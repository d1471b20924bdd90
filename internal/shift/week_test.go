package shift

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/M0steK/taxifleet-manager/internal/model"
)

func TestProjectWeekSevenDays(t *testing.T) {
	v := activeVehicle(farFuture)
	weekStart := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC) // a Monday

	days := ProjectWeek(uuid.New(), weekStart, []model.Vehicle{v}, nil, time.UTC)
	require.Len(t, days, 7)
	assert.Equal(t, "2025-06-02", days[0].Date)
	assert.Equal(t, "2025-06-08", days[6].Date)
	for _, d := range days {
		for _, cell := range []Cell{d.Morning, d.Afternoon, d.Night} {
			assert.Equal(t, 1, cell.Capacity)
			assert.Equal(t, 1, cell.FreeSlots)
		}
		assert.Empty(t, d.DriverShift)
		assert.Nil(t, d.DriverShiftData)
	}
}

func TestProjectWeekExactWindowMatch(t *testing.T) {
	v := activeVehicle(farFuture)
	driver := uuid.New()
	weekStart := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	start, end := Window(weekStart, LabelMorning)
	entries := []model.Schedule{entry(driver, v.ID, start, end)}

	days := ProjectWeek(driver, weekStart, []model.Vehicle{v}, entries, time.UTC)
	assert.Equal(t, LabelMorning, days[0].DriverShift)
	require.NotNil(t, days[0].DriverShiftData)
	assert.True(t, days[0].DriverShiftData.StartTime.Equal(start))
	assert.Equal(t, 0, days[0].Morning.FreeSlots)
	assert.Empty(t, days[1].DriverShift)
}

func TestProjectWeekFallbackClassifiesByStartHour(t *testing.T) {
	// Admin-created 10:00-18:00 entry matches no canonical window; the
	// fallback buckets it as morning by start hour and reports the true
	// stored times.
	v := activeVehicle(farFuture)
	driver := uuid.New()
	weekStart := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	s := weekStart.Add(10 * time.Hour)
	e := weekStart.Add(18 * time.Hour)
	entries := []model.Schedule{entry(driver, v.ID, s, e)}

	days := ProjectWeek(driver, weekStart, []model.Vehicle{v}, entries, time.UTC)
	assert.Equal(t, LabelMorning, days[0].DriverShift)
	require.NotNil(t, days[0].DriverShiftData)
	assert.True(t, days[0].DriverShiftData.StartTime.Equal(s))
	assert.True(t, days[0].DriverShiftData.EndTime.Equal(e))
}

func TestProjectWeekNightEntryAttributedToStartDay(t *testing.T) {
	// Night shift 2025-06-02T23:00 -> 06-03T06:00 shows up on June 2 only.
	v := activeVehicle(farFuture)
	driver := uuid.New()
	weekStart := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	nStart, nEnd := Window(weekStart, LabelNight)
	entries := []model.Schedule{entry(driver, v.ID, nStart, nEnd)}

	days := ProjectWeek(driver, weekStart, []model.Vehicle{v}, entries, time.UTC)
	assert.Equal(t, LabelNight, days[0].DriverShift)
	assert.Equal(t, 0, days[0].Night.FreeSlots)
	assert.Empty(t, days[1].DriverShift, "June 3 must not claim the night entry")
	assert.Equal(t, 1, days[1].Night.FreeSlots)
}

func TestProjectWeekCapacityInvariant(t *testing.T) {
	v1 := activeVehicle(farFuture)
	v2 := activeVehicle(farFuture)
	expired := activeVehicle(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	vehicles := []model.Vehicle{v1, v2, expired}

	weekStart := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	mStart, mEnd := Window(weekStart, LabelMorning)
	entries := []model.Schedule{entry(uuid.New(), v1.ID, mStart, mEnd)}

	days := ProjectWeek(uuid.New(), weekStart, vehicles, entries, time.UTC)
	for _, d := range days {
		for _, cell := range []Cell{d.Morning, d.Afternoon, d.Night} {
			assert.GreaterOrEqual(t, cell.FreeSlots, 0)
			assert.LessOrEqual(t, cell.FreeSlots, cell.Capacity)
			assert.Equal(t, 2, cell.Capacity, "expired vehicle must not count")
		}
	}
	assert.Equal(t, 1, days[0].Morning.FreeSlots)
}
