package shift

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/M0steK/taxifleet-manager/internal/model"
)

func activeVehicle(validUntil time.Time) model.Vehicle {
	return model.Vehicle{
		ID:                 uuid.New(),
		Status:             model.VehicleStatusActive,
		InsuranceExpiry:    validUntil,
		NextInspectionDate: validUntil,
	}
}

func entry(userID, vehicleID uuid.UUID, start, end time.Time) model.Schedule {
	return model.Schedule{
		ID:        uuid.New(),
		UserID:    userID,
		VehicleID: vehicleID,
		StartTime: start,
		EndTime:   end,
	}
}

var farFuture = time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)

func TestEligibleVehicles(t *testing.T) {
	windowEnd := time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC)

	valid := activeVehicle(farFuture)
	expiredInsurance := activeVehicle(farFuture)
	expiredInsurance.InsuranceExpiry = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	inactive := activeVehicle(farFuture)
	inactive.Status = model.VehicleStatusInactive
	inService := activeVehicle(farFuture)
	inService.Status = model.VehicleStatusInService
	exactBoundary := activeVehicle(windowEnd)

	eligible := EligibleVehicles([]model.Vehicle{valid, expiredInsurance, inactive, inService, exactBoundary}, windowEnd)
	require.Len(t, eligible, 2)
	assert.Equal(t, valid.ID, eligible[0].ID)
	// Documents valid exactly through the window end still qualify.
	assert.Equal(t, exactBoundary.ID, eligible[1].ID)
}

func TestEligibilityCheckedAgainstWindowEnd(t *testing.T) {
	// Insurance lapses at 2025-06-01: the vehicle is excluded from a morning
	// shift ending 2025-06-02T14:00 even though its status is active.
	v := activeVehicle(farFuture)
	v.InsuranceExpiry = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	occ := ComputeOccupancy([]model.Vehicle{v}, nil, day, LabelMorning, time.UTC)
	assert.Equal(t, 0, occ.Capacity)
	assert.Equal(t, 0, occ.FreeSlots)
}

func TestComputeOccupancyCounts(t *testing.T) {
	v1 := activeVehicle(farFuture)
	v2 := activeVehicle(farFuture)
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	start, end := Window(day, LabelMorning)

	driver := uuid.New()
	entries := []model.Schedule{entry(driver, v1.ID, start, end)}

	occ := ComputeOccupancy([]model.Vehicle{v1, v2}, entries, day, LabelMorning, time.UTC)
	assert.Equal(t, 2, occ.Capacity)
	assert.Equal(t, 1, occ.FreeSlots)
	assert.Equal(t, 1, occ.OccupiedDrivers)

	// Idempotent for unchanged inputs.
	assert.Equal(t, occ, ComputeOccupancy([]model.Vehicle{v1, v2}, entries, day, LabelMorning, time.UTC))

	// freeSlots + used eligible == capacity.
	used := occ.Capacity - occ.FreeSlots
	assert.Equal(t, occ.Capacity, occ.FreeSlots+used)
}

func TestOccupiedDriversIgnoresEligibility(t *testing.T) {
	// A shift driven on an ineligible vehicle still occupies the driver in
	// the raw admin count, but does not reduce valid free capacity.
	valid := activeVehicle(farFuture)
	expired := activeVehicle(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	start, end := Window(day, LabelAfternoon)
	entries := []model.Schedule{entry(uuid.New(), expired.ID, start, end)}

	occ := ComputeOccupancy([]model.Vehicle{valid, expired}, entries, day, LabelAfternoon, time.UTC)
	assert.Equal(t, 1, occ.Capacity)
	assert.Equal(t, 1, occ.FreeSlots)
	assert.Equal(t, 1, occ.OccupiedDrivers)
}

func TestNightOccupancyAnchorsToStartDay(t *testing.T) {
	v := activeVehicle(farFuture)
	driver := uuid.New()

	// Night entry 2025-06-02T23:00 -> 2025-06-03T06:00 belongs to June 2.
	e := entry(driver, v.ID,
		time.Date(2025, 6, 2, 23, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 3, 6, 0, 0, 0, time.UTC))

	june2 := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	june3 := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

	occ2 := ComputeOccupancy([]model.Vehicle{v}, []model.Schedule{e}, june2, LabelNight, time.UTC)
	assert.Equal(t, 0, occ2.FreeSlots, "June 2 night must be occupied")

	occ3 := ComputeOccupancy([]model.Vehicle{v}, []model.Schedule{e}, june3, LabelNight, time.UTC)
	assert.Equal(t, 1, occ3.FreeSlots, "June 3 night must not double-count the entry")
}

func TestFreeSlotsNeverNegative(t *testing.T) {
	// More committed vehicles than currently eligible ones: an entry on a
	// vehicle that later went ineligible cannot push the count below zero.
	v := activeVehicle(farFuture)
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	start, end := Window(day, LabelMorning)

	entries := []model.Schedule{
		entry(uuid.New(), v.ID, start, end),
		entry(uuid.New(), uuid.New(), start, end),
	}
	occ := ComputeOccupancy([]model.Vehicle{v}, entries, day, LabelMorning, time.UTC)
	assert.GreaterOrEqual(t, occ.FreeSlots, 0)
	assert.Equal(t, 0, occ.FreeSlots)
}
