package shift

import (
	"time"

	"github.com/google/uuid"

	"github.com/M0steK/taxifleet-manager/internal/model"
)

// Occupancy describes one shift cell of a day grid.
type Occupancy struct {
	// Capacity is the number of eligible vehicles for the window.
	Capacity int `json:"capacity"`
	// FreeSlots is Capacity minus eligible vehicles already committed to an
	// overlapping entry. Never negative.
	FreeSlots int `json:"freeSlots"`
	// OccupiedDrivers counts distinct drivers with an overlapping entry,
	// regardless of vehicle eligibility. The admin day view shows this raw
	// number; the driver view only uses the valid free capacity.
	OccupiedDrivers int `json:"occupiedDrivers"`
}

// ComputeOccupancy derives the cell for (day, label) from the full vehicle
// and schedule sets. For the night shift only entries anchored to this day
// are counted, so a night entry never also occupies the next day's cell.
func ComputeOccupancy(vehicles []model.Vehicle, entries []model.Schedule, day time.Time, label Label, loc *time.Location) Occupancy {
	start, end := Window(day, label)
	eligible := EligibleVehicles(vehicles, end)

	eligibleIDs := make(map[uuid.UUID]struct{}, len(eligible))
	for _, v := range eligible {
		eligibleIDs[v.ID] = struct{}{}
	}

	dayAnchor := AnchorDate(start, loc)
	usedEligible := make(map[uuid.UUID]struct{})
	drivers := make(map[uuid.UUID]struct{})
	for _, e := range entries {
		if label == LabelNight && !AnchorDate(e.StartTime, loc).Equal(dayAnchor) {
			continue
		}
		if !Overlaps(e.StartTime, e.EndTime, start, end) {
			continue
		}
		drivers[e.UserID] = struct{}{}
		if _, ok := eligibleIDs[e.VehicleID]; ok {
			usedEligible[e.VehicleID] = struct{}{}
		}
	}

	free := len(eligible) - len(usedEligible)
	if free < 0 {
		free = 0
	}
	return Occupancy{
		Capacity:        len(eligible),
		FreeSlots:       free,
		OccupiedDrivers: len(drivers),
	}
}
