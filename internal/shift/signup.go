package shift

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/M0steK/taxifleet-manager/internal/model"
)

// Soft per-selection signup failures. Their messages are the reason strings
// reported back to the driver.
var (
	ErrDuplicateSignup    = errors.New("already assigned to this exact shift")
	ErrOverlappingShift   = errors.New("overlapping shift")
	ErrNoEligibleVehicles = errors.New("no valid vehicles for this period")
	ErrShiftFull          = errors.New("shift full")
)

// PickVehicle runs the per-selection signup decision: given the vehicles of
// the company and every schedule entry overlapping [start, end), it rejects
// duplicates and overlaps for this driver, then picks uniformly at random one
// eligible vehicle not used by any overlapping entry. Any free valid vehicle
// is interchangeable; there is no load balancing.
//
// intn supplies the random index so callers can seed or pin it. The caller
// must invoke this inside the store transaction that also commits the entry,
// otherwise two concurrent signups can both claim the last free vehicle.
func PickVehicle(driverID uuid.UUID, start, end time.Time, vehicles []model.Vehicle, overlapping []model.Schedule, intn func(n int) int) (uuid.UUID, error) {
	for _, e := range overlapping {
		if e.UserID == driverID && e.StartTime.Equal(start) && e.EndTime.Equal(end) {
			return uuid.Nil, ErrDuplicateSignup
		}
	}
	for _, e := range overlapping {
		if e.UserID == driverID && Overlaps(e.StartTime, e.EndTime, start, end) {
			return uuid.Nil, ErrOverlappingShift
		}
	}

	eligible := EligibleVehicles(vehicles, end)
	if len(eligible) == 0 {
		return uuid.Nil, ErrNoEligibleVehicles
	}

	used := make(map[uuid.UUID]struct{}, len(overlapping))
	for _, e := range overlapping {
		if Overlaps(e.StartTime, e.EndTime, start, end) {
			used[e.VehicleID] = struct{}{}
		}
	}

	free := make([]uuid.UUID, 0, len(eligible))
	for _, v := range eligible {
		if _, taken := used[v.ID]; !taken {
			free = append(free, v.ID)
		}
	}
	if len(free) == 0 {
		return uuid.Nil, ErrShiftFull
	}

	return free[intn(len(free))], nil
}
