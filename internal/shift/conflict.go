package shift

import (
	"time"

	"github.com/google/uuid"

	"github.com/M0steK/taxifleet-manager/internal/model"
)

// Conflict reports the first existing entry that blocks a proposed
// assignment. OfDriver distinguishes a double-booked driver from a
// double-booked vehicle.
type Conflict struct {
	Entry    model.Schedule
	OfDriver bool
}

// FindConflict scans existing entries for one that overlaps the proposed
// [start, end) window and shares the driver or the vehicle. The driver check
// wins when an entry trips both; the first blocking entry is returned, not
// all of them. excludeID skips the entry currently being edited.
func FindConflict(userID, vehicleID uuid.UUID, start, end time.Time, entries []model.Schedule, excludeID *uuid.UUID) *Conflict {
	for _, e := range entries {
		if excludeID != nil && e.ID == *excludeID {
			continue
		}
		if !Overlaps(e.StartTime, e.EndTime, start, end) {
			continue
		}
		if e.UserID == userID {
			return &Conflict{Entry: e, OfDriver: true}
		}
		if e.VehicleID == vehicleID {
			return &Conflict{Entry: e, OfDriver: false}
		}
	}
	return nil
}
