package shift

import (
	"time"

	"github.com/M0steK/taxifleet-manager/internal/model"
)

// EligibleVehicles returns the vehicles that may legally work a shift ending
// at windowEnd: status active with insurance and inspection covering the
// whole window. Documents are checked against the window's end, not its
// start, so a vehicle cannot go out of cover mid-shift.
func EligibleVehicles(vehicles []model.Vehicle, windowEnd time.Time) []model.Vehicle {
	eligible := make([]model.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if IsEligible(v, windowEnd) {
			eligible = append(eligible, v)
		}
	}
	return eligible
}

func IsEligible(v model.Vehicle, windowEnd time.Time) bool {
	return v.Status == model.VehicleStatusActive &&
		!v.InsuranceExpiry.Before(windowEnd) &&
		!v.NextInspectionDate.Before(windowEnd)
}
