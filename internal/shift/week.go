package shift

import (
	"time"

	"github.com/google/uuid"

	"github.com/M0steK/taxifleet-manager/internal/model"
)

// Cell is the free/total capacity of one shift window in the week grid.
type Cell struct {
	FreeSlots int `json:"freeSlots"`
	Capacity  int `json:"capacity"`
}

// BookedTimes carries the actual stored interval of the driver's entry, which
// may differ from the canonical window when an admin created it by hand.
type BookedTimes struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// DayInfo is one day of the driver week-availability view.
type DayInfo struct {
	Date            string       `json:"date"`
	Morning         Cell         `json:"morning"`
	Afternoon       Cell         `json:"afternoon"`
	Night           Cell         `json:"night"`
	DriverShift     Label        `json:"driverShift,omitempty"`
	DriverShiftData *BookedTimes `json:"driverShiftData,omitempty"`
}

// ProjectWeek builds the 7-day availability grid starting at weekStart
// (midnight of the week's first day, already normalized by the caller).
// entries must cover at least every schedule overlapping the week.
//
// The driver's own shift per day is resolved by exact window match first;
// failing that, any entry starting within the calendar day is bucketed by its
// start hour, since manual admin entries need not align to the canonical
// windows.
func ProjectWeek(driverID uuid.UUID, weekStart time.Time, vehicles []model.Vehicle, entries []model.Schedule, loc *time.Location) []DayInfo {
	days := make([]DayInfo, 0, 7)
	for i := 0; i < 7; i++ {
		y, m, d := weekStart.Date()
		day := time.Date(y, m, d+i, 0, 0, 0, 0, loc)
		info := DayInfo{Date: day.Format(DateLayout)}

		for _, label := range Labels {
			occ := ComputeOccupancy(vehicles, entries, day, label, loc)
			cell := Cell{FreeSlots: occ.FreeSlots, Capacity: occ.Capacity}
			switch label {
			case LabelMorning:
				info.Morning = cell
			case LabelAfternoon:
				info.Afternoon = cell
			case LabelNight:
				info.Night = cell
			}

			if info.DriverShift != "" {
				continue
			}
			start, end := Window(day, label)
			for _, e := range entries {
				if e.UserID == driverID && e.StartTime.Equal(start) && e.EndTime.Equal(end) {
					info.DriverShift = label
					info.DriverShiftData = &BookedTimes{StartTime: e.StartTime, EndTime: e.EndTime}
					break
				}
			}
		}

		if info.DriverShift == "" {
			if e := firstEntryOfDay(driverID, day, entries, loc); e != nil {
				info.DriverShift = classifyByStartHour(e.StartTime.In(loc).Hour())
				info.DriverShiftData = &BookedTimes{StartTime: e.StartTime, EndTime: e.EndTime}
			}
		}

		days = append(days, info)
	}
	return days
}

func firstEntryOfDay(driverID uuid.UUID, day time.Time, entries []model.Schedule, loc *time.Location) *model.Schedule {
	y, m, d := day.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, loc)
	dayEnd := time.Date(y, m, d+1, 0, 0, 0, 0, loc)
	for i := range entries {
		e := &entries[i]
		if e.UserID != driverID {
			continue
		}
		if !e.StartTime.Before(dayStart) && e.StartTime.Before(dayEnd) {
			return e
		}
	}
	return nil
}

func classifyByStartHour(hour int) Label {
	switch {
	case hour >= 6 && hour < 14:
		return LabelMorning
	case hour >= 14 && hour < 22:
		return LabelAfternoon
	default:
		return LabelNight
	}
}
