// Package shift holds the scheduling core: shift window math, vehicle
// eligibility, occupancy counts, conflict detection and the self-service
// signup decision. Everything here is pure; services read state from the
// store and pass it in.
package shift

import (
	"fmt"
	"time"
)

// Label names one of the three fixed shift windows of a calendar day.
type Label string

const (
	LabelMorning   Label = "morning"
	LabelAfternoon Label = "afternoon"
	LabelNight     Label = "night"
)

// Labels lists the three windows in day order.
var Labels = []Label{LabelMorning, LabelAfternoon, LabelNight}

func ParseLabel(raw string) (Label, bool) {
	switch Label(raw) {
	case LabelMorning, LabelAfternoon, LabelNight:
		return Label(raw), true
	default:
		return "", false
	}
}

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// ParseDate parses YYYY-MM-DD into midnight of that day in loc.
func ParseDate(raw string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, raw, loc)
}

// Window maps a calendar day (any instant within it, local to its location)
// and a label to the half-open [start, end) shift interval:
// morning [06:00, 14:00), afternoon [14:00, 22:00), night [22:00, 06:00 next
// day). The night window belongs to the day it starts on.
//
// An unknown label is a programming error; callers validate labels before
// calling.
func Window(day time.Time, label Label) (start, end time.Time) {
	y, m, d := day.Date()
	loc := day.Location()
	switch label {
	case LabelMorning:
		return time.Date(y, m, d, 6, 0, 0, 0, loc), time.Date(y, m, d, 14, 0, 0, 0, loc)
	case LabelAfternoon:
		return time.Date(y, m, d, 14, 0, 0, 0, loc), time.Date(y, m, d, 22, 0, 0, 0, loc)
	case LabelNight:
		return time.Date(y, m, d, 22, 0, 0, 0, loc), time.Date(y, m, d+1, 6, 0, 0, 0, loc)
	default:
		panic(fmt.Sprintf("shift: unknown label %q", label))
	}
}

// AnchorDate returns midnight of the calendar day an instant is attributed
// to: hours 00:00-05:59 belong to the previous day (the tail of its night
// shift), everything else to its own day.
func AnchorDate(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	y, m, d := local.Date()
	if local.Hour() < 6 {
		d--
	}
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// Overlaps reports whether two half-open intervals intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
