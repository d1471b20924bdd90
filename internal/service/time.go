package service

import (
	"errors"
	"time"
)

// parseTimeInput accepts the formats the API sends for instants and
// date-only fields. Date-only values become midnight in the schedule
// location.
func parseTimeInput(raw string, loc *time.Location) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if parsed, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, errors.New("invalid time format")
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// mondayOfWeek returns midnight of the Monday of t's week.
func mondayOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	diff := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -diff)
}

// previousWeekRange returns the Monday 00:00 and Sunday 23:59:59.999999999
// bounds of the week before t's week.
func previousWeekRange(t time.Time) (time.Time, time.Time) {
	monday := mondayOfWeek(t).AddDate(0, 0, -7)
	sundayEnd := monday.AddDate(0, 0, 7).Add(-time.Nanosecond)
	return monday, sundayEnd
}

// weekdayIndex maps a weekday to the Monday-first 0..6 grid used by the
// weekly reports.
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
