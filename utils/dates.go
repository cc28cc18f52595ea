package utils

import (
	"fmt"
	"time"

	"github.com/jinzhu/now"
)

const CalendarDateLayout = "2006-01-02"

// CalendarDate keeps only the wall-clock date of t, expressed as midnight UTC
// so that two dates compare equal regardless of the zone they came from.
func CalendarDate(t time.Time) time.Time {
	day := now.With(t).BeginningOfDay()
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseCalendarDate parses a YYYY-MM-DD string into a calendar date
func ParseCalendarDate(value string) (time.Time, error) {
	t, err := time.Parse(CalendarDateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be in YYYY-MM-DD format")
	}
	return CalendarDate(t), nil
}

// IsBeforeDay reports whether the calendar date of a falls before that of b.
func IsBeforeDay(a, b time.Time) bool {
	return CalendarDate(a).Before(CalendarDate(b))
}
