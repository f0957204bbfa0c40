package models

import (
	"fmt"
	"time"
)

const dayLayout = "2006-01-02"

// AvailabilityRecord is the remaining inventory of one item on one calendar day.
type AvailabilityRecord struct {
	ServiceID string
	Date      time.Time
	Available int
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay reads a calendar day. Full RFC3339 timestamps are accepted and
// truncated, since some endpoints serialise dates with a time component.
func ParseDay(s string) (time.Time, error) {
	if t, err := time.Parse(dayLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return Day(t), nil
}

// FormatDay is the inverse of ParseDay for plain days.
func FormatDay(t time.Time) string {
	return t.Format(dayLayout)
}
