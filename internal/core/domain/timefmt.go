package domain

import (
	"fmt"
	"time"
)

// Wire formats. All timestamps are UTC.
const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
	ClockLayout     = "15:04:05"
)

// ParseDate parses a calendar day in DateLayout.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, &DateFormatError{Detail: s}
	}
	return t, nil
}

// ParseTimestamp parses a timestamp in TimestampLayout, falling back to a
// bare date at midnight.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(TimestampLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, &DateFormatError{Detail: s}
	}
	return t, nil
}

// Day truncates a timestamp to its calendar day in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatMinutes renders a duration in whole minutes as "Hh Mm".
func FormatMinutes(minutes int64) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
