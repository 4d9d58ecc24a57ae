package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire and storage format for trip dates.
const DateLayout = "2006-01-02"

// ParseTripDate accepts either a bare calendar date ("2025-06-01") or an
// RFC 3339 timestamp and returns the calendar date at midnight UTC.
// A timestamp keeps the calendar date written in its own offset.
func ParseTripDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrValidation)
	}
	if d, err := time.Parse(DateLayout, s); err == nil {
		return d, nil
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD or RFC 3339", ErrValidation)
	}
	return CalendarDate(ts), nil
}

// CalendarDate drops the clock part of t, keeping the year/month/day as seen
// in t's own location, and returns it at midnight UTC.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
