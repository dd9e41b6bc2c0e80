// Package calendar holds the pure time and calendar helpers shared by the
// availability index and the booking view: timezone-local date keys,
// minutes-of-day and the fixed 5x7 month grid.
package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateKeyLayout = "2006-01-02"

// DateKey formats the instant's timezone-local calendar day as YYYY-MM-DD.
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dateKeyLayout)
}

// ParseDateKey parses a YYYY-MM-DD key back into a calendar date.
// Unspecified components default to month 1 / day 1, so "2024" and "2024-03"
// are accepted. The returned time is midnight UTC of that date; callers that
// need a zoned instant re-anchor it themselves.
func ParseDateKey(key string) (time.Time, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return time.Time{}, fmt.Errorf("empty date key")
	}

	parts := strings.Split(key, "-")
	if len(parts) > 3 {
		return time.Time{}, fmt.Errorf("invalid date key %q", key)
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil || year <= 0 {
		return time.Time{}, fmt.Errorf("invalid year in date key %q", key)
	}

	month := 1
	if len(parts) > 1 {
		month, err = strconv.Atoi(parts[1])
		if err != nil || month < 1 || month > 12 {
			return time.Time{}, fmt.Errorf("invalid month in date key %q", key)
		}
	}

	day := 1
	if len(parts) > 2 {
		day, err = strconv.Atoi(parts[2])
		if err != nil || day < 1 || day > 31 {
			return time.Time{}, fmt.Errorf("invalid day in date key %q", key)
		}
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

// MinutesOfDay returns the timezone-local hour*60+minute of the instant, 0-1439.
func MinutesOfDay(t time.Time, loc *time.Location) int {
	local := t.In(loc)
	return local.Hour()*60 + local.Minute()
}

// CanonicalInstant round-trips an ISO instant through parsing so that
// membership comparisons never depend on the textual form the instant
// arrived in (offset notation, sub-second digits).
// The canonical form is RFC3339 in UTC.
func CanonicalInstant(s string) (string, error) {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("invalid date/time %q: %w", s, err)
	}
	return t.UTC().Format(time.RFC3339), nil
}

// CanonicalizeTime formats an instant in the canonical RFC3339 UTC form
// used for selection membership and slot index keys.
func CanonicalizeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
