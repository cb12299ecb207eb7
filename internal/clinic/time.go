package clinic

import (
	"fmt"
	"strings"
	"time"
)

// ParseLocalTime parses a caller-supplied timestamp into clinic-local
// time. Handles:
//   - RFC3339 with offset: "2006-01-02T15:04:05+10:00"
//   - RFC3339 UTC: "2006-01-02T15:04:05Z"
//   - Naive datetime (no timezone): "2006-01-02T15:04:05" — treated as
//     already clinic local
//
// Unparseable or empty input returns ErrInvalidTimestamp; there is no
// silent fallback to a default time.
func ParseLocalTime(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrInvalidTimestamp
	}
	if loc == nil {
		loc = time.UTC
	}

	// Offset-bearing forms first, Z included.
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.In(loc), nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05-07:00", raw); err == nil {
		return t.In(loc), nil
	}

	// Naive datetime — the wall clock is already clinic local.
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", raw, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04", raw, loc); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, raw)
}
