package clinic

import (
	"fmt"
	"time"
)

// Config is the clinic's operating window. It is read once at startup
// and injected into the service; nothing mutates it afterwards.
type Config struct {
	// Location is the clinic's timezone. All slot arithmetic happens
	// in this zone.
	Location *time.Location

	// OpenHour and CloseHour bound valid slot starts: a slot is valid
	// only when its start hour falls within [OpenHour, CloseHour).
	OpenHour  int
	CloseHour int

	// SlotDuration is the fixed appointment length.
	SlotDuration time.Duration
}

// NewConfig validates and builds a clinic configuration.
func NewConfig(timezone string, openHour, closeHour int, slotDuration time.Duration) (Config, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return Config{}, fmt.Errorf("load clinic timezone %q: %w", timezone, err)
	}
	if openHour < 0 || closeHour > 24 || openHour >= closeHour {
		return Config{}, fmt.Errorf("invalid clinic hours %d-%d", openHour, closeHour)
	}
	if slotDuration <= 0 {
		return Config{}, fmt.Errorf("invalid slot duration %s", slotDuration)
	}
	return Config{
		Location:     loc,
		OpenHour:     openHour,
		CloseHour:    closeHour,
		SlotDuration: slotDuration,
	}, nil
}

// closeOfDay returns the clinic's closing instant for t's calendar day.
func (c Config) closeOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), c.CloseHour, 0, 0, 0, c.Location)
}

// withinHours reports whether t's local hour is inside the operating
// window.
func (c Config) withinHours(t time.Time) bool {
	h := t.In(c.Location).Hour()
	return h >= c.OpenHour && h < c.CloseHour
}
