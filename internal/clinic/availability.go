package clinic

import (
	"context"
	"fmt"
	"time"
)

// maxSuggestions is the cap on alternative slots offered when the
// requested one is busy.
const maxSuggestions = 3

// SlotStatus classifies the outcome of an availability check.
type SlotStatus int

const (
	// SlotFree means the requested slot has no conflicting event.
	SlotFree SlotStatus = iota
	// SlotOutOfHours means the requested start falls outside the
	// operating window; no calendar query was made.
	SlotOutOfHours
	// SlotBusy means the requested slot is taken and Suggestions holds
	// up to three later alternatives.
	SlotBusy
	// SlotNoneLeft means the requested slot is taken and nothing else
	// is free before close.
	SlotNoneLeft
)

// Availability is the result of an availability check.
type Availability struct {
	Status      SlotStatus
	Requested   time.Time
	Suggestions []time.Time
}

// CheckAvailability determines whether the requested slot is free and,
// if not, scans forward in whole-slot increments until close collecting
// up to three free alternatives. Any calendar failure aborts the scan;
// suggestions gathered before the failure are discarded.
func (s *Service) CheckAvailability(ctx context.Context, rawTime string) (Availability, error) {
	start, err := ParseLocalTime(rawTime, s.cfg.Location)
	if err != nil {
		return Availability{}, err
	}

	if !s.cfg.withinHours(start) {
		s.logger.Info("availability request outside clinic hours", "requested", start)
		return Availability{Status: SlotOutOfHours, Requested: start}, nil
	}

	busy, err := s.slotBusy(ctx, start)
	if err != nil {
		return Availability{}, err
	}
	if !busy {
		return Availability{Status: SlotFree, Requested: start}, nil
	}

	dayEnd := s.cfg.closeOfDay(start)
	var suggestions []time.Time
	for search := start; len(suggestions) < maxSuggestions; {
		search = search.Add(s.cfg.SlotDuration)
		if !search.Before(dayEnd) {
			break
		}
		busy, err := s.slotBusy(ctx, search)
		if err != nil {
			return Availability{}, err
		}
		if !busy {
			suggestions = append(suggestions, search)
		}
	}

	if len(suggestions) == 0 {
		return Availability{Status: SlotNoneLeft, Requested: start}, nil
	}
	return Availability{Status: SlotBusy, Requested: start, Suggestions: suggestions}, nil
}

// slotBusy reports whether any event intersects [start, start+duration).
func (s *Service) slotBusy(ctx context.Context, start time.Time) (bool, error) {
	events, err := s.calendar.Events(ctx, start, start.Add(s.cfg.SlotDuration))
	if err != nil {
		return false, fmt.Errorf("query slot %s: %w", start.Format(time.RFC3339), err)
	}
	return len(events) > 0, nil
}
