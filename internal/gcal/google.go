package gcal

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"
)

// GoogleStore implements Store against the Google Calendar v3 API.
type GoogleStore struct {
	svc        *calendar.Service
	calendarID string
	loc        *time.Location
}

// NewGoogleStore creates a calendar store for one calendar. Returned
// event times are converted into loc.
func NewGoogleStore(svc *calendar.Service, calendarID string, loc *time.Location) *GoogleStore {
	if loc == nil {
		loc = time.UTC
	}
	return &GoogleStore{svc: svc, calendarID: calendarID, loc: loc}
}

// Events lists events intersecting [from, to), recurrences expanded.
func (s *GoogleStore) Events(ctx context.Context, from, to time.Time) ([]Event, error) {
	resp, err := s.svc.Events.List(s.calendarID).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("list calendar events: %w", err)
	}

	events := make([]Event, 0, len(resp.Items))
	for _, item := range resp.Items {
		ev, err := s.fromAPI(item)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

// Insert creates the event with clinic-zone RFC3339 timestamps.
func (s *GoogleStore) Insert(ctx context.Context, ev Event) (Event, error) {
	body := &calendar.Event{
		Summary:     ev.Summary,
		Description: ev.Description,
		Start: &calendar.EventDateTime{
			DateTime: ev.Start.Format(time.RFC3339),
			TimeZone: s.loc.String(),
		},
		End: &calendar.EventDateTime{
			DateTime: ev.End.Format(time.RFC3339),
			TimeZone: s.loc.String(),
		},
	}

	created, err := s.svc.Events.Insert(s.calendarID, body).Context(ctx).Do()
	if err != nil {
		return Event{}, fmt.Errorf("insert calendar event: %w", err)
	}
	return s.fromAPI(created)
}

// Delete removes one event by ID.
func (s *GoogleStore) Delete(ctx context.Context, id string) error {
	if err := s.svc.Events.Delete(s.calendarID, id).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete calendar event %s: %w", id, err)
	}
	return nil
}

// fromAPI converts an API event. All-day events surface at clinic-local
// midnight.
func (s *GoogleStore) fromAPI(item *calendar.Event) (Event, error) {
	start, err := s.parseEventTime(item.Start)
	if err != nil {
		return Event{}, fmt.Errorf("event %s start: %w", item.Id, err)
	}
	end, err := s.parseEventTime(item.End)
	if err != nil {
		return Event{}, fmt.Errorf("event %s end: %w", item.Id, err)
	}
	return Event{
		ID:          item.Id,
		Summary:     item.Summary,
		Description: item.Description,
		Start:       start,
		End:         end,
	}, nil
}

func (s *GoogleStore) parseEventTime(edt *calendar.EventDateTime) (time.Time, error) {
	if edt == nil {
		return time.Time{}, fmt.Errorf("missing event time")
	}
	if edt.DateTime != "" {
		t, err := time.Parse(time.RFC3339, edt.DateTime)
		if err != nil {
			return time.Time{}, err
		}
		return t.In(s.loc), nil
	}
	// All-day event: date only.
	t, err := time.ParseInLocation("2006-01-02", edt.Date, s.loc)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}
