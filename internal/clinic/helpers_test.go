package clinic

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/wellnessgrove/clinic-assistant/internal/gcal"
	"github.com/wellnessgrove/clinic-assistant/internal/registry"
	"github.com/wellnessgrove/clinic-assistant/pkg/logging"
)

// fakeRegistry is an in-memory registry.Store.
type fakeRegistry struct {
	records  []registry.Record
	appended []registry.Record
	listErr  error
	appendEr error
}

func (f *fakeRegistry) ListAll(ctx context.Context) ([]registry.Record, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.records, nil
}

func (f *fakeRegistry) Append(ctx context.Context, rec registry.Record) error {
	if f.appendEr != nil {
		return f.appendEr
	}
	f.appended = append(f.appended, rec)
	f.records = append(f.records, rec)
	return nil
}

// fakeCalendar is an in-memory gcal.Store that records every range
// query so tests can assert how many slot lookups happened.
type fakeCalendar struct {
	events  []gcal.Event
	queries [][2]time.Time
	deleted []string
	nextID  int

	listErr   error
	insertErr error
	deleteErr error

	// failAfter, when > 0, makes the Nth Events call fail.
	failAfter int
}

func (f *fakeCalendar) Events(ctx context.Context, from, to time.Time) ([]gcal.Event, error) {
	f.queries = append(f.queries, [2]time.Time{from, to})
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.failAfter > 0 && len(f.queries) >= f.failAfter {
		return nil, errors.New("calendar backend unavailable")
	}
	var out []gcal.Event
	for _, ev := range f.events {
		if ev.Start.Before(to) && ev.End.After(from) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeCalendar) Insert(ctx context.Context, ev gcal.Event) (gcal.Event, error) {
	if f.insertErr != nil {
		return gcal.Event{}, f.insertErr
	}
	f.nextID++
	ev.ID = "evt_" + string(rune('0'+f.nextID))
	f.events = append(f.events, ev)
	return ev, nil
}

func (f *fakeCalendar) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, ev := range f.events {
		if ev.ID == id {
			f.events = append(f.events[:i], f.events[i+1:]...)
			f.deleted = append(f.deleted, id)
			return nil
		}
	}
	return errors.New("event not found: " + id)
}

func testConfig(t *testing.T) Config {
	t.Helper()
	cfg, err := NewConfig("Australia/Sydney", 9, 17, 30*time.Minute)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	return cfg
}

func newTestService(t *testing.T, reg *fakeRegistry, cal *fakeCalendar) *Service {
	t.Helper()
	return NewService(testConfig(t), reg, cal, logging.New("error"))
}

func janeRecord() registry.Record {
	return registry.Record{
		registry.ColFullName: "Jane Citizen",
		registry.ColDOB:      "1990-01-01",
		registry.ColPhone:    "0414364374",
	}
}

// localTime builds a clinic-local instant on a fixed test day.
func localTime(t *testing.T, hour, min int) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("Australia/Sydney")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return time.Date(2026, 9, 14, hour, min, 0, 0, loc)
}

func busyAt(start time.Time, summary string) gcal.Event {
	return gcal.Event{
		ID:      "busy_" + start.Format("1504"),
		Summary: summary,
		Start:   start,
		End:     start.Add(30 * time.Minute),
	}
}
