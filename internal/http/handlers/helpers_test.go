package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/wellnessgrove/clinic-assistant/internal/clinic"
	"github.com/wellnessgrove/clinic-assistant/internal/gcal"
	"github.com/wellnessgrove/clinic-assistant/internal/registry"
	"github.com/wellnessgrove/clinic-assistant/pkg/logging"
)

type stubRegistry struct {
	records []registry.Record
	listErr error
}

func (s *stubRegistry) ListAll(ctx context.Context) ([]registry.Record, error) {
	return s.records, s.listErr
}

func (s *stubRegistry) Append(ctx context.Context, rec registry.Record) error {
	s.records = append(s.records, rec)
	return nil
}

type stubCalendar struct {
	events  []gcal.Event
	queries int
	deleted []string
	listErr error
}

func (s *stubCalendar) Events(ctx context.Context, from, to time.Time) ([]gcal.Event, error) {
	s.queries++
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []gcal.Event
	for _, ev := range s.events {
		if ev.Start.Before(to) && ev.End.After(from) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (s *stubCalendar) Insert(ctx context.Context, ev gcal.Event) (gcal.Event, error) {
	ev.ID = "evt_test"
	s.events = append(s.events, ev)
	return ev, nil
}

func (s *stubCalendar) Delete(ctx context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	for i, ev := range s.events {
		if ev.ID == id {
			s.events = append(s.events[:i], s.events[i+1:]...)
			break
		}
	}
	return nil
}

func sydney(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Australia/Sydney")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

func newTestHandler(t *testing.T, secret string, reg *stubRegistry, cal *stubCalendar) *VapiHandler {
	t.Helper()
	cfg, err := clinic.NewConfig("Australia/Sydney", 9, 17, 30*time.Minute)
	if err != nil {
		t.Fatalf("clinic.NewConfig: %v", err)
	}
	svc := clinic.NewService(cfg, reg, cal, logging.New("error"))
	return NewVapiHandler(VapiHandlerConfig{
		Secret:  secret,
		Service: svc,
		Clinic:  cfg,
		Logger:  logging.New("error"),
	})
}

func janeRow() registry.Record {
	return registry.Record{
		registry.ColFullName: "Jane Citizen",
		registry.ColDOB:      "1990-01-01",
		registry.ColPhone:    "0414364374",
	}
}
