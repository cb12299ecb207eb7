package clinic

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wellnessgrove/clinic-assistant/internal/gcal"
)

// cancelWindow bounds the symmetric search window around a cancellation
// target: wide enough to tolerate sub-second storage jitter, far
// narrower than the slot pitch so adjacent appointments never appear.
const cancelWindow = 10 * time.Second

// summaryPrefix ties a calendar entry to a patient by name. The link is
// textual only; Cancel compensates with an exact start-time check.
const summaryPrefix = "Appointment: "

// Schedule creates a calendar entry for a verified patient. The patient
// must resolve via FindPatient; the appointment is never created for an
// unverified identity. Availability is not re-checked here — callers
// are expected to have checked first.
func (s *Service) Schedule(ctx context.Context, rawTime, phone, dob string) (time.Time, error) {
	rec, err := s.FindPatient(ctx, phone, dob)
	if err != nil {
		return time.Time{}, err
	}

	start, err := ParseLocalTime(rawTime, s.cfg.Location)
	if err != nil {
		return time.Time{}, err
	}

	ev := gcal.Event{
		Summary:     summaryPrefix + rec.FullName(),
		Description: fmt.Sprintf("Phone: %s | DOB: %s", rec.Phone(), rec.DOB()),
		Start:       start,
		End:         start.Add(s.cfg.SlotDuration),
	}
	if _, err := s.calendar.Insert(ctx, ev); err != nil {
		return time.Time{}, fmt.Errorf("insert appointment: %w", err)
	}

	s.logger.Info("appointment scheduled", "name", rec.FullName(), "start", start)
	return start, nil
}

// Cancel locates the one calendar entry matching the verified patient's
// name and the exact target instant, and deletes only that entry. A
// candidate inside the search window whose start is not exactly equal
// to the target is rejected, even if it is the only candidate — a loose
// window match risks deleting an adjacent or differently-timed
// appointment. Returns ErrNoMatchingEvent when nothing qualifies.
func (s *Service) Cancel(ctx context.Context, rawTime, phone, dob string) error {
	rec, err := s.FindPatient(ctx, phone, dob)
	if err != nil {
		return err
	}

	target, err := ParseLocalTime(rawTime, s.cfg.Location)
	if err != nil {
		return err
	}

	events, err := s.calendar.Events(ctx, target.Add(-cancelWindow), target.Add(cancelWindow))
	if err != nil {
		return fmt.Errorf("query cancellation window: %w", err)
	}

	name := strings.ToLower(rec.FullName())
	for _, ev := range events {
		// An empty registry name would match every summary.
		if name == "" || !strings.Contains(strings.ToLower(ev.Summary), name) {
			continue
		}
		if !ev.Start.Truncate(time.Second).Equal(target.Truncate(time.Second)) {
			s.logger.Warn("rejected near-miss cancellation candidate",
				"event_start", ev.Start, "target", target)
			continue
		}
		if err := s.calendar.Delete(ctx, ev.ID); err != nil {
			return fmt.Errorf("delete appointment %s: %w", ev.ID, err)
		}
		s.logger.Info("appointment cancelled", "name", rec.FullName(), "start", ev.Start)
		return nil
	}

	return ErrNoMatchingEvent
}
