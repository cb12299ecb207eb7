// Package gcal provides access to the clinic's appointment book, a
// Google Calendar. The domain core only needs time-range listing,
// insert, and delete.
package gcal

import (
	"context"
	"time"
)

// Event is one stored appointment.
type Event struct {
	ID          string
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
}

// Store is the narrow interface the domain core needs from the calendar.
type Store interface {
	// Events returns events whose interval intersects [from, to).
	Events(ctx context.Context, from, to time.Time) ([]Event, error)

	// Insert creates one event and returns it with its assigned ID.
	Insert(ctx context.Context, ev Event) (Event, error)

	// Delete removes the event with the given ID.
	Delete(ctx context.Context, id string) error
}
