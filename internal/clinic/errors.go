package clinic

import "errors"

// Business outcomes the webhook layer maps to plain responses. Store
// failures are wrapped errors and deliberately not part of this set.
var (
	// ErrInvalidTimestamp reports an unparseable or missing time input.
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	// ErrPatientNotFound reports that neither phone nor DOB matched a
	// registry record.
	ErrPatientNotFound = errors.New("patient not found")

	// ErrDuplicatePatient reports a registration colliding with an
	// existing record.
	ErrDuplicatePatient = errors.New("patient already registered")

	// ErrNoMatchingEvent reports that no calendar entry satisfied the
	// name and exact-time match during cancellation.
	ErrNoMatchingEvent = errors.New("no matching appointment")
)
