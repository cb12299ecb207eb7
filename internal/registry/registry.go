// Package registry provides access to the clinic's patient registry, a
// spreadsheet whose first row is the column schema. All matching happens
// client-side; the store only does full-scan reads and appends.
package registry

import (
	"context"
	"strings"
)

// Canonical column headers used by the assistant. Any other columns are
// passed through opaquely.
const (
	ColFullName = "fullName"
	ColDOB      = "dob"
	ColPhone    = "mobileNumber"
)

// Record is one registry row keyed by column header.
type Record map[string]string

// FullName returns the patient's full name column.
func (r Record) FullName() string {
	return strings.TrimSpace(r[ColFullName])
}

// DOB returns the date-of-birth column.
func (r Record) DOB() string {
	return strings.TrimSpace(r[ColDOB])
}

// Phone returns the raw phone column, formatting preserved.
func (r Record) Phone() string {
	return strings.TrimSpace(r[ColPhone])
}

// Store is the narrow interface the domain core needs from the registry.
type Store interface {
	// ListAll returns every row in the registry.
	ListAll(ctx context.Context) ([]Record, error)

	// Append adds one row, aligned to the sheet's existing headers.
	// Keys that match no header are dropped; headers absent from the
	// record are written empty.
	Append(ctx context.Context, rec Record) error
}
