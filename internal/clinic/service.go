package clinic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wellnessgrove/clinic-assistant/internal/gcal"
	"github.com/wellnessgrove/clinic-assistant/internal/registry"
	"github.com/wellnessgrove/clinic-assistant/pkg/logging"
)

// Service implements the assistant's clinic operations over the patient
// registry and the appointment calendar. It holds no mutable state;
// every call is self-contained.
type Service struct {
	cfg      Config
	registry registry.Store
	calendar gcal.Store
	logger   *logging.Logger
}

// NewService wires the clinic service.
func NewService(cfg Config, reg registry.Store, cal gcal.Store, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		cfg:      cfg,
		registry: reg,
		calendar: cal,
		logger:   logger,
	}
}

// FindPatient resolves a registry record by normalized phone first,
// falling back to an exact date-of-birth match. An absent criterion
// simply skips that search path. Returns ErrPatientNotFound when
// nothing matches.
func (s *Service) FindPatient(ctx context.Context, phone, dob string) (registry.Record, error) {
	records, err := s.registry.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan registry: %w", err)
	}

	if want := NormalizePhone(phone); want != "" {
		for _, rec := range records {
			if NormalizePhone(rec.Phone()) == want {
				s.logger.Info("patient matched by phone", "name", rec.FullName())
				return rec, nil
			}
		}
	}

	if want := strings.TrimSpace(dob); want != "" {
		for _, rec := range records {
			if rec.DOB() == want {
				s.logger.Info("patient matched by dob", "name", rec.FullName())
				return rec, nil
			}
		}
	}

	return nil, ErrPatientNotFound
}

// Register appends a new patient after a duplicate check against the
// phone and DOB embedded in details. Returns ErrDuplicatePatient when
// either already matches an existing record.
func (s *Service) Register(ctx context.Context, details map[string]string) error {
	rec := registry.Record(details)

	_, err := s.FindPatient(ctx, rec.Phone(), rec.DOB())
	switch {
	case err == nil:
		s.logger.Warn("registration rejected as duplicate", "name", rec.FullName())
		return ErrDuplicatePatient
	case !errors.Is(err, ErrPatientNotFound):
		return err
	}

	if err := s.registry.Append(ctx, rec); err != nil {
		return fmt.Errorf("append patient: %w", err)
	}
	s.logger.Info("patient registered", "name", rec.FullName())
	return nil
}
