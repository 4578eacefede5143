package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jdhadshhd/med-point/internal/core/domain"
	apperrors "github.com/jdhadshhd/med-point/internal/core/errors"
	"github.com/jdhadshhd/med-point/internal/core/ports"
	"github.com/jdhadshhd/med-point/internal/infrastructure/metrics"
)

// CriticalCaseService raises and resolves per-patient critical flags based
// on measurement risk bands.
type CriticalCaseService struct {
	flagRepo ports.CriticalCaseRepository
	userRepo ports.UserRepository
	notifier ports.NotificationService
	metrics  *metrics.Collector
}

var _ ports.CriticalCaseService = (*CriticalCaseService)(nil)

// NewCriticalCaseService creates a new critical case service. The metrics
// collector may be nil.
func NewCriticalCaseService(
	flagRepo ports.CriticalCaseRepository,
	userRepo ports.UserRepository,
	notifier ports.NotificationService,
	collector *metrics.Collector,
) *CriticalCaseService {
	return &CriticalCaseService{
		flagRepo: flagRepo,
		userRepo: userRepo,
		notifier: notifier,
		metrics:  collector,
	}
}

// Evaluate inspects a measurement's risk band. A critical band raises a
// flag for the patient, unless one is already active, and fans out
// notifications to the treating doctor and every admin. Any other band
// takes no action; resolution is always an explicit clinician decision.
// Returns nil when no flag was raised.
func (s *CriticalCaseService) Evaluate(ctx context.Context, params ports.EvaluateParams) (*domain.CriticalCaseFlag, error) {
	if params.MUACStatus != domain.MUACRed {
		return nil, nil
	}

	existing, err := s.flagRepo.FindActiveByPatient(ctx, params.PatientID)
	if err != nil && !errors.Is(err, apperrors.ErrFlagNotFound) {
		return nil, err
	}
	if existing != nil {
		// Already flagged, do not duplicate
		return nil, nil
	}

	flag, err := domain.NewAutoFlag(params.PatientID, params.DoctorID)
	if err != nil {
		return nil, err
	}

	created, err := s.flagRepo.Create(ctx, flag)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.ActiveCriticalFlags.Inc()
	}

	patientName := s.patientName(ctx, params.PatientID)
	message := fmt.Sprintf("Critical case alert: %s has been flagged (%s)", patientName, domain.AutoFlagReason)

	if params.DoctorID != uuid.Nil {
		if _, err := s.notifier.Record(ctx, params.DoctorID, domain.NotificationCriticalCase, message); err != nil {
			return created, err
		}
	}

	if _, err := s.notifier.RecordForRole(ctx, domain.RoleAdmin, domain.NotificationCriticalCase, message); err != nil {
		return created, err
	}

	return created, nil
}

// Resolve transitions an active flag to resolved. Resolving an already
// resolved flag returns ErrFlagAlreadyResolved.
func (s *CriticalCaseService) Resolve(ctx context.Context, flagID int64, reason string) (*domain.CriticalCaseFlag, error) {
	flag, err := s.flagRepo.GetByID(ctx, flagID)
	if err != nil {
		return nil, err
	}

	if err := flag.Resolve(reason); err != nil {
		return nil, err
	}

	updated, err := s.flagRepo.Update(ctx, flag)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.ActiveCriticalFlags.Dec()
	}

	return updated, nil
}

// NotifyCriticalPatients records an urgent notification for every patient
// the doctor currently has an active flag on, asking them to make contact
// immediately. Returns the number of patients notified.
func (s *CriticalCaseService) NotifyCriticalPatients(ctx context.Context, doctorID uuid.UUID) (int64, error) {
	flags, err := s.flagRepo.ListActiveByDoctor(ctx, doctorID)
	if err != nil {
		return 0, err
	}

	var notified int64
	for _, flag := range flags {
		if _, err := s.notifier.Record(ctx, flag.PatientID, domain.NotificationUrgent, "Please contact your doctor immediately"); err != nil {
			return notified, err
		}
		notified++
	}

	return notified, nil
}

// ListActive returns all currently active flags.
func (s *CriticalCaseService) ListActive(ctx context.Context) ([]*domain.CriticalCaseFlag, error) {
	return s.flagRepo.ListActive(ctx)
}

// ListActiveForDoctor returns active flags for patients under the doctor.
func (s *CriticalCaseService) ListActiveForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*domain.CriticalCaseFlag, error) {
	return s.flagRepo.ListActiveByDoctor(ctx, doctorID)
}

// patientName resolves a display name for notification messages, falling
// back to the raw ID when the lookup fails.
func (s *CriticalCaseService) patientName(ctx context.Context, patientID uuid.UUID) string {
	user, err := s.userRepo.GetByID(ctx, patientID)
	if err != nil || user == nil {
		return patientID.String()
	}
	return user.FullName
}
