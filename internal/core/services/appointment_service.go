package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jdhadshhd/med-point/internal/core/domain"
	apperrors "github.com/jdhadshhd/med-point/internal/core/errors"
	"github.com/jdhadshhd/med-point/internal/core/ports"
)

// AppointmentService implements booking workflows. Bookings notify the
// doctor, status changes notify the patient, cancellations notify whoever
// did not cancel.
type AppointmentService struct {
	apptRepo  ports.AppointmentRepository
	userRepo  ports.UserRepository
	notifier  ports.NotificationService
	publisher ports.EventPublisher
}

var _ ports.AppointmentService = (*AppointmentService)(nil)

// NewAppointmentService creates a new appointment service
func NewAppointmentService(
	apptRepo ports.AppointmentRepository,
	userRepo ports.UserRepository,
	notifier ports.NotificationService,
	publisher ports.EventPublisher,
) *AppointmentService {
	return &AppointmentService{
		apptRepo:  apptRepo,
		userRepo:  userRepo,
		notifier:  notifier,
		publisher: publisher,
	}
}

// Create books an appointment in the WAITING state and notifies the doctor.
func (s *AppointmentService) Create(ctx context.Context, params ports.CreateAppointmentParams) (*domain.Appointment, error) {
	appt, err := domain.NewAppointment(domain.AppointmentParams{
		PatientID:   params.PatientID,
		DoctorID:    params.DoctorID,
		ScheduledAt: params.ScheduledAt,
		Notes:       params.Notes,
	})
	if err != nil {
		return nil, err
	}

	created, err := s.apptRepo.Create(ctx, appt)
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("New appointment booked by %s for %s",
		s.displayName(ctx, created.PatientID),
		created.ScheduledAt.Format("Jan 2, 2006 at 15:04"),
	)
	if _, err := s.notifier.Record(ctx, created.DoctorID, domain.NotificationAppointmentNew, message); err != nil {
		return created, err
	}

	s.publisher.PublishToUser(created.DoctorID, domain.AppointmentUpdatedEvent{
		AppointmentID: created.ID,
		Status:        string(created.Status),
		Message:       message,
	})

	return created, nil
}

// GetByID returns a single appointment.
func (s *AppointmentService) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	return s.apptRepo.GetByID(ctx, id)
}

// ListForPatient returns a patient's appointments, newest first.
func (s *AppointmentService) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*domain.Appointment, error) {
	return s.apptRepo.ListByPatient(ctx, patientID)
}

// ListForDoctor returns a doctor's appointments, newest first.
func (s *AppointmentService) ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*domain.Appointment, error) {
	return s.apptRepo.ListByDoctor(ctx, doctorID)
}

// TodayForDoctor returns a doctor's appointments scheduled for today.
func (s *AppointmentService) TodayForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*domain.Appointment, error) {
	return s.apptRepo.ListTodayByDoctor(ctx, doctorID)
}

// UpdateStatus changes an appointment's status and notifies the patient.
func (s *AppointmentService) UpdateStatus(ctx context.Context, params ports.UpdateAppointmentStatusParams) (*domain.Appointment, error) {
	if !domain.ValidAppointmentStatus(params.Status) {
		return nil, apperrors.ErrInvalidAppointmentStatus
	}

	appt, err := s.apptRepo.GetByID(ctx, params.AppointmentID)
	if err != nil {
		return nil, err
	}

	if err := appt.SetStatus(params.Status); err != nil {
		return nil, err
	}

	updated, err := s.apptRepo.Update(ctx, appt)
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Your appointment status changed to %s", updated.Status)
	if _, err := s.notifier.Record(ctx, updated.PatientID, domain.NotificationAppointmentStatus, message); err != nil {
		return updated, err
	}

	s.publisher.PublishToUser(updated.PatientID, domain.AppointmentUpdatedEvent{
		AppointmentID: updated.ID,
		Status:        string(updated.Status),
		Message:       message,
	})

	return updated, nil
}

// Cancel cancels an appointment and notifies the counterparty: the doctor
// when the patient cancelled, the patient otherwise.
func (s *AppointmentService) Cancel(ctx context.Context, appointmentID int64, cancelledBy uuid.UUID) (*domain.Appointment, error) {
	appt, err := s.apptRepo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	appt.Cancel()

	updated, err := s.apptRepo.Update(ctx, appt)
	if err != nil {
		return nil, err
	}

	recipient := updated.PatientID
	if cancelledBy == updated.PatientID {
		recipient = updated.DoctorID
	}

	message := fmt.Sprintf("Appointment on %s was cancelled",
		updated.ScheduledAt.Format("Jan 2, 2006 at 15:04"))
	if _, err := s.notifier.Record(ctx, recipient, domain.NotificationAppointmentCancelled, message); err != nil {
		return updated, err
	}

	s.publisher.PublishToUser(recipient, domain.AppointmentUpdatedEvent{
		AppointmentID: updated.ID,
		Status:        string(updated.Status),
		Message:       message,
	})

	return updated, nil
}

// Counts returns per-status appointment totals.
func (s *AppointmentService) Counts(ctx context.Context) (*ports.AppointmentCounts, error) {
	counts := &ports.AppointmentCounts{}

	statuses := []struct {
		status domain.AppointmentStatus
		target *int64
	}{
		{domain.AppointmentWaiting, &counts.Waiting},
		{domain.AppointmentInProgress, &counts.InProgress},
		{domain.AppointmentCompleted, &counts.Completed},
		{domain.AppointmentCancelled, &counts.Cancelled},
	}

	for _, s2 := range statuses {
		n, err := s.apptRepo.CountByStatus(ctx, s2.status)
		if err != nil {
			return nil, err
		}
		*s2.target = n
		counts.Total += n
	}

	return counts, nil
}

// displayName resolves a user's name for notification text, falling back
// to the raw ID.
func (s *AppointmentService) displayName(ctx context.Context, userID uuid.UUID) string {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || user == nil {
		return userID.String()
	}
	return user.FullName
}
