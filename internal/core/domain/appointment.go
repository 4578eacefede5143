package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/jdhadshhd/med-point/internal/core/errors"
)

// AppointmentStatus represents the lifecycle of a booking.
type AppointmentStatus string

const (
	AppointmentWaiting    AppointmentStatus = "WAITING"
	AppointmentInProgress AppointmentStatus = "IN_PROGRESS"
	AppointmentCompleted  AppointmentStatus = "COMPLETED"
	AppointmentCancelled  AppointmentStatus = "CANCELLED"
	AppointmentUrgent     AppointmentStatus = "URGENT"
)

// ValidAppointmentStatus reports whether s is a known appointment status.
func ValidAppointmentStatus(s AppointmentStatus) bool {
	switch s {
	case AppointmentWaiting, AppointmentInProgress, AppointmentCompleted,
		AppointmentCancelled, AppointmentUrgent:
		return true
	}
	return false
}

type Appointment struct {
	ID          int64
	PatientID   uuid.UUID
	DoctorID    uuid.UUID
	ScheduledAt time.Time
	Notes       string
	Status      AppointmentStatus
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// AppointmentParams holds input for booking an appointment.
type AppointmentParams struct {
	PatientID   uuid.UUID
	DoctorID    uuid.UUID
	ScheduledAt time.Time
	Notes       string
}

// NewAppointment creates a valid appointment in the WAITING state.
func NewAppointment(params AppointmentParams) (*Appointment, error) {
	if params.PatientID == uuid.Nil {
		return nil, apperrors.ErrPatientRequired
	}
	if params.DoctorID == uuid.Nil {
		return nil, apperrors.ErrDoctorRequired
	}
	if params.ScheduledAt.IsZero() {
		return nil, apperrors.ErrScheduleRequired
	}

	return &Appointment{
		PatientID:   params.PatientID,
		DoctorID:    params.DoctorID,
		ScheduledAt: params.ScheduledAt.UTC(),
		Notes:       params.Notes,
		Status:      AppointmentWaiting,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// SetStatus changes the appointment status. Invalid values are rejected
// before any state is touched.
func (a *Appointment) SetStatus(status AppointmentStatus) error {
	if !ValidAppointmentStatus(status) {
		return apperrors.ErrInvalidAppointmentStatus
	}
	a.Status = status
	now := time.Now().UTC()
	a.UpdatedAt = &now
	return nil
}

// Cancel marks the appointment cancelled.
func (a *Appointment) Cancel() {
	_ = a.SetStatus(AppointmentCancelled)
}
