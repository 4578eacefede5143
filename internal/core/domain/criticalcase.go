package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/jdhadshhd/med-point/internal/core/errors"
)

// MUACStatus is the mid-upper-arm-circumference risk band.
type MUACStatus string

const (
	MUACGreen  MUACStatus = "GREEN"
	MUACYellow MUACStatus = "YELLOW"
	MUACRed    MUACStatus = "RED"
)

// ClassifyMUAC maps a MUAC measurement in centimeters to its risk band.
// RED is the critical band that triggers automatic flagging.
func ClassifyMUAC(cm float64) MUACStatus {
	switch {
	case cm < 11.5:
		return MUACRed
	case cm < 12.5:
		return MUACYellow
	default:
		return MUACGreen
	}
}

// FlagStatus is the state of a critical-case flag.
type FlagStatus string

const (
	FlagActive   FlagStatus = "FLAGGED"
	FlagResolved FlagStatus = "UNFLAGGED"
)

// AutoFlagReason is stamped on flags raised by measurement evaluation.
const AutoFlagReason = "Severe Malnutrition (MUAC < 11.5cm)"

// CriticalCaseFlag marks a patient as currently critical until explicitly
// resolved. At most one FLAGGED row may exist per patient at a time; the
// invariant is enforced by check-then-create, not a storage constraint.
type CriticalCaseFlag struct {
	ID          int64
	PatientID   uuid.UUID
	DoctorID    uuid.UUID
	Reason      string
	Auto        bool
	Status      FlagStatus
	FlaggedAt   time.Time
	UnflaggedAt *time.Time
}

// NewAutoFlag creates a flag raised by automatic measurement evaluation.
// The doctor may be uuid.Nil when the patient has no assigned doctor.
func NewAutoFlag(patientID, doctorID uuid.UUID) (*CriticalCaseFlag, error) {
	if patientID == uuid.Nil {
		return nil, apperrors.ErrPatientRequired
	}

	return &CriticalCaseFlag{
		PatientID: patientID,
		DoctorID:  doctorID,
		Reason:    AutoFlagReason,
		Auto:      true,
		Status:    FlagActive,
		FlaggedAt: time.Now().UTC(),
	}, nil
}

// IsActive reports whether the flag is still raised.
func (f *CriticalCaseFlag) IsActive() bool {
	return f.Status == FlagActive
}

// Resolve transitions the flag to UNFLAGGED, stamping UnflaggedAt and
// rewriting the reason. Resolving an already-resolved flag is an error.
func (f *CriticalCaseFlag) Resolve(reason string) error {
	if f.Status != FlagActive {
		return apperrors.ErrFlagAlreadyResolved
	}
	f.Status = FlagResolved
	now := time.Now().UTC()
	f.UnflaggedAt = &now
	if reason != "" {
		f.Reason = fmt.Sprintf("Resolved: %s", reason)
	} else {
		f.Reason = "Resolved by system/doctor"
	}
	return nil
}
