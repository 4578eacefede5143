package domain

import (
	"math"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/jdhadshhd/med-point/internal/core/errors"
)

// MedicalRecord is a clinical note written by a doctor, optionally carrying
// a MUAC measurement that feeds critical-case evaluation.
type MedicalRecord struct {
	ID         int64
	PatientID  uuid.UUID
	DoctorID   uuid.UUID
	Notes      string
	MUACValue  *float64
	MUACStatus *MUACStatus
	CreatedAt  time.Time
}

// MedicalRecordParams holds input for a doctor-authored record.
type MedicalRecordParams struct {
	PatientID uuid.UUID
	DoctorID  uuid.UUID
	Notes     string
	MUACValue *float64
}

// NewMedicalRecord creates a valid record. When a MUAC value is present its
// risk band is derived here rather than trusted from the caller.
func NewMedicalRecord(params MedicalRecordParams) (*MedicalRecord, error) {
	if params.PatientID == uuid.Nil {
		return nil, apperrors.ErrPatientRequired
	}
	if params.DoctorID == uuid.Nil {
		return nil, apperrors.ErrDoctorRequired
	}

	record := &MedicalRecord{
		PatientID: params.PatientID,
		DoctorID:  params.DoctorID,
		Notes:     params.Notes,
		CreatedAt: time.Now().UTC(),
	}

	if params.MUACValue != nil {
		if *params.MUACValue <= 0 {
			return nil, apperrors.ErrInvalidMeasurement
		}
		value := *params.MUACValue
		status := ClassifyMUAC(value)
		record.MUACValue = &value
		record.MUACStatus = &status
	}

	return record, nil
}

// HealthMeasurement is a patient self-reported measurement set.
type HealthMeasurement struct {
	ID        int64
	PatientID uuid.UUID
	Weight    float64 // kg
	Height    float64 // cm
	MUACValue float64 // cm
	MUACStatus MUACStatus
	BMI       float64
	Notes     string
	CreatedAt time.Time
}

// MeasurementParams holds input for a patient measurement.
type MeasurementParams struct {
	PatientID uuid.UUID
	Weight    float64
	Height    float64
	MUACValue float64
	Notes     string
}

// NewHealthMeasurement validates the raw values and derives BMI and the
// MUAC risk band.
func NewHealthMeasurement(params MeasurementParams) (*HealthMeasurement, error) {
	if params.PatientID == uuid.Nil {
		return nil, apperrors.ErrPatientRequired
	}
	if params.Weight <= 0 || params.Height <= 0 || params.MUACValue <= 0 {
		return nil, apperrors.ErrInvalidMeasurement
	}

	return &HealthMeasurement{
		PatientID:  params.PatientID,
		Weight:     params.Weight,
		Height:     params.Height,
		MUACValue:  params.MUACValue,
		MUACStatus: ClassifyMUAC(params.MUACValue),
		BMI:        ComputeBMI(params.Weight, params.Height),
		Notes:      params.Notes,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// ComputeBMI returns body mass index from weight in kg and height in cm,
// rounded to one decimal place.
func ComputeBMI(weightKg, heightCm float64) float64 {
	meters := heightCm / 100
	bmi := weightKg / (meters * meters)
	return math.Round(bmi*10) / 10
}
