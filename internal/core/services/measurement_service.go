package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/jdhadshhd/med-point/internal/core/domain"
	"github.com/jdhadshhd/med-point/internal/core/ports"
)

// MeasurementService persists patient self-reported measurements, deriving
// BMI and the MUAC risk band and routing critical bands into flag
// evaluation.
type MeasurementService struct {
	recordRepo   ports.RecordRepository
	criticalCase ports.CriticalCaseService
}

var _ ports.MeasurementService = (*MeasurementService)(nil)

// NewMeasurementService creates a new measurement service
func NewMeasurementService(recordRepo ports.RecordRepository, criticalCase ports.CriticalCaseService) *MeasurementService {
	return &MeasurementService{
		recordRepo:   recordRepo,
		criticalCase: criticalCase,
	}
}

// Save validates and persists a measurement. A critical MUAC band triggers
// flag evaluation for the patient, addressed to the assigned doctor when
// one is known.
func (s *MeasurementService) Save(ctx context.Context, params ports.SaveMeasurementParams) (*domain.HealthMeasurement, error) {
	measurement, err := domain.NewHealthMeasurement(domain.MeasurementParams{
		PatientID: params.PatientID,
		Weight:    params.Weight,
		Height:    params.Height,
		MUACValue: params.MUACValue,
		Notes:     params.Notes,
	})
	if err != nil {
		return nil, err
	}

	created, err := s.recordRepo.CreateMeasurement(ctx, measurement)
	if err != nil {
		return nil, err
	}

	if _, err := s.criticalCase.Evaluate(ctx, ports.EvaluateParams{
		PatientID:  created.PatientID,
		DoctorID:   params.DoctorID,
		MUACStatus: created.MUACStatus,
	}); err != nil {
		return created, err
	}

	return created, nil
}

// Latest returns a patient's most recent measurement.
func (s *MeasurementService) Latest(ctx context.Context, patientID uuid.UUID) (*domain.HealthMeasurement, error) {
	return s.recordRepo.LatestMeasurement(ctx, patientID)
}

// History returns a patient's measurements, newest first.
func (s *MeasurementService) History(ctx context.Context, patientID uuid.UUID) ([]*domain.HealthMeasurement, error) {
	return s.recordRepo.MeasurementHistory(ctx, patientID)
}
