package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/jdhadshhd/med-point/internal/core/domain"
	"github.com/jdhadshhd/med-point/internal/core/ports"
)

// RecordService persists doctor-authored medical records. A record carrying
// a critical MUAC measurement is routed into critical-case evaluation.
type RecordService struct {
	recordRepo   ports.RecordRepository
	criticalCase ports.CriticalCaseService
}

var _ ports.RecordService = (*RecordService)(nil)

// NewRecordService creates a new record service
func NewRecordService(recordRepo ports.RecordRepository, criticalCase ports.CriticalCaseService) *RecordService {
	return &RecordService{
		recordRepo:   recordRepo,
		criticalCase: criticalCase,
	}
}

// CreateRecord persists a clinical record. When the embedded MUAC value
// classifies as critical the patient is evaluated for flagging.
func (s *RecordService) CreateRecord(ctx context.Context, params ports.CreateRecordParams) (*domain.MedicalRecord, error) {
	record, err := domain.NewMedicalRecord(domain.MedicalRecordParams{
		PatientID: params.PatientID,
		DoctorID:  params.DoctorID,
		Notes:     params.Notes,
		MUACValue: params.MUACValue,
	})
	if err != nil {
		return nil, err
	}

	created, err := s.recordRepo.CreateRecord(ctx, record)
	if err != nil {
		return nil, err
	}

	if created.MUACStatus != nil {
		if _, err := s.criticalCase.Evaluate(ctx, ports.EvaluateParams{
			PatientID:  created.PatientID,
			DoctorID:   created.DoctorID,
			MUACStatus: *created.MUACStatus,
		}); err != nil {
			return created, err
		}
	}

	return created, nil
}

// ListForPatient returns a patient's records, newest first.
func (s *RecordService) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*domain.MedicalRecord, error) {
	return s.recordRepo.ListRecordsByPatient(ctx, patientID)
}

// ListForDoctor returns the records a doctor authored, newest first.
func (s *RecordService) ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*domain.MedicalRecord, error) {
	return s.recordRepo.ListRecordsByDoctor(ctx, doctorID)
}
