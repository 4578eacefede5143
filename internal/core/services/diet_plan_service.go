package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/jdhadshhd/med-point/internal/core/domain"
	"github.com/jdhadshhd/med-point/internal/core/ports"
)

// DietPlanService manages doctor-assigned nutrition plans.
type DietPlanService struct {
	planRepo ports.DietPlanRepository
}

var _ ports.DietPlanService = (*DietPlanService)(nil)

// NewDietPlanService creates a new diet plan service
func NewDietPlanService(planRepo ports.DietPlanRepository) *DietPlanService {
	return &DietPlanService{planRepo: planRepo}
}

// Assign creates a new active plan for the patient. The repository retires
// the previous active plan in the same transaction.
func (s *DietPlanService) Assign(ctx context.Context, params ports.AssignDietPlanParams) (*domain.DietPlan, error) {
	plan, err := domain.NewDietPlan(domain.DietPlanParams{
		PatientID:   params.PatientID,
		DoctorID:    params.DoctorID,
		Title:       params.Title,
		Description: params.Description,
		DesignedBy:  params.DesignedBy,
		Items:       params.Items,
	})
	if err != nil {
		return nil, err
	}

	return s.planRepo.Create(ctx, plan)
}

// ActiveForPatient returns the patient's current plan.
func (s *DietPlanService) ActiveForPatient(ctx context.Context, patientID uuid.UUID) (*domain.DietPlan, error) {
	return s.planRepo.FindActiveByPatient(ctx, patientID)
}

// HistoryForPatient returns every plan ever assigned, newest first.
func (s *DietPlanService) HistoryForPatient(ctx context.Context, patientID uuid.UUID) ([]*domain.DietPlan, error) {
	return s.planRepo.ListByPatient(ctx, patientID)
}
