package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/jdhadshhd/med-point/internal/core/errors"
)

// DietPlanItem is one meal entry of a nutrition plan.
type DietPlanItem struct {
	Meal     string `json:"meal"`
	Items    string `json:"items"`
	Calories int    `json:"calories"`
}

// DietPlan is a nutrition plan a doctor assigns to a patient. At most one
// plan per patient is active; assigning a new plan retires the previous
// active one.
type DietPlan struct {
	ID          int64
	PatientID   uuid.UUID
	DoctorID    uuid.UUID
	Title       string
	Description string
	DesignedBy  string
	Items       []DietPlanItem
	IsActive    bool
	CreatedAt   time.Time
}

// DietPlanParams holds input for assigning a diet plan.
type DietPlanParams struct {
	PatientID   uuid.UUID
	DoctorID    uuid.UUID
	Title       string
	Description string
	DesignedBy  string
	Items       []DietPlanItem
}

// NewDietPlan creates a valid active plan.
func NewDietPlan(params DietPlanParams) (*DietPlan, error) {
	if params.PatientID == uuid.Nil {
		return nil, apperrors.ErrPatientRequired
	}
	if params.DoctorID == uuid.Nil {
		return nil, apperrors.ErrDoctorRequired
	}
	if params.Title == "" {
		return nil, apperrors.ErrTitleRequired
	}
	if len(params.Title) > MaxTitleLength {
		return nil, apperrors.ErrTitleTooLong
	}
	if len(params.Description) > MaxDescriptionLength {
		return nil, apperrors.ErrDescriptionTooLong
	}

	return &DietPlan{
		PatientID:   params.PatientID,
		DoctorID:    params.DoctorID,
		Title:       params.Title,
		Description: params.Description,
		DesignedBy:  params.DesignedBy,
		Items:       params.Items,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}, nil
}
