package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	mw "github.com/jdhadshhd/med-point/internal/adapters/primary/http/middleware"
	"github.com/jdhadshhd/med-point/internal/adapters/primary/validation"
	"github.com/jdhadshhd/med-point/internal/core/domain"
	"github.com/jdhadshhd/med-point/internal/core/ports"
)

// DietPlanHandler handles HTTP requests for doctor-assigned nutrition plans
type DietPlanHandler struct {
	dietPlanService ports.DietPlanService
	errorHandler    *ErrorHandler
	logger          *slog.Logger
}

// NewDietPlanHandler creates a new diet plan handler
func NewDietPlanHandler(
	dietPlanService ports.DietPlanService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *DietPlanHandler {
	return &DietPlanHandler{
		dietPlanService: dietPlanService,
		errorHandler:    errorHandler,
		logger:          logger.With("handler", "diet_plan"),
	}
}

// RegisterRoutes sets up the routing for all diet plan endpoints.
func (h *DietPlanHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleGetActivePlan)
	r.Get("/history", h.HandlePlanHistory)
	r.With(mw.RequireRole(domain.RoleDoctor)).Post("/", h.HandleAssignPlan)
	r.With(mw.RequireRole(domain.RoleDoctor, domain.RoleAdmin)).
		Get("/patients/{patientID}", h.HandlePatientPlanHistory)
}

// DietPlanItemDTO is one meal line of a plan.
type DietPlanItemDTO struct {
	Meal     string `json:"meal"`
	Items    string `json:"items"`
	Calories int    `json:"calories"`
}

// AssignDietPlanRequest defines the expected JSON body for assigning a plan
type AssignDietPlanRequest struct {
	PatientID   string            `json:"patientId"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	DesignedBy  string            `json:"designedBy"`
	Items       []DietPlanItemDTO `json:"items"`
}

// Validate validates the assign diet plan request
func (r *AssignDietPlanRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("patientId", r.PatientID).
		UUID("patientId", r.PatientID)
	v.Required("title", r.Title).
		MaxLength("title", r.Title, domain.MaxTitleLength)
	v.MaxLength("description", r.Description, domain.MaxDescriptionLength)

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// DietPlanDTO defines the JSON response for diet plans.
type DietPlanDTO struct {
	ID          int64             `json:"id"`
	PatientID   string            `json:"patientId"`
	DoctorID    string            `json:"doctorId"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	DesignedBy  string            `json:"designedBy"`
	Items       []DietPlanItemDTO `json:"items"`
	IsActive    bool              `json:"isActive"`
	CreatedAt   string            `json:"createdAt"`
}

func toDietPlanDTO(plan *domain.DietPlan) DietPlanDTO {
	items := make([]DietPlanItemDTO, 0, len(plan.Items))
	for _, item := range plan.Items {
		items = append(items, DietPlanItemDTO(item))
	}

	return DietPlanDTO{
		ID:          plan.ID,
		PatientID:   plan.PatientID.String(),
		DoctorID:    plan.DoctorID.String(),
		Title:       plan.Title,
		Description: plan.Description,
		DesignedBy:  plan.DesignedBy,
		Items:       items,
		IsActive:    plan.IsActive,
		CreatedAt:   plan.CreatedAt.Format(time.RFC3339),
	}
}

func toDietPlanDTOs(plans []*domain.DietPlan) []DietPlanDTO {
	response := make([]DietPlanDTO, 0, len(plans))
	for _, plan := range plans {
		response = append(response, toDietPlanDTO(plan))
	}
	return response
}

// HandleGetActivePlan handles GET /diet-plans. Returns the caller's current
// plan.
func (h *DietPlanHandler) HandleGetActivePlan(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	plan, err := h.dietPlanService.ActiveForPatient(r.Context(), claims.UserID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toDietPlanDTO(plan))
}

// HandlePlanHistory handles GET /diet-plans/history for the caller.
func (h *DietPlanHandler) HandlePlanHistory(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	plans, err := h.dietPlanService.HistoryForPatient(r.Context(), claims.UserID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, toDietPlanDTOs(plans))
}

// HandleAssignPlan handles POST /diet-plans. The new plan replaces the
// patient's current active one.
func (h *DietPlanHandler) HandleAssignPlan(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	req, err := validation.DecodeAndValidate[AssignDietPlanRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	items := make([]domain.DietPlanItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, domain.DietPlanItem(item))
	}

	plan, err := h.dietPlanService.Assign(r.Context(), ports.AssignDietPlanParams{
		PatientID:   patientID,
		DoctorID:    claims.UserID,
		Title:       req.Title,
		Description: req.Description,
		DesignedBy:  req.DesignedBy,
		Items:       items,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("diet plan assigned",
		"plan_id", plan.ID,
		"patient_id", plan.PatientID,
		"doctor_id", claims.UserID,
	)

	WriteCreated(w, toDietPlanDTO(plan))
}

// HandlePatientPlanHistory handles GET /diet-plans/patients/{patientID}
func (h *DietPlanHandler) HandlePatientPlanHistory(w http.ResponseWriter, r *http.Request) {
	if _, ok := getClaims(w, r); !ok {
		return
	}

	patientIDStr := chi.URLParam(r, "patientID")
	patientID, err := uuid.Parse(patientIDStr)
	if err != nil {
		v := validation.NewValidator()
		v.Custom("patientID", false, "Must be a valid UUID")
		h.errorHandler.Handle(w, r, v.Errors())
		return
	}

	plans, err := h.dietPlanService.HistoryForPatient(r.Context(), patientID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, toDietPlanDTOs(plans))
}
