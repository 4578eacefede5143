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

// MeasurementHandler handles HTTP requests for patient health measurements
type MeasurementHandler struct {
	measurementService ports.MeasurementService
	errorHandler       *ErrorHandler
	logger             *slog.Logger
}

// NewMeasurementHandler creates a new measurement handler
func NewMeasurementHandler(
	measurementService ports.MeasurementService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *MeasurementHandler {
	return &MeasurementHandler{
		measurementService: measurementService,
		errorHandler:       errorHandler,
		logger:             logger.With("handler", "measurement"),
	}
}

// RegisterRoutes sets up the routing for all measurement endpoints.
func (h *MeasurementHandler) RegisterRoutes(r chi.Router) {
	r.With(mw.RequireRole(domain.RolePatient)).Post("/", h.HandleSaveMeasurement)
	r.Get("/", h.HandleMeasurementHistory)
	r.Get("/latest", h.HandleLatestMeasurement)
	r.With(mw.RequireRole(domain.RoleDoctor, domain.RoleAdmin)).
		Get("/patients/{patientID}", h.HandlePatientHistory)
}

// SaveMeasurementRequest defines the expected JSON body for a measurement.
// DoctorID is the patient's assigned doctor, used for critical-case alerts.
type SaveMeasurementRequest struct {
	Weight    float64 `json:"weight"`
	Height    float64 `json:"height"`
	MUACValue float64 `json:"muacValue"`
	Notes     string  `json:"notes"`
	DoctorID  string  `json:"doctorId"`
}

// Validate validates the save measurement request
func (r *SaveMeasurementRequest) Validate() error {
	v := validation.NewValidator()

	v.Positive("weight", r.Weight)
	v.Positive("height", r.Height)
	v.Positive("muacValue", r.MUACValue)
	v.UUID("doctorId", r.DoctorID)

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// HealthMeasurementDTO defines the JSON response for measurements.
type HealthMeasurementDTO struct {
	ID         int64   `json:"id"`
	PatientID  string  `json:"patientId"`
	Weight     float64 `json:"weight"`
	Height     float64 `json:"height"`
	MUACValue  float64 `json:"muacValue"`
	MUACStatus string  `json:"muacStatus"`
	BMI        float64 `json:"bmi"`
	Notes      string  `json:"notes"`
	CreatedAt  string  `json:"createdAt"`
}

func toHealthMeasurementDTO(m *domain.HealthMeasurement) HealthMeasurementDTO {
	return HealthMeasurementDTO{
		ID:         m.ID,
		PatientID:  m.PatientID.String(),
		Weight:     m.Weight,
		Height:     m.Height,
		MUACValue:  m.MUACValue,
		MUACStatus: string(m.MUACStatus),
		BMI:        m.BMI,
		Notes:      m.Notes,
		CreatedAt:  m.CreatedAt.Format(time.RFC3339),
	}
}

func toHealthMeasurementDTOs(measurements []*domain.HealthMeasurement) []HealthMeasurementDTO {
	response := make([]HealthMeasurementDTO, 0, len(measurements))
	for _, m := range measurements {
		response = append(response, toHealthMeasurementDTO(m))
	}
	return response
}

// HandleSaveMeasurement handles POST /measurements
func (h *MeasurementHandler) HandleSaveMeasurement(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	req, err := validation.DecodeAndValidate[SaveMeasurementRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	var doctorID uuid.UUID
	if req.DoctorID != "" {
		doctorID, _ = uuid.Parse(req.DoctorID)
	}

	measurement, err := h.measurementService.Save(r.Context(), ports.SaveMeasurementParams{
		PatientID: claims.UserID,
		DoctorID:  doctorID,
		Weight:    req.Weight,
		Height:    req.Height,
		MUACValue: req.MUACValue,
		Notes:     req.Notes,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("measurement saved",
		"measurement_id", measurement.ID,
		"patient_id", claims.UserID,
		"muac_status", measurement.MUACStatus,
	)

	WriteCreated(w, toHealthMeasurementDTO(measurement))
}

// HandleMeasurementHistory handles GET /measurements
func (h *MeasurementHandler) HandleMeasurementHistory(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	measurements, err := h.measurementService.History(r.Context(), claims.UserID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, toHealthMeasurementDTOs(measurements))
}

// HandleLatestMeasurement handles GET /measurements/latest
func (h *MeasurementHandler) HandleLatestMeasurement(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	measurement, err := h.measurementService.Latest(r.Context(), claims.UserID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toHealthMeasurementDTO(measurement))
}

// HandlePatientHistory handles GET /measurements/patients/{patientID}
func (h *MeasurementHandler) HandlePatientHistory(w http.ResponseWriter, r *http.Request) {
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

	measurements, err := h.measurementService.History(r.Context(), patientID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, toHealthMeasurementDTOs(measurements))
}
