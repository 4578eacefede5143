package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	mw "github.com/jdhadshhd/med-point/internal/adapters/primary/http/middleware"
	"github.com/jdhadshhd/med-point/internal/adapters/primary/validation"
	"github.com/jdhadshhd/med-point/internal/auth"
	"github.com/jdhadshhd/med-point/internal/core/domain"
	apperrors "github.com/jdhadshhd/med-point/internal/core/errors"
	"github.com/jdhadshhd/med-point/internal/core/ports"
)

// AppointmentHandler handles HTTP requests for appointments
type AppointmentHandler struct {
	appointmentService ports.AppointmentService
	errorHandler       *ErrorHandler
	logger             *slog.Logger
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(
	appointmentService ports.AppointmentService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentService: appointmentService,
		errorHandler:       errorHandler,
		logger:             logger.With("handler", "appointment"),
	}
}

// RegisterRoutes sets up the routing for all appointment endpoints.
func (h *AppointmentHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleListAppointments)
	r.With(mw.RequireRole(domain.RolePatient)).Post("/", h.HandleCreateAppointment)
	r.With(mw.RequireRole(domain.RoleDoctor)).Get("/today", h.HandleTodayAppointments)
	r.With(mw.RequireRole(domain.RoleAdmin)).Get("/counts", h.HandleAppointmentCounts)

	r.Route("/{appointmentID}", func(r chi.Router) {
		r.Get("/", h.HandleGetAppointment)
		r.With(mw.RequireRole(domain.RoleDoctor, domain.RoleAdmin)).Patch("/status", h.HandleUpdateAppointmentStatus)
		r.Post("/cancel", h.HandleCancelAppointment)
	})
}

// --- Request/Response DTOs ---

// CreateAppointmentRequest defines the expected JSON body for booking
type CreateAppointmentRequest struct {
	DoctorID    string `json:"doctorId"`
	ScheduledAt string `json:"scheduledAt"`
	Notes       string `json:"notes"`
}

// Validate validates the create appointment request
func (r *CreateAppointmentRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("doctorId", r.DoctorID).
		UUID("doctorId", r.DoctorID)

	v.Required("scheduledAt", r.ScheduledAt)
	if r.ScheduledAt != "" {
		if _, err := time.Parse(time.RFC3339, r.ScheduledAt); err != nil {
			v.Custom("scheduledAt", false, "Must be an RFC3339 timestamp")
		}
	}

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// UpdateAppointmentStatusRequest defines the expected JSON body for status updates
type UpdateAppointmentStatusRequest struct {
	Status string `json:"status"`
}

// Validate validates the update status request
func (r *UpdateAppointmentStatusRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("status", r.Status).
		OneOf("status", r.Status, []string{"WAITING", "IN_PROGRESS", "COMPLETED", "CANCELLED", "URGENT"})

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// AppointmentDTO defines the JSON response for appointments.
type AppointmentDTO struct {
	ID          int64   `json:"id"`
	PatientID   string  `json:"patientId"`
	DoctorID    string  `json:"doctorId"`
	ScheduledAt string  `json:"scheduledAt"`
	Notes       string  `json:"notes"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   *string `json:"updatedAt"`
}

func toAppointmentDTO(appt *domain.Appointment) AppointmentDTO {
	var updatedAt *string
	if appt.UpdatedAt != nil {
		value := appt.UpdatedAt.Format(time.RFC3339)
		updatedAt = &value
	}

	return AppointmentDTO{
		ID:          appt.ID,
		PatientID:   appt.PatientID.String(),
		DoctorID:    appt.DoctorID.String(),
		ScheduledAt: appt.ScheduledAt.Format(time.RFC3339),
		Notes:       appt.Notes,
		Status:      string(appt.Status),
		CreatedAt:   appt.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   updatedAt,
	}
}

func toAppointmentDTOs(appointments []*domain.Appointment) []AppointmentDTO {
	response := make([]AppointmentDTO, 0, len(appointments))
	for _, appt := range appointments {
		response = append(response, toAppointmentDTO(appt))
	}
	return response
}

// AppointmentCountsDTO summarizes appointments per status.
type AppointmentCountsDTO struct {
	Total      int64 `json:"total"`
	Waiting    int64 `json:"waiting"`
	InProgress int64 `json:"inProgress"`
	Completed  int64 `json:"completed"`
	Cancelled  int64 `json:"cancelled"`
}

// --- Handlers ---

// HandleListAppointments handles GET /appointments. Patients see their own
// bookings, doctors their own schedule.
func (h *AppointmentHandler) HandleListAppointments(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	var (
		appointments []*domain.Appointment
		err          error
	)
	switch claims.Role {
	case domain.RoleDoctor:
		appointments, err = h.appointmentService.ListForDoctor(r.Context(), claims.UserID)
	default:
		appointments, err = h.appointmentService.ListForPatient(r.Context(), claims.UserID)
	}
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, toAppointmentDTOs(appointments))
}

// HandleCreateAppointment handles POST /appointments
func (h *AppointmentHandler) HandleCreateAppointment(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	req, err := validation.DecodeAndValidate[CreateAppointmentRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		h.errorHandler.Handle(w, r, apperrors.ErrDoctorRequired)
		return
	}

	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		h.errorHandler.Handle(w, r, apperrors.ErrScheduleRequired)
		return
	}

	appt, err := h.appointmentService.Create(r.Context(), ports.CreateAppointmentParams{
		PatientID:   claims.UserID,
		DoctorID:    doctorID,
		ScheduledAt: scheduledAt,
		Notes:       req.Notes,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("appointment booked",
		"appointment_id", appt.ID,
		"patient_id", claims.UserID,
		"doctor_id", doctorID,
	)

	WriteCreated(w, toAppointmentDTO(appt))
}

// HandleTodayAppointments handles GET /appointments/today
func (h *AppointmentHandler) HandleTodayAppointments(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	appointments, err := h.appointmentService.TodayForDoctor(r.Context(), claims.UserID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, toAppointmentDTOs(appointments))
}

// HandleAppointmentCounts handles GET /appointments/counts
func (h *AppointmentHandler) HandleAppointmentCounts(w http.ResponseWriter, r *http.Request) {
	if _, ok := getClaims(w, r); !ok {
		return
	}

	counts, err := h.appointmentService.Counts(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, AppointmentCountsDTO{
		Total:      counts.Total,
		Waiting:    counts.Waiting,
		InProgress: counts.InProgress,
		Completed:  counts.Completed,
		Cancelled:  counts.Cancelled,
	})
}

// HandleGetAppointment handles GET /appointments/{appointmentID}
func (h *AppointmentHandler) HandleGetAppointment(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	appointmentID, err := parseIDParam(r, "appointmentID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	appt, err := h.appointmentService.GetByID(r.Context(), appointmentID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if !h.isInvolved(claims, appt) {
		h.errorHandler.Handle(w, r, apperrors.ErrForbidden)
		return
	}

	WriteJSON(w, http.StatusOK, toAppointmentDTO(appt))
}

// HandleUpdateAppointmentStatus handles PATCH /appointments/{appointmentID}/status
func (h *AppointmentHandler) HandleUpdateAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	appointmentID, err := parseIDParam(r, "appointmentID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[UpdateAppointmentStatusRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	appt, err := h.appointmentService.UpdateStatus(r.Context(), ports.UpdateAppointmentStatusParams{
		AppointmentID: appointmentID,
		Status:        domain.AppointmentStatus(req.Status),
		ActorID:       claims.UserID,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("appointment status updated",
		"appointment_id", appointmentID,
		"new_status", req.Status,
		"user_id", claims.UserID,
	)

	WriteJSON(w, http.StatusOK, toAppointmentDTO(appt))
}

// HandleCancelAppointment handles POST /appointments/{appointmentID}/cancel
func (h *AppointmentHandler) HandleCancelAppointment(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	appointmentID, err := parseIDParam(r, "appointmentID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	appt, err := h.appointmentService.GetByID(r.Context(), appointmentID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if !h.isInvolved(claims, appt) {
		h.errorHandler.Handle(w, r, apperrors.ErrForbidden)
		return
	}

	cancelled, err := h.appointmentService.Cancel(r.Context(), appointmentID, claims.UserID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("appointment cancelled",
		"appointment_id", appointmentID,
		"user_id", claims.UserID,
	)

	WriteJSON(w, http.StatusOK, toAppointmentDTO(cancelled))
}

// isInvolved reports whether the caller is a party to the appointment or an
// admin.
func (h *AppointmentHandler) isInvolved(claims *auth.Claims, appt *domain.Appointment) bool {
	return claims.Role == domain.RoleAdmin ||
		appt.PatientID == claims.UserID ||
		appt.DoctorID == claims.UserID
}
