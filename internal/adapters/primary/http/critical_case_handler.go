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

// CriticalCaseHandler handles HTTP requests for critical-case flags
type CriticalCaseHandler struct {
	criticalCaseService ports.CriticalCaseService
	errorHandler        *ErrorHandler
	logger              *slog.Logger
}

// NewCriticalCaseHandler creates a new critical case handler
func NewCriticalCaseHandler(
	criticalCaseService ports.CriticalCaseService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *CriticalCaseHandler {
	return &CriticalCaseHandler{
		criticalCaseService: criticalCaseService,
		errorHandler:        errorHandler,
		logger:              logger.With("handler", "critical_case"),
	}
}

// RegisterRoutes sets up the routing for all critical-case endpoints.
// The whole group is restricted to clinical staff.
func (h *CriticalCaseHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleListActive)
	r.With(mw.RequireRole(domain.RoleDoctor)).Post("/notify", h.HandleNotifyPatients)
	r.Post("/{flagID}/resolve", h.HandleResolve)
}

// NotifyPatientsResponse reports how many flagged patients were notified.
type NotifyPatientsResponse struct {
	Notified int64 `json:"notified"`
}

// ResolveFlagRequest defines the expected JSON body for resolving a flag
type ResolveFlagRequest struct {
	Reason string `json:"reason"`
}

// Validate validates the resolve flag request
func (r *ResolveFlagRequest) Validate() error {
	v := validation.NewValidator()

	v.MaxLength("reason", r.Reason, domain.MaxMessageLength)

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// CriticalCaseFlagDTO defines the JSON response for critical-case flags.
type CriticalCaseFlagDTO struct {
	ID          int64   `json:"id"`
	PatientID   string  `json:"patientId"`
	DoctorID    *string `json:"doctorId"`
	Reason      string  `json:"reason"`
	Auto        bool    `json:"auto"`
	Status      string  `json:"status"`
	FlaggedAt   string  `json:"flaggedAt"`
	UnflaggedAt *string `json:"unflaggedAt"`
}

func toCriticalCaseFlagDTO(flag *domain.CriticalCaseFlag) CriticalCaseFlagDTO {
	var doctorID *string
	if flag.DoctorID != uuid.Nil {
		value := flag.DoctorID.String()
		doctorID = &value
	}

	var unflaggedAt *string
	if flag.UnflaggedAt != nil {
		value := flag.UnflaggedAt.Format(time.RFC3339)
		unflaggedAt = &value
	}

	return CriticalCaseFlagDTO{
		ID:          flag.ID,
		PatientID:   flag.PatientID.String(),
		DoctorID:    doctorID,
		Reason:      flag.Reason,
		Auto:        flag.Auto,
		Status:      string(flag.Status),
		FlaggedAt:   flag.FlaggedAt.Format(time.RFC3339),
		UnflaggedAt: unflaggedAt,
	}
}

// HandleListActive handles GET /critical-cases. Admins see every active
// flag, doctors only flags for their own patients.
func (h *CriticalCaseHandler) HandleListActive(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	var (
		flags []*domain.CriticalCaseFlag
		err   error
	)
	if claims.Role == domain.RoleAdmin {
		flags, err = h.criticalCaseService.ListActive(r.Context())
	} else {
		flags, err = h.criticalCaseService.ListActiveForDoctor(r.Context(), claims.UserID)
	}
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	response := make([]CriticalCaseFlagDTO, 0, len(flags))
	for _, flag := range flags {
		response = append(response, toCriticalCaseFlagDTO(flag))
	}

	WriteList(w, response)
}

// HandleNotifyPatients handles POST /critical-cases/notify. The doctor
// sends an urgent notification to every patient they have an active flag on.
func (h *CriticalCaseHandler) HandleNotifyPatients(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	notified, err := h.criticalCaseService.NotifyCriticalPatients(r.Context(), claims.UserID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("critical patients notified",
		"doctor_id", claims.UserID,
		"notified", notified,
	)

	WriteJSON(w, http.StatusOK, NotifyPatientsResponse{Notified: notified})
}

// HandleResolve handles POST /critical-cases/{flagID}/resolve
func (h *CriticalCaseHandler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	flagID, err := parseIDParam(r, "flagID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	req, err := validation.DecodeAndValidate[ResolveFlagRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	flag, err := h.criticalCaseService.Resolve(r.Context(), flagID, req.Reason)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("critical case resolved",
		"flag_id", flagID,
		"patient_id", flag.PatientID,
		"user_id", claims.UserID,
	)

	WriteJSON(w, http.StatusOK, toCriticalCaseFlagDTO(flag))
}
