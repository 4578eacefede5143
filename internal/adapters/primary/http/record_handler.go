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
	apperrors "github.com/jdhadshhd/med-point/internal/core/errors"
	"github.com/jdhadshhd/med-point/internal/core/ports"
)

// RecordHandler handles HTTP requests for doctor-authored medical records
type RecordHandler struct {
	recordService ports.RecordService
	errorHandler  *ErrorHandler
	logger        *slog.Logger
}

// NewRecordHandler creates a new record handler
func NewRecordHandler(
	recordService ports.RecordService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *RecordHandler {
	return &RecordHandler{
		recordService: recordService,
		errorHandler:  errorHandler,
		logger:        logger.With("handler", "record"),
	}
}

// RegisterRoutes sets up the routing for all record endpoints.
func (h *RecordHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleListRecords)
	r.With(mw.RequireRole(domain.RoleDoctor)).Post("/", h.HandleCreateRecord)
	r.With(mw.RequireRole(domain.RoleDoctor, domain.RoleAdmin)).
		Get("/patients/{patientID}", h.HandleListPatientRecords)
}

// CreateRecordRequest defines the expected JSON body for a medical record
type CreateRecordRequest struct {
	PatientID string   `json:"patientId"`
	Notes     string   `json:"notes"`
	MUACValue *float64 `json:"muacValue"`
}

// Validate validates the create record request
func (r *CreateRecordRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("patientId", r.PatientID).
		UUID("patientId", r.PatientID)

	if r.MUACValue != nil {
		v.Positive("muacValue", *r.MUACValue)
	}

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// MedicalRecordDTO defines the JSON response for medical records.
type MedicalRecordDTO struct {
	ID         int64    `json:"id"`
	PatientID  string   `json:"patientId"`
	DoctorID   string   `json:"doctorId"`
	Notes      string   `json:"notes"`
	MUACValue  *float64 `json:"muacValue"`
	MUACStatus *string  `json:"muacStatus"`
	CreatedAt  string   `json:"createdAt"`
}

func toMedicalRecordDTO(record *domain.MedicalRecord) MedicalRecordDTO {
	var muacStatus *string
	if record.MUACStatus != nil {
		value := string(*record.MUACStatus)
		muacStatus = &value
	}

	return MedicalRecordDTO{
		ID:         record.ID,
		PatientID:  record.PatientID.String(),
		DoctorID:   record.DoctorID.String(),
		Notes:      record.Notes,
		MUACValue:  record.MUACValue,
		MUACStatus: muacStatus,
		CreatedAt:  record.CreatedAt.Format(time.RFC3339),
	}
}

func toMedicalRecordDTOs(records []*domain.MedicalRecord) []MedicalRecordDTO {
	response := make([]MedicalRecordDTO, 0, len(records))
	for _, record := range records {
		response = append(response, toMedicalRecordDTO(record))
	}
	return response
}

// HandleListRecords handles GET /records. Doctors see records they wrote,
// patients their own chart.
func (h *RecordHandler) HandleListRecords(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	var (
		records []*domain.MedicalRecord
		err     error
	)
	switch claims.Role {
	case domain.RoleDoctor:
		records, err = h.recordService.ListForDoctor(r.Context(), claims.UserID)
	default:
		records, err = h.recordService.ListForPatient(r.Context(), claims.UserID)
	}
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, toMedicalRecordDTOs(records))
}

// HandleCreateRecord handles POST /records
func (h *RecordHandler) HandleCreateRecord(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	req, err := validation.DecodeAndValidate[CreateRecordRequest](r)
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
		h.errorHandler.Handle(w, r, apperrors.ErrPatientRequired)
		return
	}

	record, err := h.recordService.CreateRecord(r.Context(), ports.CreateRecordParams{
		PatientID: patientID,
		DoctorID:  claims.UserID,
		Notes:     req.Notes,
		MUACValue: req.MUACValue,
	})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("medical record created",
		"record_id", record.ID,
		"patient_id", patientID,
		"doctor_id", claims.UserID,
	)

	WriteCreated(w, toMedicalRecordDTO(record))
}

// HandleListPatientRecords handles GET /records/patients/{patientID}
func (h *RecordHandler) HandleListPatientRecords(w http.ResponseWriter, r *http.Request) {
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

	records, err := h.recordService.ListForPatient(r.Context(), patientID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, toMedicalRecordDTOs(records))
}
