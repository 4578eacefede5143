package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jdhadshhd/med-point/internal/core/domain"
)

// EventPublisher is the port the realtime relay exposes to domain services.
// Delivery is best-effort: events published to a room with no connected
// sessions are dropped, the persisted notification row being the durable
// record of the event.
type EventPublisher interface {
	PublishToUser(userID uuid.UUID, event domain.RealtimeEvent)
	PublishToRole(role domain.Role, event domain.RealtimeEvent)
}

// NotificationService is the durable notification store facade.
type NotificationService interface {
	Record(ctx context.Context, userID uuid.UUID, notifType domain.NotificationType, message string) (*domain.Notification, error)
	// RecordForRole snapshots the recipient set at call time and writes one
	// row per user. Users gaining the role afterwards receive nothing.
	RecordForRole(ctx context.Context, role domain.Role, notifType domain.NotificationType, message string) ([]*domain.Notification, error)
	ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Notification, error)
	ListUnreadForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	// MarkRead is idempotent and verifies the notification belongs to userID.
	MarkRead(ctx context.Context, id int64, userID uuid.UUID) (*domain.Notification, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
}

// EvaluateParams is the input to critical-case evaluation.
type EvaluateParams struct {
	PatientID  uuid.UUID
	DoctorID   uuid.UUID
	MUACStatus domain.MUACStatus
}

// CriticalCaseService watches measurement risk bands and raises or resolves
// per-patient critical flags.
type CriticalCaseService interface {
	// Evaluate raises a flag and fans out notifications when the status is
	// the critical band and no flag is active. It never auto-resolves.
	// Returns nil when no action was taken.
	Evaluate(ctx context.Context, params EvaluateParams) (*domain.CriticalCaseFlag, error)
	Resolve(ctx context.Context, flagID int64, reason string) (*domain.CriticalCaseFlag, error)
	// NotifyCriticalPatients sends an urgent notification to every patient
	// the doctor has an active flag on.
	NotifyCriticalPatients(ctx context.Context, doctorID uuid.UUID) (int64, error)
	ListActive(ctx context.Context) ([]*domain.CriticalCaseFlag, error)
	ListActiveForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*domain.CriticalCaseFlag, error)
}

// CreateTicketParams defines the required input for opening a ticket.
type CreateTicketParams struct {
	UserID      uuid.UUID
	Title       string
	Description string
	Priority    domain.TicketPriority
}

// AddReplyParams defines the input for replying on a ticket.
type AddReplyParams struct {
	TicketID   int64
	SenderID   uuid.UUID
	SenderRole domain.Role
	Body       string
}

// UpdateTicketStatusParams defines the input for changing a ticket's status.
type UpdateTicketStatusParams struct {
	TicketID int64
	Status   domain.TicketStatus
	ActorID  uuid.UUID
}

// TicketCounts summarizes tickets per status.
type TicketCounts struct {
	Total      int64
	Open       int64
	InProgress int64
	Resolved   int64
	Closed     int64
}

// TicketService implements support ticket workflows with admin fan-out.
type TicketService interface {
	Create(ctx context.Context, params CreateTicketParams) (*domain.SupportTicket, error)
	GetByID(ctx context.Context, ticketID int64) (*domain.SupportTicket, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.SupportTicket, error)
	ListAll(ctx context.Context) ([]*domain.SupportTicket, error)
	ListMessages(ctx context.Context, ticketID int64) ([]*domain.TicketMessage, error)
	AddReply(ctx context.Context, params AddReplyParams) (*domain.TicketMessage, error)
	UpdateStatus(ctx context.Context, params UpdateTicketStatusParams) (*domain.SupportTicket, error)
	Counts(ctx context.Context) (*TicketCounts, error)
}

// CreateAppointmentParams defines the input for booking an appointment.
type CreateAppointmentParams struct {
	PatientID   uuid.UUID
	DoctorID    uuid.UUID
	ScheduledAt time.Time
	Notes       string
}

// UpdateAppointmentStatusParams defines the input for an appointment status
// change.
type UpdateAppointmentStatusParams struct {
	AppointmentID int64
	Status        domain.AppointmentStatus
	ActorID       uuid.UUID
}

// AppointmentCounts summarizes appointments per status.
type AppointmentCounts struct {
	Total      int64
	Waiting    int64
	InProgress int64
	Completed  int64
	Cancelled  int64
}

// AppointmentService implements booking workflows with patient/doctor
// notification fan-out.
type AppointmentService interface {
	Create(ctx context.Context, params CreateAppointmentParams) (*domain.Appointment, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*domain.Appointment, error)
	ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*domain.Appointment, error)
	TodayForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, params UpdateAppointmentStatusParams) (*domain.Appointment, error)
	Cancel(ctx context.Context, appointmentID int64, cancelledBy uuid.UUID) (*domain.Appointment, error)
	Counts(ctx context.Context) (*AppointmentCounts, error)
}

// CreateRecordParams defines the input for a doctor-authored record.
type CreateRecordParams struct {
	PatientID uuid.UUID
	DoctorID  uuid.UUID
	Notes     string
	MUACValue *float64
}

// RecordService persists clinical records and routes critical measurements
// into flag evaluation.
type RecordService interface {
	CreateRecord(ctx context.Context, params CreateRecordParams) (*domain.MedicalRecord, error)
	ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*domain.MedicalRecord, error)
	ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*domain.MedicalRecord, error)
}

// SaveMeasurementParams defines the input for a patient measurement.
type SaveMeasurementParams struct {
	PatientID uuid.UUID
	DoctorID  uuid.UUID // assigned doctor to notify on critical band, if known
	Weight    float64
	Height    float64
	MUACValue float64
	Notes     string
}

// MeasurementService persists patient self-reported measurements.
type MeasurementService interface {
	Save(ctx context.Context, params SaveMeasurementParams) (*domain.HealthMeasurement, error)
	Latest(ctx context.Context, patientID uuid.UUID) (*domain.HealthMeasurement, error)
	History(ctx context.Context, patientID uuid.UUID) ([]*domain.HealthMeasurement, error)
}

// AssignDietPlanParams defines the input for assigning a nutrition plan.
type AssignDietPlanParams struct {
	PatientID   uuid.UUID
	DoctorID    uuid.UUID
	Title       string
	Description string
	DesignedBy  string
	Items       []domain.DietPlanItem
}

// DietPlanService manages doctor-assigned nutrition plans. Assigning a plan
// retires the patient's previous active plan.
type DietPlanService interface {
	Assign(ctx context.Context, params AssignDietPlanParams) (*domain.DietPlan, error)
	ActiveForPatient(ctx context.Context, patientID uuid.UUID) (*domain.DietPlan, error)
	HistoryForPatient(ctx context.Context, patientID uuid.UUID) ([]*domain.DietPlan, error)
}

// AuthService defines the port for authentication business logic.
type AuthService interface {
	Register(ctx context.Context, params domain.UserRegistrationParams) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
}
