package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jdhadshhd/med-point/internal/core/domain"
)

// UserRepository persists portal users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// ListIDsByRole resolves all active users holding the given role at call
	// time. There is no snapshot or versioning; users added afterwards are
	// not included.
	ListIDsByRole(ctx context.Context, role domain.Role) ([]uuid.UUID, error)
}

// NotificationRepository persists durable notification rows. Rows are only
// ever appended and have ReadAt stamped; nothing here deletes them.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	CreateBatch(ctx context.Context, ns []*domain.Notification) ([]*domain.Notification, error)
	GetByID(ctx context.Context, id int64) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Notification, error)
	ListUnreadByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, id int64, readAt time.Time) (*domain.Notification, error)
	// MarkAllRead stamps every unread row for the user and returns the number
	// of rows affected. Calling it again immediately affects zero rows.
	MarkAllRead(ctx context.Context, userID uuid.UUID, readAt time.Time) (int64, error)
}

// AppointmentRepository persists bookings.
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Update(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*domain.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*domain.Appointment, error)
	ListTodayByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*domain.Appointment, error)
	CountByStatus(ctx context.Context, status domain.AppointmentStatus) (int64, error)
}

// TicketRepository persists support tickets and their reply threads.
type TicketRepository interface {
	Create(ctx context.Context, t *domain.SupportTicket) (*domain.SupportTicket, error)
	GetByID(ctx context.Context, id int64) (*domain.SupportTicket, error)
	Update(ctx context.Context, t *domain.SupportTicket) (*domain.SupportTicket, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.SupportTicket, error)
	ListAll(ctx context.Context) ([]*domain.SupportTicket, error)
	AddMessage(ctx context.Context, m *domain.TicketMessage) (*domain.TicketMessage, error)
	ListMessages(ctx context.Context, ticketID int64) ([]*domain.TicketMessage, error)
	CountByStatus(ctx context.Context, status domain.TicketStatus) (int64, error)
}

// CriticalCaseRepository persists critical-case flags. Flags are never
// physically deleted; resolution transitions status instead.
type CriticalCaseRepository interface {
	Create(ctx context.Context, f *domain.CriticalCaseFlag) (*domain.CriticalCaseFlag, error)
	GetByID(ctx context.Context, id int64) (*domain.CriticalCaseFlag, error)
	// FindActiveByPatient returns the FLAGGED row for the patient, or
	// ErrFlagNotFound when no flag is active.
	FindActiveByPatient(ctx context.Context, patientID uuid.UUID) (*domain.CriticalCaseFlag, error)
	Update(ctx context.Context, f *domain.CriticalCaseFlag) (*domain.CriticalCaseFlag, error)
	ListActive(ctx context.Context) ([]*domain.CriticalCaseFlag, error)
	ListActiveByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*domain.CriticalCaseFlag, error)
}

// RecordRepository persists doctor-authored medical records and patient
// self-reported health measurements.
type RecordRepository interface {
	CreateRecord(ctx context.Context, r *domain.MedicalRecord) (*domain.MedicalRecord, error)
	ListRecordsByPatient(ctx context.Context, patientID uuid.UUID) ([]*domain.MedicalRecord, error)
	ListRecordsByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*domain.MedicalRecord, error)
	CreateMeasurement(ctx context.Context, m *domain.HealthMeasurement) (*domain.HealthMeasurement, error)
	LatestMeasurement(ctx context.Context, patientID uuid.UUID) (*domain.HealthMeasurement, error)
	MeasurementHistory(ctx context.Context, patientID uuid.UUID) ([]*domain.HealthMeasurement, error)
}

// DietPlanRepository persists nutrition plans.
type DietPlanRepository interface {
	// Create retires the patient's current active plan, if any, and inserts
	// the new one as active.
	Create(ctx context.Context, p *domain.DietPlan) (*domain.DietPlan, error)
	// FindActiveByPatient returns the active plan, or ErrDietPlanNotFound
	// when the patient has none.
	FindActiveByPatient(ctx context.Context, patientID uuid.UUID) (*domain.DietPlan, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*domain.DietPlan, error)
}
