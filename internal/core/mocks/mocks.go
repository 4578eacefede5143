// Package mocks provides testify mocks for the core ports.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/jdhadshhd/med-point/internal/core/domain"
	"github.com/jdhadshhd/med-point/internal/core/ports"
)

// MockUserRepository is a mock implementation of ports.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListIDsByRole(ctx context.Context, role domain.Role) ([]uuid.UUID, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

// MockNotificationRepository is a mock implementation of ports.NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func NewMockNotificationRepository() *MockNotificationRepository {
	return &MockNotificationRepository{}
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *MockNotificationRepository) CreateBatch(ctx context.Context, ns []*domain.Notification) ([]*domain.Notification, error) {
	args := m.Called(ctx, ns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Notification), args.Error(1)
}

func (m *MockNotificationRepository) GetByID(ctx context.Context, id int64) (*domain.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Notification, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Notification), args.Error(1)
}

func (m *MockNotificationRepository) ListUnreadByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Notification), args.Error(1)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id int64, readAt time.Time) (*domain.Notification, error) {
	args := m.Called(ctx, id, readAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID, readAt time.Time) (int64, error) {
	args := m.Called(ctx, userID, readAt)
	return args.Get(0).(int64), args.Error(1)
}

// MockAppointmentRepository is a mock implementation of ports.AppointmentRepository
type MockAppointmentRepository struct {
	mock.Mock
}

func NewMockAppointmentRepository() *MockAppointmentRepository {
	return &MockAppointmentRepository{}
}

func (m *MockAppointmentRepository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) Update(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*domain.Appointment, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*domain.Appointment, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) ListTodayByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*domain.Appointment, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) CountByStatus(ctx context.Context, status domain.AppointmentStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockTicketRepository is a mock implementation of ports.TicketRepository
type MockTicketRepository struct {
	mock.Mock
}

func NewMockTicketRepository() *MockTicketRepository {
	return &MockTicketRepository{}
}

func (m *MockTicketRepository) Create(ctx context.Context, t *domain.SupportTicket) (*domain.SupportTicket, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SupportTicket), args.Error(1)
}

func (m *MockTicketRepository) GetByID(ctx context.Context, id int64) (*domain.SupportTicket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SupportTicket), args.Error(1)
}

func (m *MockTicketRepository) Update(ctx context.Context, t *domain.SupportTicket) (*domain.SupportTicket, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SupportTicket), args.Error(1)
}

func (m *MockTicketRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.SupportTicket, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SupportTicket), args.Error(1)
}

func (m *MockTicketRepository) ListAll(ctx context.Context) ([]*domain.SupportTicket, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SupportTicket), args.Error(1)
}

func (m *MockTicketRepository) AddMessage(ctx context.Context, msg *domain.TicketMessage) (*domain.TicketMessage, error) {
	args := m.Called(ctx, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TicketMessage), args.Error(1)
}

func (m *MockTicketRepository) ListMessages(ctx context.Context, ticketID int64) ([]*domain.TicketMessage, error) {
	args := m.Called(ctx, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TicketMessage), args.Error(1)
}

func (m *MockTicketRepository) CountByStatus(ctx context.Context, status domain.TicketStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockCriticalCaseRepository is a mock implementation of ports.CriticalCaseRepository
type MockCriticalCaseRepository struct {
	mock.Mock
}

func NewMockCriticalCaseRepository() *MockCriticalCaseRepository {
	return &MockCriticalCaseRepository{}
}

func (m *MockCriticalCaseRepository) Create(ctx context.Context, f *domain.CriticalCaseFlag) (*domain.CriticalCaseFlag, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CriticalCaseFlag), args.Error(1)
}

func (m *MockCriticalCaseRepository) GetByID(ctx context.Context, id int64) (*domain.CriticalCaseFlag, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CriticalCaseFlag), args.Error(1)
}

func (m *MockCriticalCaseRepository) FindActiveByPatient(ctx context.Context, patientID uuid.UUID) (*domain.CriticalCaseFlag, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CriticalCaseFlag), args.Error(1)
}

func (m *MockCriticalCaseRepository) Update(ctx context.Context, f *domain.CriticalCaseFlag) (*domain.CriticalCaseFlag, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CriticalCaseFlag), args.Error(1)
}

func (m *MockCriticalCaseRepository) ListActive(ctx context.Context) ([]*domain.CriticalCaseFlag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CriticalCaseFlag), args.Error(1)
}

func (m *MockCriticalCaseRepository) ListActiveByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*domain.CriticalCaseFlag, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CriticalCaseFlag), args.Error(1)
}

// MockRecordRepository is a mock implementation of ports.RecordRepository
type MockRecordRepository struct {
	mock.Mock
}

func NewMockRecordRepository() *MockRecordRepository {
	return &MockRecordRepository{}
}

func (m *MockRecordRepository) CreateRecord(ctx context.Context, r *domain.MedicalRecord) (*domain.MedicalRecord, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MedicalRecord), args.Error(1)
}

func (m *MockRecordRepository) ListRecordsByPatient(ctx context.Context, patientID uuid.UUID) ([]*domain.MedicalRecord, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.MedicalRecord), args.Error(1)
}

func (m *MockRecordRepository) ListRecordsByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*domain.MedicalRecord, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.MedicalRecord), args.Error(1)
}

func (m *MockRecordRepository) CreateMeasurement(ctx context.Context, hm *domain.HealthMeasurement) (*domain.HealthMeasurement, error) {
	args := m.Called(ctx, hm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HealthMeasurement), args.Error(1)
}

func (m *MockRecordRepository) LatestMeasurement(ctx context.Context, patientID uuid.UUID) (*domain.HealthMeasurement, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HealthMeasurement), args.Error(1)
}

func (m *MockRecordRepository) MeasurementHistory(ctx context.Context, patientID uuid.UUID) ([]*domain.HealthMeasurement, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.HealthMeasurement), args.Error(1)
}

// MockDietPlanRepository is a mock implementation of ports.DietPlanRepository
type MockDietPlanRepository struct {
	mock.Mock
}

func NewMockDietPlanRepository() *MockDietPlanRepository {
	return &MockDietPlanRepository{}
}

func (m *MockDietPlanRepository) Create(ctx context.Context, p *domain.DietPlan) (*domain.DietPlan, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DietPlan), args.Error(1)
}

func (m *MockDietPlanRepository) FindActiveByPatient(ctx context.Context, patientID uuid.UUID) (*domain.DietPlan, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DietPlan), args.Error(1)
}

func (m *MockDietPlanRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*domain.DietPlan, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DietPlan), args.Error(1)
}

// MockEventPublisher is a mock implementation of ports.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

func (m *MockEventPublisher) PublishToUser(userID uuid.UUID, event domain.RealtimeEvent) {
	m.Called(userID, event)
}

func (m *MockEventPublisher) PublishToRole(role domain.Role, event domain.RealtimeEvent) {
	m.Called(role, event)
}

// MockNotificationService is a mock implementation of ports.NotificationService
type MockNotificationService struct {
	mock.Mock
}

func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

func (m *MockNotificationService) Record(ctx context.Context, userID uuid.UUID, notifType domain.NotificationType, message string) (*domain.Notification, error) {
	args := m.Called(ctx, userID, notifType, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *MockNotificationService) RecordForRole(ctx context.Context, role domain.Role, notifType domain.NotificationType, message string) ([]*domain.Notification, error) {
	args := m.Called(ctx, role, notifType, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Notification), args.Error(1)
}

func (m *MockNotificationService) ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Notification, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Notification), args.Error(1)
}

func (m *MockNotificationService) ListUnreadForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Notification), args.Error(1)
}

func (m *MockNotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, id int64, userID uuid.UUID) (*domain.Notification, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *MockNotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockCriticalCaseService is a mock implementation of ports.CriticalCaseService
type MockCriticalCaseService struct {
	mock.Mock
}

func NewMockCriticalCaseService() *MockCriticalCaseService {
	return &MockCriticalCaseService{}
}

func (m *MockCriticalCaseService) Evaluate(ctx context.Context, params ports.EvaluateParams) (*domain.CriticalCaseFlag, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CriticalCaseFlag), args.Error(1)
}

func (m *MockCriticalCaseService) Resolve(ctx context.Context, flagID int64, reason string) (*domain.CriticalCaseFlag, error) {
	args := m.Called(ctx, flagID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CriticalCaseFlag), args.Error(1)
}

func (m *MockCriticalCaseService) NotifyCriticalPatients(ctx context.Context, doctorID uuid.UUID) (int64, error) {
	args := m.Called(ctx, doctorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCriticalCaseService) ListActive(ctx context.Context) ([]*domain.CriticalCaseFlag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CriticalCaseFlag), args.Error(1)
}

func (m *MockCriticalCaseService) ListActiveForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*domain.CriticalCaseFlag, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CriticalCaseFlag), args.Error(1)
}

// MockTicketService is a mock implementation of ports.TicketService
type MockTicketService struct {
	mock.Mock
}

func NewMockTicketService() *MockTicketService {
	return &MockTicketService{}
}

func (m *MockTicketService) Create(ctx context.Context, params ports.CreateTicketParams) (*domain.SupportTicket, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SupportTicket), args.Error(1)
}

func (m *MockTicketService) GetByID(ctx context.Context, ticketID int64) (*domain.SupportTicket, error) {
	args := m.Called(ctx, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SupportTicket), args.Error(1)
}

func (m *MockTicketService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.SupportTicket, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SupportTicket), args.Error(1)
}

func (m *MockTicketService) ListAll(ctx context.Context) ([]*domain.SupportTicket, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SupportTicket), args.Error(1)
}

func (m *MockTicketService) ListMessages(ctx context.Context, ticketID int64) ([]*domain.TicketMessage, error) {
	args := m.Called(ctx, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TicketMessage), args.Error(1)
}

func (m *MockTicketService) AddReply(ctx context.Context, params ports.AddReplyParams) (*domain.TicketMessage, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TicketMessage), args.Error(1)
}

func (m *MockTicketService) UpdateStatus(ctx context.Context, params ports.UpdateTicketStatusParams) (*domain.SupportTicket, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SupportTicket), args.Error(1)
}

func (m *MockTicketService) Counts(ctx context.Context) (*ports.TicketCounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.TicketCounts), args.Error(1)
}

// MockAppointmentService is a mock implementation of ports.AppointmentService
type MockAppointmentService struct {
	mock.Mock
}

func NewMockAppointmentService() *MockAppointmentService {
	return &MockAppointmentService{}
}

func (m *MockAppointmentService) Create(ctx context.Context, params ports.CreateAppointmentParams) (*domain.Appointment, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *MockAppointmentService) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *MockAppointmentService) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*domain.Appointment, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Appointment), args.Error(1)
}

func (m *MockAppointmentService) ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*domain.Appointment, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Appointment), args.Error(1)
}

func (m *MockAppointmentService) TodayForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*domain.Appointment, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Appointment), args.Error(1)
}

func (m *MockAppointmentService) UpdateStatus(ctx context.Context, params ports.UpdateAppointmentStatusParams) (*domain.Appointment, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *MockAppointmentService) Cancel(ctx context.Context, appointmentID int64, cancelledBy uuid.UUID) (*domain.Appointment, error) {
	args := m.Called(ctx, appointmentID, cancelledBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *MockAppointmentService) Counts(ctx context.Context) (*ports.AppointmentCounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.AppointmentCounts), args.Error(1)
}

// MockAuthService is a mock implementation of ports.AuthService
type MockAuthService struct {
	mock.Mock
}

func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) Register(ctx context.Context, params domain.UserRegistrationParams) (*domain.User, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockRecordService is a mock implementation of ports.RecordService
type MockRecordService struct {
	mock.Mock
}

func NewMockRecordService() *MockRecordService {
	return &MockRecordService{}
}

func (m *MockRecordService) CreateRecord(ctx context.Context, params ports.CreateRecordParams) (*domain.MedicalRecord, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MedicalRecord), args.Error(1)
}

func (m *MockRecordService) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*domain.MedicalRecord, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.MedicalRecord), args.Error(1)
}

func (m *MockRecordService) ListForDoctor(ctx context.Context, doctorID uuid.UUID) ([]*domain.MedicalRecord, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.MedicalRecord), args.Error(1)
}

// MockMeasurementService is a mock implementation of ports.MeasurementService
type MockMeasurementService struct {
	mock.Mock
}

func NewMockMeasurementService() *MockMeasurementService {
	return &MockMeasurementService{}
}

func (m *MockMeasurementService) Save(ctx context.Context, params ports.SaveMeasurementParams) (*domain.HealthMeasurement, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HealthMeasurement), args.Error(1)
}

func (m *MockMeasurementService) Latest(ctx context.Context, patientID uuid.UUID) (*domain.HealthMeasurement, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HealthMeasurement), args.Error(1)
}

func (m *MockMeasurementService) History(ctx context.Context, patientID uuid.UUID) ([]*domain.HealthMeasurement, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.HealthMeasurement), args.Error(1)
}

// MockDietPlanService is a mock implementation of ports.DietPlanService
type MockDietPlanService struct {
	mock.Mock
}

func NewMockDietPlanService() *MockDietPlanService {
	return &MockDietPlanService{}
}

func (m *MockDietPlanService) Assign(ctx context.Context, params ports.AssignDietPlanParams) (*domain.DietPlan, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DietPlan), args.Error(1)
}

func (m *MockDietPlanService) ActiveForPatient(ctx context.Context, patientID uuid.UUID) (*domain.DietPlan, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DietPlan), args.Error(1)
}

func (m *MockDietPlanService) HistoryForPatient(ctx context.Context, patientID uuid.UUID) ([]*domain.DietPlan, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DietPlan), args.Error(1)
}
