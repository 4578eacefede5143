package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jdhadshhd/med-point/internal/core/domain"
	apperrors "github.com/jdhadshhd/med-point/internal/core/errors"
	"github.com/jdhadshhd/med-point/internal/core/mocks"
	"github.com/jdhadshhd/med-point/internal/core/ports"
	"github.com/jdhadshhd/med-point/internal/core/services"
)

func TestAppointmentService_Create(t *testing.T) {
	ctx := context.Background()
	patientID := uuid.New()
	doctorID := uuid.New()
	scheduledAt := time.Now().Add(48 * time.Hour)

	t.Run("books WAITING and notifies doctor", func(t *testing.T) {
		mockRepo := mocks.NewMockAppointmentRepository()
		mockUsers := mocks.NewMockUserRepository()
		mockNotifier := mocks.NewMockNotificationService()
		mockPublisher := mocks.NewMockEventPublisher()

		svc := services.NewAppointmentService(mockRepo, mockUsers, mockNotifier, mockPublisher)

		mockRepo.On("Create", ctx, mock.MatchedBy(func(a *domain.Appointment) bool {
			return a.Status == domain.AppointmentWaiting
		})).Return(&domain.Appointment{
			ID:          1,
			PatientID:   patientID,
			DoctorID:    doctorID,
			ScheduledAt: scheduledAt,
			Status:      domain.AppointmentWaiting,
		}, nil)
		mockUsers.On("GetByID", ctx, patientID).Return(&domain.User{ID: patientID, FullName: "Amina Yusuf"}, nil)
		mockNotifier.On("Record", ctx, doctorID, domain.NotificationAppointmentNew, mock.AnythingOfType("string")).
			Return(&domain.Notification{ID: 1}, nil)
		mockPublisher.On("PublishToUser", doctorID, mock.MatchedBy(func(ev domain.RealtimeEvent) bool {
			return ev.EventName() == "appointment:updated"
		})).Return()

		appt, err := svc.Create(ctx, ports.CreateAppointmentParams{
			PatientID:   patientID,
			DoctorID:    doctorID,
			ScheduledAt: scheduledAt,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.AppointmentWaiting, appt.Status)
		mockNotifier.AssertExpectations(t)
		mockPublisher.AssertExpectations(t)
	})

	t.Run("missing patient", func(t *testing.T) {
		mockRepo := mocks.NewMockAppointmentRepository()
		mockUsers := mocks.NewMockUserRepository()
		mockNotifier := mocks.NewMockNotificationService()
		mockPublisher := mocks.NewMockEventPublisher()

		svc := services.NewAppointmentService(mockRepo, mockUsers, mockNotifier, mockPublisher)

		appt, err := svc.Create(ctx, ports.CreateAppointmentParams{
			DoctorID:    doctorID,
			ScheduledAt: scheduledAt,
		})

		assert.Nil(t, appt)
		assert.ErrorIs(t, err, apperrors.ErrPatientRequired)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAppointmentService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	patientID := uuid.New()
	doctorID := uuid.New()

	t.Run("notifies patient of status change", func(t *testing.T) {
		mockRepo := mocks.NewMockAppointmentRepository()
		mockUsers := mocks.NewMockUserRepository()
		mockNotifier := mocks.NewMockNotificationService()
		mockPublisher := mocks.NewMockEventPublisher()

		svc := services.NewAppointmentService(mockRepo, mockUsers, mockNotifier, mockPublisher)

		mockRepo.On("GetByID", ctx, int64(1)).Return(&domain.Appointment{
			ID: 1, PatientID: patientID, DoctorID: doctorID, Status: domain.AppointmentWaiting,
		}, nil)
		mockRepo.On("Update", ctx, mock.MatchedBy(func(a *domain.Appointment) bool {
			return a.Status == domain.AppointmentInProgress
		})).Return(&domain.Appointment{
			ID: 1, PatientID: patientID, DoctorID: doctorID, Status: domain.AppointmentInProgress,
		}, nil)

		mockNotifier.On("Record", ctx, patientID, domain.NotificationAppointmentStatus, mock.AnythingOfType("string")).
			Return(&domain.Notification{ID: 1}, nil)
		mockPublisher.On("PublishToUser", patientID, domain.AppointmentUpdatedEvent{
			AppointmentID: 1,
			Status:        "IN_PROGRESS",
			Message:       "Your appointment status changed to IN_PROGRESS",
		}).Return()

		appt, err := svc.UpdateStatus(ctx, ports.UpdateAppointmentStatusParams{
			AppointmentID: 1,
			Status:        domain.AppointmentInProgress,
			ActorID:       doctorID,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.AppointmentInProgress, appt.Status)
		mockPublisher.AssertExpectations(t)
	})

	t.Run("rejects unknown status first", func(t *testing.T) {
		mockRepo := mocks.NewMockAppointmentRepository()
		mockUsers := mocks.NewMockUserRepository()
		mockNotifier := mocks.NewMockNotificationService()
		mockPublisher := mocks.NewMockEventPublisher()

		svc := services.NewAppointmentService(mockRepo, mockUsers, mockNotifier, mockPublisher)

		appt, err := svc.UpdateStatus(ctx, ports.UpdateAppointmentStatusParams{
			AppointmentID: 1,
			Status:        domain.AppointmentStatus("POSTPONED"),
			ActorID:       doctorID,
		})

		assert.Nil(t, appt)
		assert.ErrorIs(t, err, apperrors.ErrInvalidAppointmentStatus)
		mockRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestAppointmentService_Cancel(t *testing.T) {
	ctx := context.Background()
	patientID := uuid.New()
	doctorID := uuid.New()

	appointment := func() *domain.Appointment {
		return &domain.Appointment{
			ID:          1,
			PatientID:   patientID,
			DoctorID:    doctorID,
			ScheduledAt: time.Now().Add(24 * time.Hour),
			Status:      domain.AppointmentWaiting,
		}
	}

	cancelled := func() *domain.Appointment {
		a := appointment()
		a.Status = domain.AppointmentCancelled
		return a
	}

	t.Run("patient cancels, doctor is notified", func(t *testing.T) {
		mockRepo := mocks.NewMockAppointmentRepository()
		mockUsers := mocks.NewMockUserRepository()
		mockNotifier := mocks.NewMockNotificationService()
		mockPublisher := mocks.NewMockEventPublisher()

		svc := services.NewAppointmentService(mockRepo, mockUsers, mockNotifier, mockPublisher)

		mockRepo.On("GetByID", ctx, int64(1)).Return(appointment(), nil)
		mockRepo.On("Update", ctx, mock.MatchedBy(func(a *domain.Appointment) bool {
			return a.Status == domain.AppointmentCancelled
		})).Return(cancelled(), nil)

		mockNotifier.On("Record", ctx, doctorID, domain.NotificationAppointmentCancelled, mock.AnythingOfType("string")).
			Return(&domain.Notification{ID: 1}, nil)
		mockPublisher.On("PublishToUser", doctorID, mock.Anything).Return()

		appt, err := svc.Cancel(ctx, 1, patientID)

		require.NoError(t, err)
		assert.Equal(t, domain.AppointmentCancelled, appt.Status)
		mockNotifier.AssertExpectations(t)
	})

	t.Run("doctor cancels, patient is notified", func(t *testing.T) {
		mockRepo := mocks.NewMockAppointmentRepository()
		mockUsers := mocks.NewMockUserRepository()
		mockNotifier := mocks.NewMockNotificationService()
		mockPublisher := mocks.NewMockEventPublisher()

		svc := services.NewAppointmentService(mockRepo, mockUsers, mockNotifier, mockPublisher)

		mockRepo.On("GetByID", ctx, int64(1)).Return(appointment(), nil)
		mockRepo.On("Update", ctx, mock.Anything).Return(cancelled(), nil)

		mockNotifier.On("Record", ctx, patientID, domain.NotificationAppointmentCancelled, mock.AnythingOfType("string")).
			Return(&domain.Notification{ID: 2}, nil)
		mockPublisher.On("PublishToUser", patientID, mock.Anything).Return()

		_, err := svc.Cancel(ctx, 1, doctorID)

		require.NoError(t, err)
		mockNotifier.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo := mocks.NewMockAppointmentRepository()
		mockUsers := mocks.NewMockUserRepository()
		mockNotifier := mocks.NewMockNotificationService()
		mockPublisher := mocks.NewMockEventPublisher()

		svc := services.NewAppointmentService(mockRepo, mockUsers, mockNotifier, mockPublisher)

		mockRepo.On("GetByID", ctx, int64(404)).Return(nil, apperrors.ErrAppointmentNotFound)

		appt, err := svc.Cancel(ctx, 404, patientID)

		assert.Nil(t, appt)
		assert.ErrorIs(t, err, apperrors.ErrAppointmentNotFound)
	})
}
