package services_test

import (
	"context"
	"strings"
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

func TestCriticalCaseService_Evaluate(t *testing.T) {
	ctx := context.Background()
	patientID := uuid.New()
	doctorID := uuid.New()

	t.Run("critical band raises flag and notifies", func(t *testing.T) {
		mockFlags := mocks.NewMockCriticalCaseRepository()
		mockUsers := mocks.NewMockUserRepository()
		mockNotifier := mocks.NewMockNotificationService()

		svc := services.NewCriticalCaseService(mockFlags, mockUsers, mockNotifier, nil)

		mockFlags.On("FindActiveByPatient", ctx, patientID).Return(nil, apperrors.ErrFlagNotFound)
		mockFlags.On("Create", ctx, mock.MatchedBy(func(f *domain.CriticalCaseFlag) bool {
			return f.PatientID == patientID &&
				f.Status == domain.FlagActive &&
				f.Reason == domain.AutoFlagReason &&
				f.Auto
		})).Return(&domain.CriticalCaseFlag{
			ID:        1,
			PatientID: patientID,
			DoctorID:  doctorID,
			Reason:    domain.AutoFlagReason,
			Auto:      true,
			Status:    domain.FlagActive,
			FlaggedAt: time.Now().UTC(),
		}, nil)
		mockUsers.On("GetByID", ctx, patientID).Return(&domain.User{ID: patientID, FullName: "Amina Yusuf"}, nil)

		mockNotifier.On("Record", ctx, doctorID, domain.NotificationCriticalCase, mock.MatchedBy(func(msg string) bool {
			return strings.Contains(msg, "Amina Yusuf") && strings.Contains(msg, domain.AutoFlagReason)
		})).Return(&domain.Notification{ID: 1}, nil)
		mockNotifier.On("RecordForRole", ctx, domain.RoleAdmin, domain.NotificationCriticalCase, mock.AnythingOfType("string")).
			Return([]*domain.Notification{}, nil)

		flag, err := svc.Evaluate(ctx, ports.EvaluateParams{
			PatientID:  patientID,
			DoctorID:   doctorID,
			MUACStatus: domain.MUACRed,
		})

		require.NoError(t, err)
		require.NotNil(t, flag)
		assert.Equal(t, domain.FlagActive, flag.Status)
		assert.Equal(t, domain.AutoFlagReason, flag.Reason)

		mockFlags.AssertExpectations(t)
		mockNotifier.AssertExpectations(t)
	})

	t.Run("no duplicate while flag active", func(t *testing.T) {
		mockFlags := mocks.NewMockCriticalCaseRepository()
		mockUsers := mocks.NewMockUserRepository()
		mockNotifier := mocks.NewMockNotificationService()

		svc := services.NewCriticalCaseService(mockFlags, mockUsers, mockNotifier, nil)

		mockFlags.On("FindActiveByPatient", ctx, patientID).Return(&domain.CriticalCaseFlag{
			ID:        1,
			PatientID: patientID,
			Status:    domain.FlagActive,
		}, nil)

		flag, err := svc.Evaluate(ctx, ports.EvaluateParams{
			PatientID:  patientID,
			DoctorID:   doctorID,
			MUACStatus: domain.MUACRed,
		})

		require.NoError(t, err)
		assert.Nil(t, flag)
		mockFlags.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		mockNotifier.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("non-critical bands take no action", func(t *testing.T) {
		for _, band := range []domain.MUACStatus{domain.MUACGreen, domain.MUACYellow} {
			mockFlags := mocks.NewMockCriticalCaseRepository()
			mockUsers := mocks.NewMockUserRepository()
			mockNotifier := mocks.NewMockNotificationService()

			svc := services.NewCriticalCaseService(mockFlags, mockUsers, mockNotifier, nil)

			flag, err := svc.Evaluate(ctx, ports.EvaluateParams{
				PatientID:  patientID,
				DoctorID:   doctorID,
				MUACStatus: band,
			})

			require.NoError(t, err)
			assert.Nil(t, flag)
			mockFlags.AssertNotCalled(t, "FindActiveByPatient", mock.Anything, mock.Anything)
			mockFlags.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		}
	})

	t.Run("recovery does not auto-resolve", func(t *testing.T) {
		mockFlags := mocks.NewMockCriticalCaseRepository()
		mockUsers := mocks.NewMockUserRepository()
		mockNotifier := mocks.NewMockNotificationService()

		svc := services.NewCriticalCaseService(mockFlags, mockUsers, mockNotifier, nil)

		// Patient has an active flag but the new measurement is GREEN.
		// The flag stays until a clinician resolves it.
		flag, err := svc.Evaluate(ctx, ports.EvaluateParams{
			PatientID:  patientID,
			DoctorID:   doctorID,
			MUACStatus: domain.MUACGreen,
		})

		require.NoError(t, err)
		assert.Nil(t, flag)
		mockFlags.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("no doctor notification without doctor", func(t *testing.T) {
		mockFlags := mocks.NewMockCriticalCaseRepository()
		mockUsers := mocks.NewMockUserRepository()
		mockNotifier := mocks.NewMockNotificationService()

		svc := services.NewCriticalCaseService(mockFlags, mockUsers, mockNotifier, nil)

		mockFlags.On("FindActiveByPatient", ctx, patientID).Return(nil, apperrors.ErrFlagNotFound)
		mockFlags.On("Create", ctx, mock.Anything).Return(&domain.CriticalCaseFlag{
			ID:        2,
			PatientID: patientID,
			Status:    domain.FlagActive,
			Reason:    domain.AutoFlagReason,
		}, nil)
		mockUsers.On("GetByID", ctx, patientID).Return(&domain.User{ID: patientID, FullName: "Amina Yusuf"}, nil)
		mockNotifier.On("RecordForRole", ctx, domain.RoleAdmin, domain.NotificationCriticalCase, mock.AnythingOfType("string")).
			Return([]*domain.Notification{}, nil)

		flag, err := svc.Evaluate(ctx, ports.EvaluateParams{
			PatientID:  patientID,
			DoctorID:   uuid.Nil,
			MUACStatus: domain.MUACRed,
		})

		require.NoError(t, err)
		require.NotNil(t, flag)
		mockNotifier.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mockNotifier.AssertExpectations(t)
	})
}

func TestCriticalCaseService_NotifyCriticalPatients(t *testing.T) {
	ctx := context.Background()
	doctorID := uuid.New()

	t.Run("notifies every flagged patient", func(t *testing.T) {
		mockFlags := mocks.NewMockCriticalCaseRepository()
		mockUsers := mocks.NewMockUserRepository()
		mockNotifier := mocks.NewMockNotificationService()

		svc := services.NewCriticalCaseService(mockFlags, mockUsers, mockNotifier, nil)

		firstPatient := uuid.New()
		secondPatient := uuid.New()
		mockFlags.On("ListActiveByDoctor", ctx, doctorID).Return([]*domain.CriticalCaseFlag{
			{ID: 1, PatientID: firstPatient, DoctorID: doctorID, Status: domain.FlagActive},
			{ID: 2, PatientID: secondPatient, DoctorID: doctorID, Status: domain.FlagActive},
		}, nil)
		mockNotifier.On("Record", ctx, firstPatient, domain.NotificationUrgent, mock.AnythingOfType("string")).
			Return(&domain.Notification{ID: 1}, nil).Once()
		mockNotifier.On("Record", ctx, secondPatient, domain.NotificationUrgent, mock.AnythingOfType("string")).
			Return(&domain.Notification{ID: 2}, nil).Once()

		notified, err := svc.NotifyCriticalPatients(ctx, doctorID)

		require.NoError(t, err)
		assert.Equal(t, int64(2), notified)
		mockNotifier.AssertExpectations(t)
	})

	t.Run("no flagged patients", func(t *testing.T) {
		mockFlags := mocks.NewMockCriticalCaseRepository()
		mockUsers := mocks.NewMockUserRepository()
		mockNotifier := mocks.NewMockNotificationService()

		svc := services.NewCriticalCaseService(mockFlags, mockUsers, mockNotifier, nil)

		mockFlags.On("ListActiveByDoctor", ctx, doctorID).Return([]*domain.CriticalCaseFlag{}, nil)

		notified, err := svc.NotifyCriticalPatients(ctx, doctorID)

		require.NoError(t, err)
		assert.Equal(t, int64(0), notified)
		mockNotifier.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCriticalCaseService_Resolve(t *testing.T) {
	ctx := context.Background()
	patientID := uuid.New()

	t.Run("resolves active flag with reason prefix", func(t *testing.T) {
		mockFlags := mocks.NewMockCriticalCaseRepository()
		mockUsers := mocks.NewMockUserRepository()
		mockNotifier := mocks.NewMockNotificationService()

		svc := services.NewCriticalCaseService(mockFlags, mockUsers, mockNotifier, nil)

		active := &domain.CriticalCaseFlag{
			ID:        1,
			PatientID: patientID,
			Status:    domain.FlagActive,
			Reason:    domain.AutoFlagReason,
		}
		mockFlags.On("GetByID", ctx, int64(1)).Return(active, nil)
		mockFlags.On("Update", ctx, mock.MatchedBy(func(f *domain.CriticalCaseFlag) bool {
			return f.Status == domain.FlagResolved &&
				f.Reason == "Resolved: patient recovered" &&
				f.UnflaggedAt != nil
		})).Return(active, nil)

		_, err := svc.Resolve(ctx, 1, "patient recovered")

		require.NoError(t, err)
		mockFlags.AssertExpectations(t)
	})

	t.Run("already resolved", func(t *testing.T) {
		mockFlags := mocks.NewMockCriticalCaseRepository()
		mockUsers := mocks.NewMockUserRepository()
		mockNotifier := mocks.NewMockNotificationService()

		svc := services.NewCriticalCaseService(mockFlags, mockUsers, mockNotifier, nil)

		unflaggedAt := time.Now().UTC()
		resolved := &domain.CriticalCaseFlag{
			ID:          1,
			PatientID:   patientID,
			Status:      domain.FlagResolved,
			UnflaggedAt: &unflaggedAt,
		}
		mockFlags.On("GetByID", ctx, int64(1)).Return(resolved, nil)

		flag, err := svc.Resolve(ctx, 1, "again")

		assert.Nil(t, flag)
		assert.ErrorIs(t, err, apperrors.ErrFlagAlreadyResolved)
		mockFlags.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		mockFlags := mocks.NewMockCriticalCaseRepository()
		mockUsers := mocks.NewMockUserRepository()
		mockNotifier := mocks.NewMockNotificationService()

		svc := services.NewCriticalCaseService(mockFlags, mockUsers, mockNotifier, nil)

		mockFlags.On("GetByID", ctx, int64(404)).Return(nil, apperrors.ErrFlagNotFound)

		flag, err := svc.Resolve(ctx, 404, "whatever")

		assert.Nil(t, flag)
		assert.ErrorIs(t, err, apperrors.ErrFlagNotFound)
	})
}
