package services_test

import (
	"context"
	"strings"
	"testing"

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

func TestTicketService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("persists OPEN and notifies admins", func(t *testing.T) {
		mockRepo := mocks.NewMockTicketRepository()
		mockNotifier := mocks.NewMockNotificationService()
		mockPublisher := mocks.NewMockEventPublisher()

		svc := services.NewTicketService(mockRepo, mockNotifier, mockPublisher, nil)

		mockRepo.On("Create", ctx, mock.MatchedBy(func(tk *domain.SupportTicket) bool {
			return tk.Status == domain.TicketOpen && tk.UserID == userID
		})).Return(&domain.SupportTicket{
			ID:       1,
			UserID:   userID,
			Title:    "App crashes on login",
			Priority: domain.PriorityHigh,
			Status:   domain.TicketOpen,
		}, nil)

		mockNotifier.On("RecordForRole", ctx, domain.RoleAdmin, domain.NotificationTicketNew, mock.MatchedBy(func(msg string) bool {
			return strings.Contains(msg, "App crashes on login")
		})).Return([]*domain.Notification{}, nil)

		mockPublisher.On("PublishToRole", domain.RoleAdmin, mock.AnythingOfType("domain.TicketUpdatedEvent")).Return()

		ticket, err := svc.Create(ctx, ports.CreateTicketParams{
			UserID:      userID,
			Title:       "App crashes on login",
			Description: "Crash every time",
			Priority:    domain.PriorityHigh,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.TicketOpen, ticket.Status)

		mockRepo.AssertExpectations(t)
		mockNotifier.AssertExpectations(t)
		mockPublisher.AssertExpectations(t)
	})

	t.Run("defaults priority to medium", func(t *testing.T) {
		mockRepo := mocks.NewMockTicketRepository()
		mockNotifier := mocks.NewMockNotificationService()
		mockPublisher := mocks.NewMockEventPublisher()

		svc := services.NewTicketService(mockRepo, mockNotifier, mockPublisher, nil)

		mockRepo.On("Create", ctx, mock.MatchedBy(func(tk *domain.SupportTicket) bool {
			return tk.Priority == domain.PriorityMedium
		})).Return(&domain.SupportTicket{ID: 2, UserID: userID, Title: "Question", Priority: domain.PriorityMedium, Status: domain.TicketOpen}, nil)
		mockNotifier.On("RecordForRole", ctx, domain.RoleAdmin, domain.NotificationTicketNew, mock.AnythingOfType("string")).
			Return([]*domain.Notification{}, nil)
		mockPublisher.On("PublishToRole", domain.RoleAdmin, mock.Anything).Return()

		_, err := svc.Create(ctx, ports.CreateTicketParams{UserID: userID, Title: "Question"})

		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing title", func(t *testing.T) {
		mockRepo := mocks.NewMockTicketRepository()
		mockNotifier := mocks.NewMockNotificationService()
		mockPublisher := mocks.NewMockEventPublisher()

		svc := services.NewTicketService(mockRepo, mockNotifier, mockPublisher, nil)

		ticket, err := svc.Create(ctx, ports.CreateTicketParams{UserID: userID})

		assert.Nil(t, ticket)
		assert.ErrorIs(t, err, apperrors.ErrTitleRequired)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestTicketService_AddReply(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	adminID := uuid.New()

	ticket := func() *domain.SupportTicket {
		return &domain.SupportTicket{
			ID:     7,
			UserID: ownerID,
			Title:  "Billing question",
			Status: domain.TicketInProgress,
		}
	}

	t.Run("admin reply notifies owner only", func(t *testing.T) {
		mockRepo := mocks.NewMockTicketRepository()
		mockNotifier := mocks.NewMockNotificationService()
		mockPublisher := mocks.NewMockEventPublisher()

		svc := services.NewTicketService(mockRepo, mockNotifier, mockPublisher, nil)

		mockRepo.On("GetByID", ctx, int64(7)).Return(ticket(), nil)
		mockRepo.On("AddMessage", ctx, mock.AnythingOfType("*domain.TicketMessage")).
			Return(&domain.TicketMessage{ID: 1, TicketID: 7, SenderID: adminID, Body: "We are on it"}, nil)

		mockNotifier.On("Record", ctx, ownerID, domain.NotificationTicketReply, mock.AnythingOfType("string")).
			Return(&domain.Notification{ID: 1}, nil)
		mockPublisher.On("PublishToUser", ownerID, mock.MatchedBy(func(ev domain.RealtimeEvent) bool {
			return ev.EventName() == "ticket:updated"
		})).Return()

		msg, err := svc.AddReply(ctx, ports.AddReplyParams{
			TicketID:   7,
			SenderID:   adminID,
			SenderRole: domain.RoleAdmin,
			Body:       "We are on it",
		})

		require.NoError(t, err)
		assert.Equal(t, int64(1), msg.ID)

		mockNotifier.AssertNotCalled(t, "RecordForRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mockNotifier.AssertExpectations(t)
		mockPublisher.AssertExpectations(t)
	})

	t.Run("owner reply notifies admins only", func(t *testing.T) {
		mockRepo := mocks.NewMockTicketRepository()
		mockNotifier := mocks.NewMockNotificationService()
		mockPublisher := mocks.NewMockEventPublisher()

		svc := services.NewTicketService(mockRepo, mockNotifier, mockPublisher, nil)

		mockRepo.On("GetByID", ctx, int64(7)).Return(ticket(), nil)
		mockRepo.On("AddMessage", ctx, mock.AnythingOfType("*domain.TicketMessage")).
			Return(&domain.TicketMessage{ID: 2, TicketID: 7, SenderID: ownerID, Body: "Any update?"}, nil)

		mockNotifier.On("RecordForRole", ctx, domain.RoleAdmin, domain.NotificationTicketReply, mock.AnythingOfType("string")).
			Return([]*domain.Notification{}, nil)
		mockPublisher.On("PublishToRole", domain.RoleAdmin, mock.Anything).Return()

		_, err := svc.AddReply(ctx, ports.AddReplyParams{
			TicketID:   7,
			SenderID:   ownerID,
			SenderRole: domain.RolePatient,
			Body:       "Any update?",
		})

		require.NoError(t, err)
		mockNotifier.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mockNotifier.AssertExpectations(t)
	})

	t.Run("admin replying on own ticket routes to admins", func(t *testing.T) {
		mockRepo := mocks.NewMockTicketRepository()
		mockNotifier := mocks.NewMockNotificationService()
		mockPublisher := mocks.NewMockEventPublisher()

		svc := services.NewTicketService(mockRepo, mockNotifier, mockPublisher, nil)

		own := ticket()
		own.UserID = adminID
		mockRepo.On("GetByID", ctx, int64(7)).Return(own, nil)
		mockRepo.On("AddMessage", ctx, mock.Anything).
			Return(&domain.TicketMessage{ID: 3, TicketID: 7, SenderID: adminID, Body: "note"}, nil)

		mockNotifier.On("RecordForRole", ctx, domain.RoleAdmin, domain.NotificationTicketReply, mock.AnythingOfType("string")).
			Return([]*domain.Notification{}, nil)
		mockPublisher.On("PublishToRole", domain.RoleAdmin, mock.Anything).Return()

		_, err := svc.AddReply(ctx, ports.AddReplyParams{
			TicketID:   7,
			SenderID:   adminID,
			SenderRole: domain.RoleAdmin,
			Body:       "note",
		})

		require.NoError(t, err)
		mockNotifier.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ticket not found", func(t *testing.T) {
		mockRepo := mocks.NewMockTicketRepository()
		mockNotifier := mocks.NewMockNotificationService()
		mockPublisher := mocks.NewMockEventPublisher()

		svc := services.NewTicketService(mockRepo, mockNotifier, mockPublisher, nil)

		mockRepo.On("GetByID", ctx, int64(404)).Return(nil, apperrors.ErrTicketNotFound)

		msg, err := svc.AddReply(ctx, ports.AddReplyParams{
			TicketID:   404,
			SenderID:   ownerID,
			SenderRole: domain.RolePatient,
			Body:       "hello?",
		})

		assert.Nil(t, msg)
		assert.ErrorIs(t, err, apperrors.ErrTicketNotFound)
	})
}

func TestTicketService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	adminID := uuid.New()

	t.Run("notifies owner of new status", func(t *testing.T) {
		mockRepo := mocks.NewMockTicketRepository()
		mockNotifier := mocks.NewMockNotificationService()
		mockPublisher := mocks.NewMockEventPublisher()

		svc := services.NewTicketService(mockRepo, mockNotifier, mockPublisher, nil)

		mockRepo.On("GetByID", ctx, int64(7)).Return(&domain.SupportTicket{
			ID: 7, UserID: ownerID, Title: "Billing question", Status: domain.TicketOpen,
		}, nil)
		mockRepo.On("Update", ctx, mock.MatchedBy(func(tk *domain.SupportTicket) bool {
			return tk.Status == domain.TicketResolved
		})).Return(&domain.SupportTicket{
			ID: 7, UserID: ownerID, Title: "Billing question", Status: domain.TicketResolved,
		}, nil)

		mockNotifier.On("Record", ctx, ownerID, domain.NotificationTicketStatus, mock.MatchedBy(func(msg string) bool {
			return strings.Contains(msg, "RESOLVED")
		})).Return(&domain.Notification{ID: 1}, nil)
		mockPublisher.On("PublishToUser", ownerID, domain.TicketUpdatedEvent{
			TicketID: 7,
			Status:   "RESOLVED",
			Message:  `Your ticket "Billing question" is now RESOLVED`,
		}).Return()

		updated, err := svc.UpdateStatus(ctx, ports.UpdateTicketStatusParams{
			TicketID: 7,
			Status:   domain.TicketResolved,
			ActorID:  adminID,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.TicketResolved, updated.Status)
		mockNotifier.AssertExpectations(t)
		mockPublisher.AssertExpectations(t)
	})

	t.Run("rejects unknown status before touching storage", func(t *testing.T) {
		mockRepo := mocks.NewMockTicketRepository()
		mockNotifier := mocks.NewMockNotificationService()
		mockPublisher := mocks.NewMockEventPublisher()

		svc := services.NewTicketService(mockRepo, mockNotifier, mockPublisher, nil)

		updated, err := svc.UpdateStatus(ctx, ports.UpdateTicketStatusParams{
			TicketID: 7,
			Status:   domain.TicketStatus("ARCHIVED"),
			ActorID:  adminID,
		})

		assert.Nil(t, updated)
		assert.ErrorIs(t, err, apperrors.ErrInvalidTicketStatus)
		mockRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestTicketService_Counts(t *testing.T) {
	ctx := context.Background()

	mockRepo := mocks.NewMockTicketRepository()
	mockNotifier := mocks.NewMockNotificationService()
	mockPublisher := mocks.NewMockEventPublisher()

	svc := services.NewTicketService(mockRepo, mockNotifier, mockPublisher, nil)

	mockRepo.On("CountByStatus", ctx, domain.TicketOpen).Return(int64(3), nil)
	mockRepo.On("CountByStatus", ctx, domain.TicketInProgress).Return(int64(2), nil)
	mockRepo.On("CountByStatus", ctx, domain.TicketResolved).Return(int64(4), nil)
	mockRepo.On("CountByStatus", ctx, domain.TicketClosed).Return(int64(1), nil)

	counts, err := svc.Counts(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(10), counts.Total)
	assert.Equal(t, int64(3), counts.Open)
	assert.Equal(t, int64(2), counts.InProgress)
	assert.Equal(t, int64(4), counts.Resolved)
	assert.Equal(t, int64(1), counts.Closed)
}
