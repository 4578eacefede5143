package http

import (
	"encoding/json"
	"io"
	"log/slog"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	mw "github.com/jdhadshhd/med-point/internal/adapters/primary/http/middleware"
	"github.com/jdhadshhd/med-point/internal/auth"
	"github.com/jdhadshhd/med-point/internal/core/domain"
	apperrors "github.com/jdhadshhd/med-point/internal/core/errors"
	"github.com/jdhadshhd/med-point/internal/core/mocks"
)

func newNotificationRouter(svc *mocks.MockNotificationService) (*chi.Mux, *auth.TokenManager) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	errorHandler := NewErrorHandler(logger)
	handler := NewNotificationHandler(svc, errorHandler, logger)
	tokenManager := auth.NewTokenManager("test-secret", time.Hour)

	router := chi.NewRouter()
	router.Use(mw.JWTMiddleware(tokenManager))
	router.Route("/notifications", handler.RegisterRoutes)

	return router, tokenManager
}

func bearerToken(t *testing.T, tm *auth.TokenManager, userID uuid.UUID, role domain.Role) string {
	t.Helper()
	token, err := tm.GenerateToken(&domain.User{
		ID:       userID,
		FullName: "Test User",
		Email:    "test@example.com",
		Role:     role,
	})
	require.NoError(t, err)
	return "Bearer " + token
}

func TestNotificationHandler_List(t *testing.T) {
	userID := uuid.New()
	readAt := time.Now().UTC()
	svc := mocks.NewMockNotificationService()
	svc.On("ListForUser", mock.Anything, userID, 50).Return([]*domain.Notification{
		{ID: 2, UserID: userID, Type: domain.NotificationTicketReply, Message: "New reply on ticket: Billing", CreatedAt: time.Now().UTC()},
		{ID: 1, UserID: userID, Type: domain.NotificationAppointmentNew, Message: "New appointment", CreatedAt: time.Now().UTC().Add(-time.Hour), ReadAt: &readAt},
	}, nil)

	router, tm := newNotificationRouter(svc)

	req := httptest.NewRequest(stdhttp.MethodGet, "/notifications", nil)
	req.Header.Set("Authorization", bearerToken(t, tm, userID, domain.RolePatient))
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)

	require.Equal(t, stdhttp.StatusOK, recorder.Code)

	var response ListResponse[NotificationDTO]
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	require.Equal(t, 2, response.Count)
	assert.Equal(t, int64(2), response.Data[0].ID)
	assert.Nil(t, response.Data[0].ReadAt)
	assert.NotNil(t, response.Data[1].ReadAt)

	svc.AssertExpectations(t)
}

func TestNotificationHandler_ListClampsLimit(t *testing.T) {
	userID := uuid.New()
	svc := mocks.NewMockNotificationService()
	svc.On("ListForUser", mock.Anything, userID, 200).Return([]*domain.Notification{}, nil)

	router, tm := newNotificationRouter(svc)

	req := httptest.NewRequest(stdhttp.MethodGet, "/notifications?limit=9999", nil)
	req.Header.Set("Authorization", bearerToken(t, tm, userID, domain.RolePatient))
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)

	require.Equal(t, stdhttp.StatusOK, recorder.Code)
	svc.AssertExpectations(t)
}

func TestNotificationHandler_UnreadCount(t *testing.T) {
	userID := uuid.New()
	svc := mocks.NewMockNotificationService()
	svc.On("CountUnread", mock.Anything, userID).Return(int64(3), nil)

	router, tm := newNotificationRouter(svc)

	req := httptest.NewRequest(stdhttp.MethodGet, "/notifications/unread/count", nil)
	req.Header.Set("Authorization", bearerToken(t, tm, userID, domain.RoleDoctor))
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)

	require.Equal(t, stdhttp.StatusOK, recorder.Code)

	var response UnreadCountResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, int64(3), response.Count)
}

func TestNotificationHandler_MarkRead(t *testing.T) {
	userID := uuid.New()
	readAt := time.Now().UTC()
	svc := mocks.NewMockNotificationService()
	svc.On("MarkRead", mock.Anything, int64(7), userID).Return(&domain.Notification{
		ID:        7,
		UserID:    userID,
		Type:      domain.NotificationCriticalCase,
		Message:   "Critical case alert",
		CreatedAt: time.Now().UTC(),
		ReadAt:    &readAt,
	}, nil)

	router, tm := newNotificationRouter(svc)

	req := httptest.NewRequest(stdhttp.MethodPatch, "/notifications/7/read", nil)
	req.Header.Set("Authorization", bearerToken(t, tm, userID, domain.RoleDoctor))
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)

	require.Equal(t, stdhttp.StatusOK, recorder.Code)

	var response NotificationDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, int64(7), response.ID)
	assert.NotNil(t, response.ReadAt)
}

func TestNotificationHandler_MarkReadForeignNotification(t *testing.T) {
	userID := uuid.New()
	svc := mocks.NewMockNotificationService()
	svc.On("MarkRead", mock.Anything, int64(7), userID).Return(nil, apperrors.ErrForbidden)

	router, tm := newNotificationRouter(svc)

	req := httptest.NewRequest(stdhttp.MethodPatch, "/notifications/7/read", nil)
	req.Header.Set("Authorization", bearerToken(t, tm, userID, domain.RolePatient))
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)

	require.Equal(t, stdhttp.StatusForbidden, recorder.Code)
}

func TestNotificationHandler_MarkReadInvalidID(t *testing.T) {
	svc := mocks.NewMockNotificationService()
	router, tm := newNotificationRouter(svc)

	req := httptest.NewRequest(stdhttp.MethodPatch, "/notifications/abc/read", nil)
	req.Header.Set("Authorization", bearerToken(t, tm, uuid.New(), domain.RolePatient))
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)

	require.Equal(t, stdhttp.StatusUnprocessableEntity, recorder.Code)
	svc.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything, mock.Anything)
}

func TestNotificationHandler_MarkAllRead(t *testing.T) {
	userID := uuid.New()
	svc := mocks.NewMockNotificationService()
	svc.On("MarkAllRead", mock.Anything, userID).Return(int64(4), nil)

	router, tm := newNotificationRouter(svc)

	req := httptest.NewRequest(stdhttp.MethodPost, "/notifications/read-all", nil)
	req.Header.Set("Authorization", bearerToken(t, tm, userID, domain.RolePatient))
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)

	require.Equal(t, stdhttp.StatusOK, recorder.Code)

	var response MarkAllReadResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, int64(4), response.Updated)
}

func TestNotificationHandler_Unauthorized(t *testing.T) {
	svc := mocks.NewMockNotificationService()
	router, _ := newNotificationRouter(svc)

	req := httptest.NewRequest(stdhttp.MethodGet, "/notifications", nil)
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)

	require.Equal(t, stdhttp.StatusUnauthorized, recorder.Code)
}
