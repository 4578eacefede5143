package http

import (
	"encoding/json"
	"io"
	"log/slog"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
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
	"github.com/jdhadshhd/med-point/internal/core/mocks"
	"github.com/jdhadshhd/med-point/internal/core/ports"
)

func newTicketRouter(svc *mocks.MockTicketService) (*chi.Mux, *auth.TokenManager) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	errorHandler := NewErrorHandler(logger)
	handler := NewTicketHandler(svc, errorHandler, logger)
	tokenManager := auth.NewTokenManager("test-secret", time.Hour)

	router := chi.NewRouter()
	router.Use(mw.JWTMiddleware(tokenManager))
	router.Route("/tickets", handler.RegisterRoutes)

	return router, tokenManager
}

func TestTicketHandler_CreateTicket(t *testing.T) {
	userID := uuid.New()
	svc := mocks.NewMockTicketService()
	svc.On("Create", mock.Anything, mock.MatchedBy(func(params ports.CreateTicketParams) bool {
		return params.UserID == userID &&
			params.Title == "Billing question" &&
			params.Priority == domain.PriorityHigh
	})).Return(&domain.SupportTicket{
		ID:        1,
		UserID:    userID,
		Title:     "Billing question",
		Priority:  domain.PriorityHigh,
		Status:    domain.TicketOpen,
		CreatedAt: time.Now().UTC(),
	}, nil)

	router, tm := newTicketRouter(svc)

	body := `{"title":"Billing question","description":"Charged twice","priority":"HIGH"}`
	req := httptest.NewRequest(stdhttp.MethodPost, "/tickets", strings.NewReader(body))
	req.Header.Set("Authorization", bearerToken(t, tm, userID, domain.RolePatient))
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)

	require.Equal(t, stdhttp.StatusCreated, recorder.Code)

	var response TicketDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, "OPEN", response.Status)
	assert.Equal(t, userID.String(), response.UserID)

	svc.AssertExpectations(t)
}

func TestTicketHandler_CreateTicketMissingTitle(t *testing.T) {
	svc := mocks.NewMockTicketService()
	router, tm := newTicketRouter(svc)

	body := `{"description":"no title","priority":"LOW"}`
	req := httptest.NewRequest(stdhttp.MethodPost, "/tickets", strings.NewReader(body))
	req.Header.Set("Authorization", bearerToken(t, tm, uuid.New(), domain.RolePatient))
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)

	require.Equal(t, stdhttp.StatusUnprocessableEntity, recorder.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTicketHandler_ListBranchesByRole(t *testing.T) {
	adminID := uuid.New()
	patientID := uuid.New()

	svc := mocks.NewMockTicketService()
	svc.On("ListAll", mock.Anything).Return([]*domain.SupportTicket{}, nil).Once()
	svc.On("ListForUser", mock.Anything, patientID).Return([]*domain.SupportTicket{}, nil).Once()

	router, tm := newTicketRouter(svc)

	req := httptest.NewRequest(stdhttp.MethodGet, "/tickets", nil)
	req.Header.Set("Authorization", bearerToken(t, tm, adminID, domain.RoleAdmin))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	require.Equal(t, stdhttp.StatusOK, recorder.Code)

	req = httptest.NewRequest(stdhttp.MethodGet, "/tickets", nil)
	req.Header.Set("Authorization", bearerToken(t, tm, patientID, domain.RolePatient))
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	require.Equal(t, stdhttp.StatusOK, recorder.Code)

	svc.AssertExpectations(t)
}

func TestTicketHandler_GetForeignTicketForbidden(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	svc := mocks.NewMockTicketService()
	svc.On("GetByID", mock.Anything, int64(5)).Return(&domain.SupportTicket{
		ID:        5,
		UserID:    owner,
		Title:     "Private",
		Priority:  domain.PriorityMedium,
		Status:    domain.TicketOpen,
		CreatedAt: time.Now().UTC(),
	}, nil)

	router, tm := newTicketRouter(svc)

	req := httptest.NewRequest(stdhttp.MethodGet, "/tickets/5", nil)
	req.Header.Set("Authorization", bearerToken(t, tm, other, domain.RolePatient))
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)

	require.Equal(t, stdhttp.StatusForbidden, recorder.Code)
}

func TestTicketHandler_UpdateStatusRequiresAdmin(t *testing.T) {
	svc := mocks.NewMockTicketService()
	router, tm := newTicketRouter(svc)

	body := `{"status":"RESOLVED"}`
	req := httptest.NewRequest(stdhttp.MethodPatch, "/tickets/5/status", strings.NewReader(body))
	req.Header.Set("Authorization", bearerToken(t, tm, uuid.New(), domain.RolePatient))
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)

	require.Equal(t, stdhttp.StatusForbidden, recorder.Code)
	svc.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
}

func TestTicketHandler_UpdateStatusAsAdmin(t *testing.T) {
	adminID := uuid.New()
	owner := uuid.New()

	svc := mocks.NewMockTicketService()
	svc.On("UpdateStatus", mock.Anything, ports.UpdateTicketStatusParams{
		TicketID: 5,
		Status:   domain.TicketResolved,
		ActorID:  adminID,
	}).Return(&domain.SupportTicket{
		ID:        5,
		UserID:    owner,
		Title:     "Billing question",
		Priority:  domain.PriorityMedium,
		Status:    domain.TicketResolved,
		CreatedAt: time.Now().UTC(),
	}, nil)

	router, tm := newTicketRouter(svc)

	body := `{"status":"RESOLVED"}`
	req := httptest.NewRequest(stdhttp.MethodPatch, "/tickets/5/status", strings.NewReader(body))
	req.Header.Set("Authorization", bearerToken(t, tm, adminID, domain.RoleAdmin))
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)

	require.Equal(t, stdhttp.StatusOK, recorder.Code)

	var response TicketDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, "RESOLVED", response.Status)

	svc.AssertExpectations(t)
}

func TestTicketHandler_AddReply(t *testing.T) {
	owner := uuid.New()

	svc := mocks.NewMockTicketService()
	svc.On("GetByID", mock.Anything, int64(9)).Return(&domain.SupportTicket{
		ID:        9,
		UserID:    owner,
		Title:     "Login issue",
		Priority:  domain.PriorityMedium,
		Status:    domain.TicketOpen,
		CreatedAt: time.Now().UTC(),
	}, nil)
	svc.On("AddReply", mock.Anything, ports.AddReplyParams{
		TicketID:   9,
		SenderID:   owner,
		SenderRole: domain.RolePatient,
		Body:       "Any update?",
	}).Return(&domain.TicketMessage{
		ID:        1,
		TicketID:  9,
		SenderID:  owner,
		Body:      "Any update?",
		CreatedAt: time.Now().UTC(),
	}, nil)

	router, tm := newTicketRouter(svc)

	body := `{"body":"Any update?"}`
	req := httptest.NewRequest(stdhttp.MethodPost, "/tickets/9/messages", strings.NewReader(body))
	req.Header.Set("Authorization", bearerToken(t, tm, owner, domain.RolePatient))
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, req)

	require.Equal(t, stdhttp.StatusCreated, recorder.Code)

	var response TicketMessageDTO
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, int64(9), response.TicketID)

	svc.AssertExpectations(t)
}
