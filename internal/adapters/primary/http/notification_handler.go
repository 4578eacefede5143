package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jdhadshhd/med-point/internal/adapters/primary/validation"
	"github.com/jdhadshhd/med-point/internal/core/domain"
	"github.com/jdhadshhd/med-point/internal/core/ports"
)

const (
	defaultNotificationsLimit = 50
	maxNotificationsLimit     = 200
)

// NotificationHandler handles HTTP requests for the notification inbox
type NotificationHandler struct {
	notificationService ports.NotificationService
	errorHandler        *ErrorHandler
	logger              *slog.Logger
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(
	notificationService ports.NotificationService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		errorHandler:        errorHandler,
		logger:              logger.With("handler", "notification"),
	}
}

// RegisterRoutes sets up the routing for all notification endpoints.
func (h *NotificationHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleListNotifications)
	r.Get("/unread", h.HandleListUnread)
	r.Get("/unread/count", h.HandleCountUnread)
	r.Post("/read-all", h.HandleMarkAllRead)
	r.Patch("/{notificationID}/read", h.HandleMarkRead)
}

// NotificationDTO defines the JSON response for notifications.
type NotificationDTO struct {
	ID        int64   `json:"id"`
	Type      string  `json:"type"`
	Message   string  `json:"message"`
	CreatedAt string  `json:"createdAt"`
	ReadAt    *string `json:"readAt"`
}

func toNotificationDTO(n *domain.Notification) NotificationDTO {
	var readAt *string
	if n.ReadAt != nil {
		value := n.ReadAt.Format(time.RFC3339)
		readAt = &value
	}

	return NotificationDTO{
		ID:        n.ID,
		Type:      string(n.Type),
		Message:   n.Message,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
		ReadAt:    readAt,
	}
}

func toNotificationDTOs(notifications []*domain.Notification) []NotificationDTO {
	response := make([]NotificationDTO, 0, len(notifications))
	for _, n := range notifications {
		response = append(response, toNotificationDTO(n))
	}
	return response
}

// HandleListNotifications handles GET /notifications
func (h *NotificationHandler) HandleListNotifications(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	limit := validation.ParseLimitQueryParam(r, defaultNotificationsLimit, maxNotificationsLimit)

	notifications, err := h.notificationService.ListForUser(r.Context(), claims.UserID, limit)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, toNotificationDTOs(notifications))
}

// HandleListUnread handles GET /notifications/unread
func (h *NotificationHandler) HandleListUnread(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	notifications, err := h.notificationService.ListUnreadForUser(r.Context(), claims.UserID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, toNotificationDTOs(notifications))
}

// UnreadCountResponse is the JSON response for the unread badge count.
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

// HandleCountUnread handles GET /notifications/unread/count
func (h *NotificationHandler) HandleCountUnread(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	count, err := h.notificationService.CountUnread(r.Context(), claims.UserID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, UnreadCountResponse{Count: count})
}

// HandleMarkRead handles PATCH /notifications/{notificationID}/read
func (h *NotificationHandler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	notificationID, err := parseIDParam(r, "notificationID")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	notification, err := h.notificationService.MarkRead(r.Context(), notificationID, claims.UserID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, toNotificationDTO(notification))
}

// MarkAllReadResponse reports how many notifications were marked read.
type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

// HandleMarkAllRead handles POST /notifications/read-all
func (h *NotificationHandler) HandleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	claims, ok := getClaims(w, r)
	if !ok {
		return
	}

	updated, err := h.notificationService.MarkAllRead(r.Context(), claims.UserID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("notifications marked read",
		"user_id", claims.UserID,
		"updated", updated,
	)

	WriteJSON(w, http.StatusOK, MarkAllReadResponse{Updated: updated})
}
