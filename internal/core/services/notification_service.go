package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jdhadshhd/med-point/internal/core/domain"
	apperrors "github.com/jdhadshhd/med-point/internal/core/errors"
	"github.com/jdhadshhd/med-point/internal/core/ports"
	"github.com/jdhadshhd/med-point/internal/infrastructure/metrics"
)

// NotificationService is the durable notification store. Every recorded
// notification is persisted first and then pushed over the realtime relay;
// the row is the source of truth, the push is best effort.
type NotificationService struct {
	notifRepo ports.NotificationRepository
	userRepo  ports.UserRepository
	publisher ports.EventPublisher
	metrics   *metrics.Collector
}

var _ ports.NotificationService = (*NotificationService)(nil)

// NewNotificationService creates a new notification service. The metrics
// collector may be nil.
func NewNotificationService(
	notifRepo ports.NotificationRepository,
	userRepo ports.UserRepository,
	publisher ports.EventPublisher,
	collector *metrics.Collector,
) *NotificationService {
	return &NotificationService{
		notifRepo: notifRepo,
		userRepo:  userRepo,
		publisher: publisher,
		metrics:   collector,
	}
}

// Record persists a notification for a single user and pushes it to the
// user's active sessions. If no session is connected the push is silently
// dropped; the persisted row remains visible on the next list call.
func (s *NotificationService) Record(ctx context.Context, userID uuid.UUID, notifType domain.NotificationType, message string) (*domain.Notification, error) {
	n, err := domain.NewNotification(userID, notifType, message)
	if err != nil {
		return nil, err
	}

	created, err := s.notifRepo.Create(ctx, n)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.NotificationsRecorded.WithLabelValues(string(notifType)).Inc()
	}

	s.publisher.PublishToUser(userID, domain.NotificationEvent{
		Type:    created.Type,
		Message: created.Message,
	})

	return created, nil
}

// RecordForRole persists one notification per user currently holding the
// role and pushes each to its recipient. The recipient set is resolved at
// call time; users gaining the role afterwards receive nothing.
func (s *NotificationService) RecordForRole(ctx context.Context, role domain.Role, notifType domain.NotificationType, message string) ([]*domain.Notification, error) {
	if !domain.ValidRole(role) {
		return nil, apperrors.ErrRecipientRequired
	}

	userIDs, err := s.userRepo.ListIDsByRole(ctx, role)
	if err != nil {
		return nil, err
	}
	if len(userIDs) == 0 {
		return []*domain.Notification{}, nil
	}

	batch := make([]*domain.Notification, 0, len(userIDs))
	for _, userID := range userIDs {
		n, err := domain.NewNotification(userID, notifType, message)
		if err != nil {
			return nil, err
		}
		batch = append(batch, n)
	}

	created, err := s.notifRepo.CreateBatch(ctx, batch)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.NotificationsRecorded.WithLabelValues(string(notifType)).Add(float64(len(created)))
	}

	for _, n := range created {
		s.publisher.PublishToUser(n.UserID, domain.NotificationEvent{
			Type:    n.Type,
			Message: n.Message,
		})
	}

	return created, nil
}

// ListForUser returns the user's notifications, newest first.
func (s *NotificationService) ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Notification, error) {
	return s.notifRepo.ListByUser(ctx, userID, limit)
}

// ListUnreadForUser returns the user's unread notifications, newest first.
func (s *NotificationService) ListUnreadForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error) {
	return s.notifRepo.ListUnreadByUser(ctx, userID)
}

// CountUnread returns the number of unread notifications for the user.
func (s *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

// MarkRead stamps a notification as read. Marking an already-read
// notification is a no-op that returns the row unchanged. A user may only
// mark their own notifications.
func (s *NotificationService) MarkRead(ctx context.Context, id int64, userID uuid.UUID) (*domain.Notification, error) {
	n, err := s.notifRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if n.UserID != userID {
		return nil, apperrors.ErrForbidden
	}

	if n.IsRead() {
		return n, nil
	}

	return s.notifRepo.MarkRead(ctx, id, time.Now().UTC())
}

// MarkAllRead stamps every unread notification for the user and returns
// the number of rows affected. A second call immediately after returns 0.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifRepo.MarkAllRead(ctx, userID, time.Now().UTC())
}
