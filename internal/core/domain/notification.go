package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/jdhadshhd/med-point/internal/core/errors"
)

// NotificationType classifies the domain action that produced a notification.
type NotificationType string

const (
	NotificationAppointmentNew       NotificationType = "APPOINTMENT_NEW"
	NotificationAppointmentStatus    NotificationType = "APPOINTMENT_STATUS"
	NotificationAppointmentCancelled NotificationType = "APPOINTMENT_CANCELLED"
	NotificationCriticalCase         NotificationType = "CRITICAL_CASE"
	NotificationTicketNew            NotificationType = "TICKET_NEW"
	NotificationTicketStatus         NotificationType = "TICKET_STATUS"
	NotificationTicketReply          NotificationType = "TICKET_REPLY"
	NotificationUrgent               NotificationType = "URGENT"
)

// ValidNotificationType reports whether t is a known notification type.
func ValidNotificationType(t NotificationType) bool {
	switch t {
	case NotificationAppointmentNew, NotificationAppointmentStatus,
		NotificationAppointmentCancelled, NotificationCriticalCase,
		NotificationTicketNew, NotificationTicketStatus, NotificationTicketReply,
		NotificationUrgent:
		return true
	}
	return false
}

// Notification is the durable record of a domain event addressed to one user.
// ReadAt stays nil until the recipient marks it read; once set it is never
// cleared. Rows are never mutated except ReadAt and never deleted here.
type Notification struct {
	ID        int64
	UserID    uuid.UUID
	Type      NotificationType
	Message   string
	CreatedAt time.Time
	ReadAt    *time.Time
}

// NewNotification creates a valid unread notification.
func NewNotification(userID uuid.UUID, notifType NotificationType, message string) (*Notification, error) {
	if userID == uuid.Nil {
		return nil, apperrors.ErrRecipientRequired
	}
	if !ValidNotificationType(notifType) {
		return nil, apperrors.ErrInvalidNotificationType
	}
	if message == "" {
		return nil, apperrors.ErrMessageRequired
	}

	return &Notification{
		UserID:    userID,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// IsRead reports whether the notification has been marked read.
func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}

// MarkRead stamps ReadAt. Re-marking an already-read notification is a no-op.
func (n *Notification) MarkRead() {
	if n.ReadAt != nil {
		return
	}
	now := time.Now().UTC()
	n.ReadAt = &now
}
