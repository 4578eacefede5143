package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/jdhadshhd/med-point/internal/core/errors"
)

const (
	MaxTitleLength       = 255
	MaxDescriptionLength = 5000
	MaxMessageLength     = 5000
)

// TicketStatus represents the possible states of a support ticket.
type TicketStatus string

const (
	TicketOpen       TicketStatus = "OPEN"
	TicketInProgress TicketStatus = "IN_PROGRESS"
	TicketResolved   TicketStatus = "RESOLVED"
	TicketClosed     TicketStatus = "CLOSED"
)

// ValidTicketStatus reports whether s is a known ticket status.
func ValidTicketStatus(s TicketStatus) bool {
	switch s {
	case TicketOpen, TicketInProgress, TicketResolved, TicketClosed:
		return true
	}
	return false
}

// TicketPriority represents the urgency of a ticket.
type TicketPriority string

const (
	PriorityLow    TicketPriority = "LOW"
	PriorityMedium TicketPriority = "MEDIUM"
	PriorityHigh   TicketPriority = "HIGH"
)

// ValidTicketPriority reports whether p is a known ticket priority.
func ValidTicketPriority(p TicketPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// SupportTicket is a help request opened by a patient or doctor.
type SupportTicket struct {
	ID          int64
	UserID      uuid.UUID
	Title       string
	Description string
	Priority    TicketPriority
	Status      TicketStatus
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// TicketMessage is one reply in a ticket's conversation thread.
type TicketMessage struct {
	ID        int64
	TicketID  int64
	SenderID  uuid.UUID
	Body      string
	CreatedAt time.Time
}

// TicketParams holds input for opening a ticket.
type TicketParams struct {
	UserID      uuid.UUID
	Title       string
	Description string
	Priority    TicketPriority
}

// NewTicket creates a valid ticket in the OPEN state.
func NewTicket(params TicketParams) (*SupportTicket, error) {
	if params.UserID == uuid.Nil {
		return nil, apperrors.ErrRequesterRequired
	}
	if params.Title == "" {
		return nil, apperrors.ErrTitleRequired
	}
	if len(params.Title) > MaxTitleLength {
		return nil, apperrors.ErrTitleTooLong
	}
	if len(params.Description) > MaxDescriptionLength {
		return nil, apperrors.ErrDescriptionTooLong
	}
	priority := params.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !ValidTicketPriority(priority) {
		return nil, apperrors.ErrInvalidPriority
	}

	return &SupportTicket{
		UserID:      params.UserID,
		Title:       params.Title,
		Description: params.Description,
		Priority:    priority,
		Status:      TicketOpen,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// SetStatus changes the ticket status, rejecting unknown values before
// any state is touched.
func (t *SupportTicket) SetStatus(status TicketStatus) error {
	if !ValidTicketStatus(status) {
		return apperrors.ErrInvalidTicketStatus
	}
	t.Status = status
	now := time.Now().UTC()
	t.UpdatedAt = &now
	return nil
}

// IsOwnedBy reports whether the given user opened this ticket.
func (t *SupportTicket) IsOwnedBy(userID uuid.UUID) bool {
	return t.UserID == userID
}

// NewTicketMessage creates a valid reply on a ticket.
func NewTicketMessage(ticketID int64, senderID uuid.UUID, body string) (*TicketMessage, error) {
	if ticketID <= 0 {
		return nil, apperrors.ErrTicketIDRequired
	}
	if senderID == uuid.Nil {
		return nil, apperrors.ErrSenderRequired
	}
	if body == "" {
		return nil, apperrors.ErrMessageRequired
	}
	if len(body) > MaxMessageLength {
		return nil, apperrors.ErrMessageTooLong
	}

	return &TicketMessage{
		TicketID:  ticketID,
		SenderID:  senderID,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}, nil
}
