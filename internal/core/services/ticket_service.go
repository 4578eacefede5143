package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jdhadshhd/med-point/internal/core/domain"
	apperrors "github.com/jdhadshhd/med-point/internal/core/errors"
	"github.com/jdhadshhd/med-point/internal/core/ports"
	"github.com/jdhadshhd/med-point/internal/infrastructure/metrics"
)

// TicketService implements support ticket workflows. Every state change
// fans out to the affected parties: new tickets and patient replies go to
// the admins, admin replies and status changes go to the ticket owner.
type TicketService struct {
	ticketRepo ports.TicketRepository
	notifier   ports.NotificationService
	publisher  ports.EventPublisher
	metrics    *metrics.Collector
}

var _ ports.TicketService = (*TicketService)(nil)

// NewTicketService creates a new ticket service. The metrics collector may
// be nil.
func NewTicketService(
	ticketRepo ports.TicketRepository,
	notifier ports.NotificationService,
	publisher ports.EventPublisher,
	collector *metrics.Collector,
) *TicketService {
	return &TicketService{
		ticketRepo: ticketRepo,
		notifier:   notifier,
		publisher:  publisher,
		metrics:    collector,
	}
}

// Create opens a new ticket and notifies every admin.
func (s *TicketService) Create(ctx context.Context, params ports.CreateTicketParams) (*domain.SupportTicket, error) {
	ticket, err := domain.NewTicket(domain.TicketParams{
		UserID:      params.UserID,
		Title:       params.Title,
		Description: params.Description,
		Priority:    params.Priority,
	})
	if err != nil {
		return nil, err
	}

	created, err := s.ticketRepo.Create(ctx, ticket)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.TicketsTotal.WithLabelValues(string(created.Priority)).Inc()
	}

	message := fmt.Sprintf("New support ticket: %s", created.Title)
	if _, err := s.notifier.RecordForRole(ctx, domain.RoleAdmin, domain.NotificationTicketNew, message); err != nil {
		return created, err
	}

	s.publisher.PublishToRole(domain.RoleAdmin, domain.TicketUpdatedEvent{
		TicketID: created.ID,
		Status:   string(created.Status),
		Message:  message,
	})

	return created, nil
}

// GetByID returns a single ticket.
func (s *TicketService) GetByID(ctx context.Context, ticketID int64) (*domain.SupportTicket, error) {
	return s.ticketRepo.GetByID(ctx, ticketID)
}

// ListForUser returns the tickets opened by a user, newest first.
func (s *TicketService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.SupportTicket, error) {
	return s.ticketRepo.ListByUser(ctx, userID)
}

// ListAll returns every ticket, newest first.
func (s *TicketService) ListAll(ctx context.Context) ([]*domain.SupportTicket, error) {
	return s.ticketRepo.ListAll(ctx)
}

// ListMessages returns the reply thread of a ticket, oldest first.
func (s *TicketService) ListMessages(ctx context.Context, ticketID int64) ([]*domain.TicketMessage, error) {
	if _, err := s.ticketRepo.GetByID(ctx, ticketID); err != nil {
		return nil, err
	}
	return s.ticketRepo.ListMessages(ctx, ticketID)
}

// AddReply appends a reply to a ticket's thread. An admin replying on
// someone else's ticket notifies the owner; any other reply is routed to
// the admins. Exactly one of the two paths runs.
func (s *TicketService) AddReply(ctx context.Context, params ports.AddReplyParams) (*domain.TicketMessage, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, params.TicketID)
	if err != nil {
		return nil, err
	}

	msg, err := domain.NewTicketMessage(params.TicketID, params.SenderID, params.Body)
	if err != nil {
		return nil, err
	}

	created, err := s.ticketRepo.AddMessage(ctx, msg)
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("New reply on ticket: %s", ticket.Title)
	event := domain.TicketUpdatedEvent{
		TicketID: ticket.ID,
		Status:   string(ticket.Status),
		Message:  message,
	}

	if params.SenderRole == domain.RoleAdmin && !ticket.IsOwnedBy(params.SenderID) {
		if _, err := s.notifier.Record(ctx, ticket.UserID, domain.NotificationTicketReply, message); err != nil {
			return created, err
		}
		s.publisher.PublishToUser(ticket.UserID, event)
	} else {
		if _, err := s.notifier.RecordForRole(ctx, domain.RoleAdmin, domain.NotificationTicketReply, message); err != nil {
			return created, err
		}
		s.publisher.PublishToRole(domain.RoleAdmin, event)
	}

	return created, nil
}

// UpdateStatus changes a ticket's status and notifies the owner.
func (s *TicketService) UpdateStatus(ctx context.Context, params ports.UpdateTicketStatusParams) (*domain.SupportTicket, error) {
	if !domain.ValidTicketStatus(params.Status) {
		return nil, apperrors.ErrInvalidTicketStatus
	}

	ticket, err := s.ticketRepo.GetByID(ctx, params.TicketID)
	if err != nil {
		return nil, err
	}

	if err := ticket.SetStatus(params.Status); err != nil {
		return nil, err
	}

	updated, err := s.ticketRepo.Update(ctx, ticket)
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Your ticket %q is now %s", updated.Title, updated.Status)
	if _, err := s.notifier.Record(ctx, updated.UserID, domain.NotificationTicketStatus, message); err != nil {
		return updated, err
	}

	s.publisher.PublishToUser(updated.UserID, domain.TicketUpdatedEvent{
		TicketID: updated.ID,
		Status:   string(updated.Status),
		Message:  message,
	})

	return updated, nil
}

// Counts returns per-status ticket totals.
func (s *TicketService) Counts(ctx context.Context) (*ports.TicketCounts, error) {
	counts := &ports.TicketCounts{}

	statuses := []struct {
		status domain.TicketStatus
		target *int64
	}{
		{domain.TicketOpen, &counts.Open},
		{domain.TicketInProgress, &counts.InProgress},
		{domain.TicketResolved, &counts.Resolved},
		{domain.TicketClosed, &counts.Closed},
	}

	for _, s2 := range statuses {
		n, err := s.ticketRepo.CountByStatus(ctx, s2.status)
		if err != nil {
			return nil, err
		}
		*s2.target = n
		counts.Total += n
	}

	return counts, nil
}
