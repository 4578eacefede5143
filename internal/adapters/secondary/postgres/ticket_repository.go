package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jdhadshhd/med-point/internal/core/domain"
	apperrors "github.com/jdhadshhd/med-point/internal/core/errors"
	"github.com/jdhadshhd/med-point/internal/core/ports"
)

type TicketRepository struct {
	pool *pgxpool.Pool
}

var _ ports.TicketRepository = (*TicketRepository)(nil)

func NewTicketRepository(pool *pgxpool.Pool) ports.TicketRepository {
	return &TicketRepository{pool: pool}
}

const ticketColumns = `id, user_id, title, description, priority, status, created_at, updated_at`

func (r *TicketRepository) Create(ctx context.Context, t *domain.SupportTicket) (*domain.SupportTicket, error) {
	const query = `
INSERT INTO support_tickets (user_id, title, description, priority, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + ticketColumns

	row := r.pool.QueryRow(ctx, query,
		pgtype.UUID{Bytes: t.UserID, Valid: true},
		t.Title,
		t.Description,
		string(t.Priority),
		string(t.Status),
		pgtype.Timestamptz{Time: t.CreatedAt, Valid: true},
	)
	return scanTicket(row)
}

func (r *TicketRepository) GetByID(ctx context.Context, id int64) (*domain.SupportTicket, error) {
	const query = `
SELECT ` + ticketColumns + `
FROM support_tickets
WHERE id = $1
`

	t, err := scanTicket(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *TicketRepository) Update(ctx context.Context, t *domain.SupportTicket) (*domain.SupportTicket, error) {
	const query = `
UPDATE support_tickets
SET status = $2, priority = $3, updated_at = NOW()
WHERE id = $1
RETURNING ` + ticketColumns

	updated, err := scanTicket(r.pool.QueryRow(ctx, query, t.ID, string(t.Status), string(t.Priority)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTicketNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (r *TicketRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.SupportTicket, error) {
	const query = `
SELECT ` + ticketColumns + `
FROM support_tickets
WHERE user_id = $1
ORDER BY created_at DESC
`

	rows, err := r.pool.Query(ctx, query, pgtype.UUID{Bytes: userID, Valid: true})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTickets(rows)
}

func (r *TicketRepository) ListAll(ctx context.Context) ([]*domain.SupportTicket, error) {
	const query = `
SELECT ` + ticketColumns + `
FROM support_tickets
ORDER BY created_at DESC
`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTickets(rows)
}

func (r *TicketRepository) AddMessage(ctx context.Context, m *domain.TicketMessage) (*domain.TicketMessage, error) {
	const query = `
INSERT INTO ticket_messages (ticket_id, sender_id, body, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id, ticket_id, sender_id, body, created_at
`

	row := r.pool.QueryRow(ctx, query,
		m.TicketID,
		pgtype.UUID{Bytes: m.SenderID, Valid: true},
		m.Body,
		pgtype.Timestamptz{Time: m.CreatedAt, Valid: true},
	)
	return scanTicketMessage(row)
}

func (r *TicketRepository) ListMessages(ctx context.Context, ticketID int64) ([]*domain.TicketMessage, error) {
	const query = `
SELECT id, ticket_id, sender_id, body, created_at
FROM ticket_messages
WHERE ticket_id = $1
ORDER BY created_at, id
`

	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []*domain.TicketMessage{}
	for rows.Next() {
		m, err := scanTicketMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *TicketRepository) CountByStatus(ctx context.Context, status domain.TicketStatus) (int64, error) {
	const query = `SELECT COUNT(*) FROM support_tickets WHERE status = $1`

	var count int64
	err := r.pool.QueryRow(ctx, query, string(status)).Scan(&count)
	return count, err
}

func scanTicket(row rowScanner) (*domain.SupportTicket, error) {
	var (
		t         domain.SupportTicket
		userID    pgtype.UUID
		priority  string
		status    string
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(&t.ID, &userID, &t.Title, &t.Description, &priority, &status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	t.UserID = userID.Bytes
	t.Priority = domain.TicketPriority(priority)
	t.Status = domain.TicketStatus(status)
	t.CreatedAt = createdAt.Time
	if updatedAt.Valid {
		ts := updatedAt.Time
		t.UpdatedAt = &ts
	}
	return &t, nil
}

func scanTicketMessage(row rowScanner) (*domain.TicketMessage, error) {
	var (
		m         domain.TicketMessage
		senderID  pgtype.UUID
		createdAt pgtype.Timestamptz
	)

	err := row.Scan(&m.ID, &m.TicketID, &senderID, &m.Body, &createdAt)
	if err != nil {
		return nil, err
	}

	m.SenderID = senderID.Bytes
	m.CreatedAt = createdAt.Time
	return &m, nil
}

func collectTickets(rows pgx.Rows) ([]*domain.SupportTicket, error) {
	tickets := []*domain.SupportTicket{}
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}
