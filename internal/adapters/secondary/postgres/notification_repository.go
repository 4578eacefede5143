package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jdhadshhd/med-point/internal/core/domain"
	apperrors "github.com/jdhadshhd/med-point/internal/core/errors"
	"github.com/jdhadshhd/med-point/internal/core/ports"
)

// defaultNotificationLimit caps unbounded list queries
const defaultNotificationLimit = 50

type NotificationRepository struct {
	pool *pgxpool.Pool
}

var _ ports.NotificationRepository = (*NotificationRepository)(nil)

func NewNotificationRepository(pool *pgxpool.Pool) ports.NotificationRepository {
	return &NotificationRepository{pool: pool}
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	const query = `
INSERT INTO notifications (user_id, type, message, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id, user_id, type, message, created_at, read_at
`

	row := r.pool.QueryRow(ctx, query,
		pgtype.UUID{Bytes: n.UserID, Valid: true},
		string(n.Type),
		n.Message,
		pgtype.Timestamptz{Time: n.CreatedAt, Valid: true},
	)
	return scanNotification(row)
}

// CreateBatch inserts all rows in one transaction so a role fan-out is
// all-or-nothing.
func (r *NotificationRepository) CreateBatch(ctx context.Context, ns []*domain.Notification) ([]*domain.Notification, error) {
	if len(ns) == 0 {
		return []*domain.Notification{}, nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const query = `
INSERT INTO notifications (user_id, type, message, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id, user_id, type, message, created_at, read_at
`

	created := make([]*domain.Notification, 0, len(ns))
	for _, n := range ns {
		row := tx.QueryRow(ctx, query,
			pgtype.UUID{Bytes: n.UserID, Valid: true},
			string(n.Type),
			n.Message,
			pgtype.Timestamptz{Time: n.CreatedAt, Valid: true},
		)
		inserted, err := scanNotification(row)
		if err != nil {
			return nil, err
		}
		created = append(created, inserted)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

func (r *NotificationRepository) GetByID(ctx context.Context, id int64) (*domain.Notification, error) {
	const query = `
SELECT id, user_id, type, message, created_at, read_at
FROM notifications
WHERE id = $1
`

	n, err := scanNotification(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotificationNotFound
		}
		return nil, err
	}
	return n, nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Notification, error) {
	if limit <= 0 {
		limit = defaultNotificationLimit
	}

	const query = `
SELECT id, user_id, type, message, created_at, read_at
FROM notifications
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2
`

	rows, err := r.pool.Query(ctx, query, pgtype.UUID{Bytes: userID, Valid: true}, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectNotifications(rows)
}

func (r *NotificationRepository) ListUnreadByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error) {
	const query = `
SELECT id, user_id, type, message, created_at, read_at
FROM notifications
WHERE user_id = $1 AND read_at IS NULL
ORDER BY created_at DESC, id DESC
`

	rows, err := r.pool.Query(ctx, query, pgtype.UUID{Bytes: userID, Valid: true})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectNotifications(rows)
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	const query = `
SELECT COUNT(*)
FROM notifications
WHERE user_id = $1 AND read_at IS NULL
`

	var count int64
	err := r.pool.QueryRow(ctx, query, pgtype.UUID{Bytes: userID, Valid: true}).Scan(&count)
	return count, err
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id int64, readAt time.Time) (*domain.Notification, error) {
	const query = `
UPDATE notifications
SET read_at = $2
WHERE id = $1 AND read_at IS NULL
RETURNING id, user_id, type, message, created_at, read_at
`

	n, err := scanNotification(r.pool.QueryRow(ctx, query, id, pgtype.Timestamptz{Time: readAt, Valid: true}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Either missing or already read; let the caller decide by re-fetching
			return r.GetByID(ctx, id)
		}
		return nil, err
	}
	return n, nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID, readAt time.Time) (int64, error) {
	const query = `
UPDATE notifications
SET read_at = $2
WHERE user_id = $1 AND read_at IS NULL
`

	tag, err := r.pool.Exec(ctx, query,
		pgtype.UUID{Bytes: userID, Valid: true},
		pgtype.Timestamptz{Time: readAt, Valid: true},
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanNotification(row rowScanner) (*domain.Notification, error) {
	var (
		n         domain.Notification
		userID    pgtype.UUID
		notifType string
		createdAt pgtype.Timestamptz
		readAt    pgtype.Timestamptz
	)

	err := row.Scan(&n.ID, &userID, &notifType, &n.Message, &createdAt, &readAt)
	if err != nil {
		return nil, err
	}

	n.UserID = userID.Bytes
	n.Type = domain.NotificationType(notifType)
	n.CreatedAt = createdAt.Time
	if readAt.Valid {
		t := readAt.Time
		n.ReadAt = &t
	}
	return &n, nil
}

func collectNotifications(rows pgx.Rows) ([]*domain.Notification, error) {
	notifications := []*domain.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}
