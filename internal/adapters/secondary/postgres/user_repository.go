package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jdhadshhd/med-point/internal/core/domain"
	apperrors "github.com/jdhadshhd/med-point/internal/core/errors"
	"github.com/jdhadshhd/med-point/internal/core/ports"
)

// uniqueViolation is the Postgres error code for unique constraint violations
const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(pool *pgxpool.Pool) ports.UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	const query = `
INSERT INTO users (id, full_name, email, hashed_password, role, is_active, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, full_name, email, hashed_password, role, is_active, created_at
`

	row := r.pool.QueryRow(ctx, query,
		pgtype.UUID{Bytes: user.ID, Valid: true},
		user.FullName,
		user.Email,
		user.HashedPassword,
		string(user.Role),
		user.IsActive,
		pgtype.Timestamptz{Time: user.CreatedAt, Valid: true},
	)

	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, apperrors.ErrUserExists
		}
		return nil, err
	}
	return created, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	const query = `
SELECT id, full_name, email, hashed_password, role, is_active, created_at
FROM users
WHERE id = $1
`

	user, err := scanUser(r.pool.QueryRow(ctx, query, pgtype.UUID{Bytes: id, Valid: true}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
SELECT id, full_name, email, hashed_password, role, is_active, created_at
FROM users
WHERE email = $1
`

	user, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) ListIDsByRole(ctx context.Context, role domain.Role) ([]uuid.UUID, error) {
	const query = `
SELECT id
FROM users
WHERE role = $1 AND is_active = TRUE
ORDER BY created_at
`

	rows, err := r.pool.Query(ctx, query, string(role))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id pgtype.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id.Bytes)
	}
	return ids, rows.Err()
}

// rowScanner covers pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		id        pgtype.UUID
		user      domain.User
		role      string
		createdAt pgtype.Timestamptz
	)

	err := row.Scan(&id, &user.FullName, &user.Email, &user.HashedPassword, &role, &user.IsActive, &createdAt)
	if err != nil {
		return nil, err
	}

	user.ID = id.Bytes
	user.Role = domain.Role(role)
	user.CreatedAt = createdAt.Time
	return &user, nil
}
