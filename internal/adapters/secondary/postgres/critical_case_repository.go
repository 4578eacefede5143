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

type CriticalCaseRepository struct {
	pool *pgxpool.Pool
}

var _ ports.CriticalCaseRepository = (*CriticalCaseRepository)(nil)

func NewCriticalCaseRepository(pool *pgxpool.Pool) ports.CriticalCaseRepository {
	return &CriticalCaseRepository{pool: pool}
}

const flagColumns = `id, patient_id, doctor_id, reason, auto, status, flagged_at, unflagged_at`

func (r *CriticalCaseRepository) Create(ctx context.Context, f *domain.CriticalCaseFlag) (*domain.CriticalCaseFlag, error) {
	const query = `
INSERT INTO critical_case_flags (patient_id, doctor_id, reason, auto, status, flagged_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + flagColumns

	doctorID := pgtype.UUID{Bytes: f.DoctorID, Valid: f.DoctorID != uuid.Nil}

	row := r.pool.QueryRow(ctx, query,
		pgtype.UUID{Bytes: f.PatientID, Valid: true},
		doctorID,
		f.Reason,
		f.Auto,
		string(f.Status),
		pgtype.Timestamptz{Time: f.FlaggedAt, Valid: true},
	)
	return scanFlag(row)
}

func (r *CriticalCaseRepository) GetByID(ctx context.Context, id int64) (*domain.CriticalCaseFlag, error) {
	const query = `
SELECT ` + flagColumns + `
FROM critical_case_flags
WHERE id = $1
`

	f, err := scanFlag(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFlagNotFound
		}
		return nil, err
	}
	return f, nil
}

func (r *CriticalCaseRepository) FindActiveByPatient(ctx context.Context, patientID uuid.UUID) (*domain.CriticalCaseFlag, error) {
	const query = `
SELECT ` + flagColumns + `
FROM critical_case_flags
WHERE patient_id = $1 AND status = 'FLAGGED'
ORDER BY flagged_at DESC
LIMIT 1
`

	f, err := scanFlag(r.pool.QueryRow(ctx, query, pgtype.UUID{Bytes: patientID, Valid: true}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFlagNotFound
		}
		return nil, err
	}
	return f, nil
}

func (r *CriticalCaseRepository) Update(ctx context.Context, f *domain.CriticalCaseFlag) (*domain.CriticalCaseFlag, error) {
	const query = `
UPDATE critical_case_flags
SET reason = $2, status = $3, unflagged_at = $4
WHERE id = $1
RETURNING ` + flagColumns

	var unflaggedAt pgtype.Timestamptz
	if f.UnflaggedAt != nil {
		unflaggedAt = pgtype.Timestamptz{Time: *f.UnflaggedAt, Valid: true}
	}

	updated, err := scanFlag(r.pool.QueryRow(ctx, query, f.ID, f.Reason, string(f.Status), unflaggedAt))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFlagNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (r *CriticalCaseRepository) ListActive(ctx context.Context) ([]*domain.CriticalCaseFlag, error) {
	const query = `
SELECT ` + flagColumns + `
FROM critical_case_flags
WHERE status = 'FLAGGED'
ORDER BY flagged_at DESC
`
	return r.list(ctx, query)
}

func (r *CriticalCaseRepository) ListActiveByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*domain.CriticalCaseFlag, error) {
	const query = `
SELECT ` + flagColumns + `
FROM critical_case_flags
WHERE status = 'FLAGGED' AND doctor_id = $1
ORDER BY flagged_at DESC
`
	return r.list(ctx, query, pgtype.UUID{Bytes: doctorID, Valid: true})
}

func (r *CriticalCaseRepository) list(ctx context.Context, query string, args ...any) ([]*domain.CriticalCaseFlag, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flags := []*domain.CriticalCaseFlag{}
	for rows.Next() {
		f, err := scanFlag(rows)
		if err != nil {
			return nil, err
		}
		flags = append(flags, f)
	}
	return flags, rows.Err()
}

func scanFlag(row rowScanner) (*domain.CriticalCaseFlag, error) {
	var (
		f           domain.CriticalCaseFlag
		patientID   pgtype.UUID
		doctorID    pgtype.UUID
		status      string
		flaggedAt   pgtype.Timestamptz
		unflaggedAt pgtype.Timestamptz
	)

	err := row.Scan(&f.ID, &patientID, &doctorID, &f.Reason, &f.Auto, &status, &flaggedAt, &unflaggedAt)
	if err != nil {
		return nil, err
	}

	f.PatientID = patientID.Bytes
	if doctorID.Valid {
		f.DoctorID = doctorID.Bytes
	}
	f.Status = domain.FlagStatus(status)
	f.FlaggedAt = flaggedAt.Time
	if unflaggedAt.Valid {
		t := unflaggedAt.Time
		f.UnflaggedAt = &t
	}
	return &f, nil
}
