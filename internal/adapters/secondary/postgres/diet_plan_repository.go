package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jdhadshhd/med-point/internal/core/domain"
	apperrors "github.com/jdhadshhd/med-point/internal/core/errors"
	"github.com/jdhadshhd/med-point/internal/core/ports"
)

type DietPlanRepository struct {
	pool *pgxpool.Pool
}

var _ ports.DietPlanRepository = (*DietPlanRepository)(nil)

func NewDietPlanRepository(pool *pgxpool.Pool) ports.DietPlanRepository {
	return &DietPlanRepository{pool: pool}
}

// Create retires the patient's current active plan and inserts the new one
// in the same transaction, so exactly one plan stays active.
func (r *DietPlanRepository) Create(ctx context.Context, p *domain.DietPlan) (*domain.DietPlan, error) {
	items, err := json.Marshal(p.Items)
	if err != nil {
		return nil, err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const deactivate = `
UPDATE diet_plans SET is_active = FALSE
WHERE patient_id = $1 AND is_active
`
	if _, err := tx.Exec(ctx, deactivate, pgtype.UUID{Bytes: p.PatientID, Valid: true}); err != nil {
		return nil, err
	}

	const insert = `
INSERT INTO diet_plans (patient_id, doctor_id, title, description, designed_by, items, is_active, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, patient_id, doctor_id, title, description, designed_by, items, is_active, created_at
`
	row := tx.QueryRow(ctx, insert,
		pgtype.UUID{Bytes: p.PatientID, Valid: true},
		pgtype.UUID{Bytes: p.DoctorID, Valid: true},
		p.Title,
		p.Description,
		p.DesignedBy,
		items,
		p.IsActive,
		pgtype.Timestamptz{Time: p.CreatedAt, Valid: true},
	)
	created, err := scanDietPlan(row)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

func (r *DietPlanRepository) FindActiveByPatient(ctx context.Context, patientID uuid.UUID) (*domain.DietPlan, error) {
	const query = `
SELECT id, patient_id, doctor_id, title, description, designed_by, items, is_active, created_at
FROM diet_plans
WHERE patient_id = $1 AND is_active
ORDER BY created_at DESC
LIMIT 1
`

	p, err := scanDietPlan(r.pool.QueryRow(ctx, query, pgtype.UUID{Bytes: patientID, Valid: true}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDietPlanNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *DietPlanRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*domain.DietPlan, error) {
	const query = `
SELECT id, patient_id, doctor_id, title, description, designed_by, items, is_active, created_at
FROM diet_plans
WHERE patient_id = $1
ORDER BY created_at DESC, id DESC
`

	rows, err := r.pool.Query(ctx, query, pgtype.UUID{Bytes: patientID, Valid: true})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := []*domain.DietPlan{}
	for rows.Next() {
		p, err := scanDietPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

func scanDietPlan(row rowScanner) (*domain.DietPlan, error) {
	var (
		p         domain.DietPlan
		patientID pgtype.UUID
		doctorID  pgtype.UUID
		items     []byte
		createdAt pgtype.Timestamptz
	)

	err := row.Scan(&p.ID, &patientID, &doctorID, &p.Title, &p.Description, &p.DesignedBy, &items, &p.IsActive, &createdAt)
	if err != nil {
		return nil, err
	}

	p.PatientID = patientID.Bytes
	p.DoctorID = doctorID.Bytes
	p.CreatedAt = createdAt.Time
	if len(items) > 0 {
		if err := json.Unmarshal(items, &p.Items); err != nil {
			return nil, err
		}
	}
	return &p, nil
}
