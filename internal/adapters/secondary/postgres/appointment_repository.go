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

type AppointmentRepository struct {
	pool *pgxpool.Pool
}

var _ ports.AppointmentRepository = (*AppointmentRepository)(nil)

func NewAppointmentRepository(pool *pgxpool.Pool) ports.AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

const appointmentColumns = `id, patient_id, doctor_id, scheduled_at, notes, status, created_at, updated_at`

func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	const query = `
INSERT INTO appointments (patient_id, doctor_id, scheduled_at, notes, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + appointmentColumns

	row := r.pool.QueryRow(ctx, query,
		pgtype.UUID{Bytes: a.PatientID, Valid: true},
		pgtype.UUID{Bytes: a.DoctorID, Valid: true},
		pgtype.Timestamptz{Time: a.ScheduledAt, Valid: true},
		a.Notes,
		string(a.Status),
		pgtype.Timestamptz{Time: a.CreatedAt, Valid: true},
	)
	return scanAppointment(row)
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	const query = `
SELECT ` + appointmentColumns + `
FROM appointments
WHERE id = $1
`

	a, err := scanAppointment(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAppointmentNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *AppointmentRepository) Update(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	const query = `
UPDATE appointments
SET status = $2, notes = $3, scheduled_at = $4, updated_at = NOW()
WHERE id = $1
RETURNING ` + appointmentColumns

	updated, err := scanAppointment(r.pool.QueryRow(ctx, query,
		a.ID,
		string(a.Status),
		a.Notes,
		pgtype.Timestamptz{Time: a.ScheduledAt, Valid: true},
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAppointmentNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (r *AppointmentRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*domain.Appointment, error) {
	const query = `
SELECT ` + appointmentColumns + `
FROM appointments
WHERE patient_id = $1
ORDER BY scheduled_at DESC
`
	return r.list(ctx, query, pgtype.UUID{Bytes: patientID, Valid: true})
}

func (r *AppointmentRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*domain.Appointment, error) {
	const query = `
SELECT ` + appointmentColumns + `
FROM appointments
WHERE doctor_id = $1
ORDER BY scheduled_at DESC
`
	return r.list(ctx, query, pgtype.UUID{Bytes: doctorID, Valid: true})
}

func (r *AppointmentRepository) ListTodayByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*domain.Appointment, error) {
	const query = `
SELECT ` + appointmentColumns + `
FROM appointments
WHERE doctor_id = $1
  AND scheduled_at >= date_trunc('day', NOW())
  AND scheduled_at < date_trunc('day', NOW()) + INTERVAL '1 day'
ORDER BY scheduled_at
`
	return r.list(ctx, query, pgtype.UUID{Bytes: doctorID, Valid: true})
}

func (r *AppointmentRepository) CountByStatus(ctx context.Context, status domain.AppointmentStatus) (int64, error) {
	const query = `SELECT COUNT(*) FROM appointments WHERE status = $1`

	var count int64
	err := r.pool.QueryRow(ctx, query, string(status)).Scan(&count)
	return count, err
}

func (r *AppointmentRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Appointment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	appointments := []*domain.Appointment{}
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, a)
	}
	return appointments, rows.Err()
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var (
		a           domain.Appointment
		patientID   pgtype.UUID
		doctorID    pgtype.UUID
		scheduledAt pgtype.Timestamptz
		status      string
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)

	err := row.Scan(&a.ID, &patientID, &doctorID, &scheduledAt, &a.Notes, &status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	a.PatientID = patientID.Bytes
	a.DoctorID = doctorID.Bytes
	a.ScheduledAt = scheduledAt.Time
	a.Status = domain.AppointmentStatus(status)
	a.CreatedAt = createdAt.Time
	if updatedAt.Valid {
		t := updatedAt.Time
		a.UpdatedAt = &t
	}
	return &a, nil
}
