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

type RecordRepository struct {
	pool *pgxpool.Pool
}

var _ ports.RecordRepository = (*RecordRepository)(nil)

func NewRecordRepository(pool *pgxpool.Pool) ports.RecordRepository {
	return &RecordRepository{pool: pool}
}

func (r *RecordRepository) CreateRecord(ctx context.Context, rec *domain.MedicalRecord) (*domain.MedicalRecord, error) {
	const query = `
INSERT INTO medical_records (patient_id, doctor_id, notes, muac_value, muac_status, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, patient_id, doctor_id, notes, muac_value, muac_status, created_at
`

	var muacValue pgtype.Float8
	var muacStatus pgtype.Text
	if rec.MUACValue != nil {
		muacValue = pgtype.Float8{Float64: *rec.MUACValue, Valid: true}
	}
	if rec.MUACStatus != nil {
		muacStatus = pgtype.Text{String: string(*rec.MUACStatus), Valid: true}
	}

	row := r.pool.QueryRow(ctx, query,
		pgtype.UUID{Bytes: rec.PatientID, Valid: true},
		pgtype.UUID{Bytes: rec.DoctorID, Valid: true},
		rec.Notes,
		muacValue,
		muacStatus,
		pgtype.Timestamptz{Time: rec.CreatedAt, Valid: true},
	)
	return scanRecord(row)
}

func (r *RecordRepository) ListRecordsByPatient(ctx context.Context, patientID uuid.UUID) ([]*domain.MedicalRecord, error) {
	const query = `
SELECT id, patient_id, doctor_id, notes, muac_value, muac_status, created_at
FROM medical_records
WHERE patient_id = $1
ORDER BY created_at DESC
`
	return r.listRecords(ctx, query, pgtype.UUID{Bytes: patientID, Valid: true})
}

func (r *RecordRepository) ListRecordsByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*domain.MedicalRecord, error) {
	const query = `
SELECT id, patient_id, doctor_id, notes, muac_value, muac_status, created_at
FROM medical_records
WHERE doctor_id = $1
ORDER BY created_at DESC
`
	return r.listRecords(ctx, query, pgtype.UUID{Bytes: doctorID, Valid: true})
}

func (r *RecordRepository) CreateMeasurement(ctx context.Context, m *domain.HealthMeasurement) (*domain.HealthMeasurement, error) {
	const query = `
INSERT INTO health_measurements (patient_id, weight, height, muac_value, muac_status, bmi, notes, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, patient_id, weight, height, muac_value, muac_status, bmi, notes, created_at
`

	row := r.pool.QueryRow(ctx, query,
		pgtype.UUID{Bytes: m.PatientID, Valid: true},
		m.Weight,
		m.Height,
		m.MUACValue,
		string(m.MUACStatus),
		m.BMI,
		m.Notes,
		pgtype.Timestamptz{Time: m.CreatedAt, Valid: true},
	)
	return scanMeasurement(row)
}

func (r *RecordRepository) LatestMeasurement(ctx context.Context, patientID uuid.UUID) (*domain.HealthMeasurement, error) {
	const query = `
SELECT id, patient_id, weight, height, muac_value, muac_status, bmi, notes, created_at
FROM health_measurements
WHERE patient_id = $1
ORDER BY created_at DESC, id DESC
LIMIT 1
`

	m, err := scanMeasurement(r.pool.QueryRow(ctx, query, pgtype.UUID{Bytes: patientID, Valid: true}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRecordNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *RecordRepository) MeasurementHistory(ctx context.Context, patientID uuid.UUID) ([]*domain.HealthMeasurement, error) {
	const query = `
SELECT id, patient_id, weight, height, muac_value, muac_status, bmi, notes, created_at
FROM health_measurements
WHERE patient_id = $1
ORDER BY created_at DESC, id DESC
`

	rows, err := r.pool.Query(ctx, query, pgtype.UUID{Bytes: patientID, Valid: true})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	measurements := []*domain.HealthMeasurement{}
	for rows.Next() {
		m, err := scanMeasurement(rows)
		if err != nil {
			return nil, err
		}
		measurements = append(measurements, m)
	}
	return measurements, rows.Err()
}

func (r *RecordRepository) listRecords(ctx context.Context, query string, args ...any) ([]*domain.MedicalRecord, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*domain.MedicalRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanRecord(row rowScanner) (*domain.MedicalRecord, error) {
	var (
		rec        domain.MedicalRecord
		patientID  pgtype.UUID
		doctorID   pgtype.UUID
		muacValue  pgtype.Float8
		muacStatus pgtype.Text
		createdAt  pgtype.Timestamptz
	)

	err := row.Scan(&rec.ID, &patientID, &doctorID, &rec.Notes, &muacValue, &muacStatus, &createdAt)
	if err != nil {
		return nil, err
	}

	rec.PatientID = patientID.Bytes
	rec.DoctorID = doctorID.Bytes
	rec.CreatedAt = createdAt.Time
	if muacValue.Valid {
		v := muacValue.Float64
		rec.MUACValue = &v
	}
	if muacStatus.Valid {
		s := domain.MUACStatus(muacStatus.String)
		rec.MUACStatus = &s
	}
	return &rec, nil
}

func scanMeasurement(row rowScanner) (*domain.HealthMeasurement, error) {
	var (
		m          domain.HealthMeasurement
		patientID  pgtype.UUID
		muacStatus string
		createdAt  pgtype.Timestamptz
	)

	err := row.Scan(&m.ID, &patientID, &m.Weight, &m.Height, &m.MUACValue, &muacStatus, &m.BMI, &m.Notes, &createdAt)
	if err != nil {
		return nil, err
	}

	m.PatientID = patientID.Bytes
	m.MUACStatus = domain.MUACStatus(muacStatus)
	m.CreatedAt = createdAt.Time
	return &m, nil
}
