package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aarogyasaathi/medrecords-api/internal/core/domain"
)

// RecordRepository implements ports.RecordRepository against the
// medical_records table.
type RecordRepository struct {
	pool *pgxpool.Pool
}

func NewRecordRepository(pool *pgxpool.Pool) *RecordRepository {
	return &RecordRepository{pool: pool}
}

func (r *RecordRepository) Create(ctx context.Context, record *domain.MedicalRecord) (*domain.MedicalRecord, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO medical_records (doctor_id, patient_id, title, notes, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, record.DoctorID, record.PatientID, record.Title, record.Notes, record.CreatedAt).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert record: %w", err)
	}

	created := *record
	created.ID = id
	return &created, nil
}

func (r *RecordRepository) ListByDoctor(ctx context.Context, doctorID int64) ([]domain.DoctorRecordView, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT mr.id, mr.title, mr.notes, mr.created_at, mr.patient_id, u.email
		FROM medical_records mr
		JOIN users u ON mr.patient_id = u.id
		WHERE mr.doctor_id = $1
		ORDER BY mr.created_at DESC
	`, doctorID)
	if err != nil {
		return nil, fmt.Errorf("list records by doctor: %w", err)
	}
	defer rows.Close()

	var records []domain.DoctorRecordView
	for rows.Next() {
		var v domain.DoctorRecordView
		if err := rows.Scan(&v.ID, &v.Title, &v.Notes, &v.CreatedAt, &v.PatientID, &v.PatientEmail); err != nil {
			return nil, fmt.Errorf("scan doctor record: %w", err)
		}
		records = append(records, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate doctor records: %w", err)
	}
	return records, nil
}

func (r *RecordRepository) ListByPatient(ctx context.Context, patientID int64) ([]domain.PatientRecordView, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT mr.id, mr.title, mr.notes, mr.created_at, mr.doctor_id, u.email
		FROM medical_records mr
		JOIN users u ON mr.doctor_id = u.id
		WHERE mr.patient_id = $1
		ORDER BY mr.created_at DESC
	`, patientID)
	if err != nil {
		return nil, fmt.Errorf("list records by patient: %w", err)
	}
	defer rows.Close()

	var records []domain.PatientRecordView
	for rows.Next() {
		var v domain.PatientRecordView
		if err := rows.Scan(&v.ID, &v.Title, &v.Notes, &v.CreatedAt, &v.DoctorID, &v.DoctorEmail); err != nil {
			return nil, fmt.Errorf("scan patient record: %w", err)
		}
		records = append(records, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate patient records: %w", err)
	}
	return records, nil
}
