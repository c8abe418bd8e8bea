package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aarogyasaathi/medrecords-api/internal/core/domain"
	"github.com/aarogyasaathi/medrecords-api/internal/core/ports"
)

// UserRepository implements ports.UserRepository and
// ports.DirectoryRepository against the users table.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, user.Email, user.PasswordHash, user.Role, user.CreatedAt).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	created.ID = id
	return &created, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, role, created_at
		FROM users
		WHERE email = $1
	`, email)

	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, role, created_at
		FROM users
		WHERE id = $1
	`, id)

	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &u, nil
}

// SearchPatients resolves matching patients and the per-doctor record count
// in a single grouped query.
func (r *UserRepository) SearchPatients(ctx context.Context, doctorID int64, term string, limit int) ([]ports.PatientSummary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id, u.email, u.created_at, COUNT(mr.id)
		FROM users u
		LEFT JOIN medical_records mr ON mr.patient_id = u.id AND mr.doctor_id = $1
		WHERE u.role = 'patient' AND u.email ILIKE $2
		GROUP BY u.id, u.email, u.created_at
		ORDER BY u.email
		LIMIT $3
	`, doctorID, "%"+term+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("search patients: %w", err)
	}
	return scanPatientSummaries(rows)
}

func (r *UserRepository) ListPatients(ctx context.Context, doctorID int64, limit int) ([]ports.PatientSummary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id, u.email, u.created_at, COUNT(mr.id)
		FROM users u
		LEFT JOIN medical_records mr ON mr.patient_id = u.id AND mr.doctor_id = $1
		WHERE u.role = 'patient'
		GROUP BY u.id, u.email, u.created_at
		ORDER BY u.created_at DESC
		LIMIT $2
	`, doctorID, limit)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	return scanPatientSummaries(rows)
}

func (r *UserRepository) SearchDoctors(ctx context.Context, term string, limit int) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, email, role, created_at
		FROM users
		WHERE role = 'doctor' AND email ILIKE $1
		ORDER BY email
		LIMIT $2
	`, "%"+term+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("search doctors: %w", err)
	}
	return scanUsers(rows)
}

func (r *UserRepository) DoctorsSeenByPatient(ctx context.Context, patientID int64) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT u.id, u.email, u.role, u.created_at
		FROM users u
		JOIN medical_records mr ON u.id = mr.doctor_id
		WHERE mr.patient_id = $1 AND u.role = 'doctor'
		ORDER BY u.email
	`, patientID)
	if err != nil {
		return nil, fmt.Errorf("doctors seen by patient: %w", err)
	}
	return scanUsers(rows)
}

func scanPatientSummaries(rows pgx.Rows) ([]ports.PatientSummary, error) {
	defer rows.Close()

	var summaries []ports.PatientSummary
	for rows.Next() {
		var s ports.PatientSummary
		if err := rows.Scan(&s.ID, &s.Email, &s.CreatedAt, &s.RecordCount); err != nil {
			return nil, fmt.Errorf("scan patient summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate patient summaries: %w", err)
	}
	return summaries, nil
}

func scanUsers(rows pgx.Rows) ([]domain.User, error) {
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}
