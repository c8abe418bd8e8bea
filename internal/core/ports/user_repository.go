package ports

import (
	"context"

	"github.com/aarogyasaathi/medrecords-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create inserts a new user and returns it with its assigned ID.
	// A duplicate email yields domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
}

// DirectoryRepository exposes the user-search queries behind the doctor and
// patient directory views.
type DirectoryRepository interface {
	// SearchPatients matches patient emails case-insensitively on a partial
	// term, ordered by email. Each summary carries the number of records the
	// doctor has written about that patient, resolved in the same query.
	SearchPatients(ctx context.Context, doctorID int64, term string, limit int) ([]PatientSummary, error)
	// ListPatients returns the newest patients first, with the same
	// per-doctor record counts as SearchPatients.
	ListPatients(ctx context.Context, doctorID int64, limit int) ([]PatientSummary, error)
	// SearchDoctors matches doctor emails case-insensitively on a partial
	// term, ordered by email.
	SearchDoctors(ctx context.Context, term string, limit int) ([]domain.User, error)
	// DoctorsSeenByPatient returns the distinct doctors who have written at
	// least one record about the patient, ordered by email.
	DoctorsSeenByPatient(ctx context.Context, patientID int64) ([]domain.User, error)
}
