package ports

import (
	"context"
	"time"

	"github.com/aarogyasaathi/medrecords-api/internal/core/domain"
)

// PatientSummary is a directory entry as shown to a doctor: the patient
// plus how many records this doctor has already written about them.
type PatientSummary struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
	RecordCount int64     `json:"record_count"`
}

// DirectoryService defines the counterpart-lookup operations: doctors
// browse patients, patients browse doctors.
type DirectoryService interface {
	// SearchPatients returns patients matching query; an empty query lists
	// the most recently registered patients.
	SearchPatients(ctx context.Context, doctorID int64, query string) ([]PatientSummary, error)
	// SearchDoctors returns doctors matching query; an empty query lists
	// the doctors this patient has already seen.
	SearchDoctors(ctx context.Context, patientID int64, query string) ([]domain.User, error)
	// Profile returns the user behind an authenticated session.
	Profile(ctx context.Context, userID int64) (*domain.User, error)
}
