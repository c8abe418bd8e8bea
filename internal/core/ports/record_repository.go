package ports

import (
	"context"

	"github.com/aarogyasaathi/medrecords-api/internal/core/domain"
)

// RecordRepository defines persistence operations for medical records.
type RecordRepository interface {
	// Create inserts a new record and returns it with its assigned ID.
	Create(ctx context.Context, record *domain.MedicalRecord) (*domain.MedicalRecord, error)
	// ListByDoctor returns records authored by the doctor, newest first,
	// joined with each patient's email.
	ListByDoctor(ctx context.Context, doctorID int64) ([]domain.DoctorRecordView, error)
	// ListByPatient returns records about the patient, newest first, joined
	// with each authoring doctor's email.
	ListByPatient(ctx context.Context, patientID int64) ([]domain.PatientRecordView, error)
}
