package ports

import (
	"context"

	"github.com/aarogyasaathi/medrecords-api/internal/core/domain"
)

// CreateRecordInput carries all data needed to create a medical record.
// The patient is identified by email, not ID: doctors know addresses, not
// database keys.
type CreateRecordInput struct {
	DoctorID     int64
	PatientEmail string
	Title        string
	Notes        string
}

// DashboardStats summarises a user's records for the overview view.
type DashboardStats struct {
	TotalRecords int `json:"total_records"`
	// UniqueCounterparts counts distinct patients for a doctor, distinct
	// doctors for a patient.
	UniqueCounterparts int `json:"unique_counterparts"`
}

// RecordService defines use-case operations for medical records.
type RecordService interface {
	Create(ctx context.Context, input CreateRecordInput) (*domain.MedicalRecord, error)
	ListForDoctor(ctx context.Context, doctorID int64) ([]domain.DoctorRecordView, error)
	ListForPatient(ctx context.Context, patientID int64) ([]domain.PatientRecordView, error)
	StatsFor(ctx context.Context, subjectID int64, role string) (*DashboardStats, error)
}
