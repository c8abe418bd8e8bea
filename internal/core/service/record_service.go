package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aarogyasaathi/medrecords-api/internal/api/metrics"
	"github.com/aarogyasaathi/medrecords-api/internal/core/domain"
	"github.com/aarogyasaathi/medrecords-api/internal/core/ports"
)

// RecordService implements medical record use cases.
type RecordService struct {
	records ports.RecordRepository
	users   ports.UserRepository
	logger  zerolog.Logger
}

func NewRecordService(records ports.RecordRepository, users ports.UserRepository, logger zerolog.Logger) *RecordService {
	return &RecordService{records: records, users: users, logger: logger}
}

// Create writes a new record about the patient identified by email. The
// caller must already be authorised as a doctor; this method only checks
// that the target exists and actually is a patient.
func (s *RecordService) Create(ctx context.Context, input ports.CreateRecordInput) (*domain.MedicalRecord, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domain.ErrTitleRequired
	}

	patient, err := s.users.FindByEmail(ctx, normalizeEmail(input.PatientEmail))
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, domain.ErrPatientNotFound
		}
		return nil, err
	}
	if patient.Role != domain.RolePatient {
		return nil, domain.ErrNotAPatient
	}

	record := &domain.MedicalRecord{
		DoctorID:  input.DoctorID,
		PatientID: patient.ID,
		Title:     title,
		Notes:     strings.TrimSpace(input.Notes),
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.records.Create(ctx, record)
	if err != nil {
		s.logger.Error().Err(err).Int64("doctor_id", input.DoctorID).Msg("failed to create record")
		return nil, err
	}

	metrics.RecordsCreatedTotal.Inc()
	s.logger.Info().
		Int64("record_id", created.ID).
		Int64("doctor_id", created.DoctorID).
		Int64("patient_id", created.PatientID).
		Msg("record created")
	return created, nil
}

func (s *RecordService) ListForDoctor(ctx context.Context, doctorID int64) ([]domain.DoctorRecordView, error) {
	return s.records.ListByDoctor(ctx, doctorID)
}

func (s *RecordService) ListForPatient(ctx context.Context, patientID int64) ([]domain.PatientRecordView, error) {
	return s.records.ListByPatient(ctx, patientID)
}

// StatsFor summarises the caller's records: total count plus the number of
// distinct users on the other side of them.
func (s *RecordService) StatsFor(ctx context.Context, subjectID int64, role string) (*ports.DashboardStats, error) {
	switch role {
	case domain.RoleDoctor:
		records, err := s.records.ListByDoctor(ctx, subjectID)
		if err != nil {
			return nil, err
		}
		seen := make(map[int64]struct{}, len(records))
		for _, r := range records {
			seen[r.PatientID] = struct{}{}
		}
		return &ports.DashboardStats{TotalRecords: len(records), UniqueCounterparts: len(seen)}, nil

	case domain.RolePatient:
		records, err := s.records.ListByPatient(ctx, subjectID)
		if err != nil {
			return nil, err
		}
		seen := make(map[int64]struct{}, len(records))
		for _, r := range records {
			seen[r.DoctorID] = struct{}{}
		}
		return &ports.DashboardStats{TotalRecords: len(records), UniqueCounterparts: len(seen)}, nil

	default:
		return nil, domain.ErrInvalidRole
	}
}
