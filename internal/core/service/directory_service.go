package service

import (
	"context"
	"strings"

	"github.com/aarogyasaathi/medrecords-api/internal/core/domain"
	"github.com/aarogyasaathi/medrecords-api/internal/core/ports"
)

const (
	searchLimit = 20
	browseLimit = 100
)

// DirectoryService implements counterpart lookup for both roles.
type DirectoryService struct {
	users     ports.UserRepository
	directory ports.DirectoryRepository
}

func NewDirectoryService(users ports.UserRepository, directory ports.DirectoryRepository) *DirectoryService {
	return &DirectoryService{users: users, directory: directory}
}

// SearchPatients resolves the doctor's patient directory. An empty query
// browses the newest patients; a non-empty query matches emails partially.
// The repository attaches each patient's record count for this doctor in
// the same query.
func (s *DirectoryService) SearchPatients(ctx context.Context, doctorID int64, query string) ([]ports.PatientSummary, error) {
	if query = strings.TrimSpace(query); query == "" {
		return s.directory.ListPatients(ctx, doctorID, browseLimit)
	}
	return s.directory.SearchPatients(ctx, doctorID, query, searchLimit)
}

// SearchDoctors resolves the patient's doctor directory. An empty query
// lists the doctors who have already treated this patient; a non-empty
// query matches doctor emails partially.
func (s *DirectoryService) SearchDoctors(ctx context.Context, patientID int64, query string) ([]domain.User, error) {
	if query = strings.TrimSpace(query); query == "" {
		return s.directory.DoctorsSeenByPatient(ctx, patientID)
	}
	return s.directory.SearchDoctors(ctx, query, searchLimit)
}

// Profile returns the account behind an authenticated session.
func (s *DirectoryService) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}
