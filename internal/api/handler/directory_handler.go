package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aarogyasaathi/medrecords-api/internal/core/domain"
	"github.com/aarogyasaathi/medrecords-api/internal/core/ports"
)

// DirectoryHandler serves the counterpart directories and the caller's
// profile.
type DirectoryHandler struct {
	directory ports.DirectoryService
	records   ports.RecordService
}

func NewDirectoryHandler(directory ports.DirectoryService, records ports.RecordService) *DirectoryHandler {
	return &DirectoryHandler{directory: directory, records: records}
}

type userItem struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

type listPatientsResponse struct {
	Patients []ports.PatientSummary `json:"patients"`
	Total    int                    `json:"total"`
}

type listDoctorsResponse struct {
	Doctors []userItem `json:"doctors"`
	Total   int        `json:"total"`
}

type meResponse struct {
	User  *domain.User          `json:"user"`
	Stats *ports.DashboardStats `json:"stats"`
}

// Patients handles GET /v1/patients: doctors browse or search patients.
//
// @Summary      Search patients
// @Tags         directory
// @Produce      json
// @Param        q  query     string  false  "Partial email to match; empty lists recent patients"
// @Success      200  {object}  listPatientsResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/patients [get]
func (h *DirectoryHandler) Patients(c echo.Context) error {
	doctorID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	patients, err := h.directory.SearchPatients(c.Request().Context(), doctorID, c.QueryParam("q"))
	if err != nil {
		return err
	}
	if patients == nil {
		patients = []ports.PatientSummary{}
	}
	return c.JSON(http.StatusOK, listPatientsResponse{Patients: patients, Total: len(patients)})
}

// Doctors handles GET /v1/doctors: patients browse the doctors they have
// seen, or search all doctors.
//
// @Summary      Search doctors
// @Tags         directory
// @Produce      json
// @Param        q  query     string  false  "Partial email to match; empty lists doctors already seen"
// @Success      200  {object}  listDoctorsResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/doctors [get]
func (h *DirectoryHandler) Doctors(c echo.Context) error {
	patientID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	doctors, err := h.directory.SearchDoctors(c.Request().Context(), patientID, c.QueryParam("q"))
	if err != nil {
		return err
	}

	items := make([]userItem, 0, len(doctors))
	for _, d := range doctors {
		items = append(items, userItem{
			ID:        d.ID,
			Email:     d.Email,
			Role:      d.Role,
			CreatedAt: d.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}
	return c.JSON(http.StatusOK, listDoctorsResponse{Doctors: items, Total: len(items)})
}

// Me handles GET /v1/me: the caller's profile plus dashboard stats.
//
// @Summary      Current user profile and stats
// @Tags         directory
// @Produce      json
// @Success      200  {object}  meResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/me [get]
func (h *DirectoryHandler) Me(c echo.Context) error {
	subjectID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.directory.Profile(c.Request().Context(), subjectID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// The account was deleted out from under a live session.
			return echo.NewHTTPError(http.StatusUnauthorized, "account no longer exists")
		}
		return err
	}

	stats, err := h.records.StatsFor(c.Request().Context(), subjectID, role)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, meResponse{User: user, Stats: stats})
}
