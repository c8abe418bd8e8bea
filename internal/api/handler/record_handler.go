package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aarogyasaathi/medrecords-api/internal/core/domain"
	"github.com/aarogyasaathi/medrecords-api/internal/core/ports"
)

// RecordHandler handles HTTP requests for medical record operations.
type RecordHandler struct {
	service ports.RecordService
}

func NewRecordHandler(service ports.RecordService) *RecordHandler {
	return &RecordHandler{service: service}
}

// Create handles POST /v1/records: a doctor writes a record about a
// patient identified by email.
//
// @Summary      Create a medical record
// @Tags         records
// @Accept       json
// @Produce      json
// @Param        body  body      createRecordRequest  true  "Record details"
// @Success      201   {object}  recordResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/records [post]
func (h *RecordHandler) Create(c echo.Context) error {
	doctorID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createRecordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	record, err := h.service.Create(c.Request().Context(), ports.CreateRecordInput{
		DoctorID:     doctorID,
		PatientEmail: req.PatientEmail,
		Title:        req.Title,
		Notes:        req.Notes,
	})
	if err != nil {
		if errors.Is(err, domain.ErrPatientNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		}
		if errors.Is(err, domain.ErrNotAPatient) || errors.Is(err, domain.ErrTitleRequired) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.JSON(http.StatusCreated, recordResponse{
		ID:        record.ID,
		DoctorID:  record.DoctorID,
		PatientID: record.PatientID,
		Title:     record.Title,
		Notes:     record.Notes,
		CreatedAt: record.CreatedAt,
	})
}

// List handles GET /v1/records: a doctor sees records they authored, a
// patient sees records about them.
//
// @Summary      List the caller's medical records
// @Tags         records
// @Produce      json
// @Success      200  {object}  listRecordsResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/records [get]
func (h *RecordHandler) List(c echo.Context) error {
	subjectID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	switch role {
	case domain.RoleDoctor:
		records, err := h.service.ListForDoctor(c.Request().Context(), subjectID)
		if err != nil {
			return err
		}
		items := make([]doctorRecordItem, 0, len(records))
		for _, r := range records {
			items = append(items, doctorRecordItem(r))
		}
		return c.JSON(http.StatusOK, listRecordsResponse{Records: items, Total: len(items)})

	case domain.RolePatient:
		records, err := h.service.ListForPatient(c.Request().Context(), subjectID)
		if err != nil {
			return err
		}
		items := make([]patientRecordItem, 0, len(records))
		for _, r := range records {
			items = append(items, patientRecordItem(r))
		}
		return c.JSON(http.StatusOK, listRecordsResponse{Records: items, Total: len(items)})

	default:
		return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
	}
}
