package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type createRecordRequest struct {
	PatientEmail string `json:"patient_email" validate:"required,email"`
	Title        string `json:"title"         validate:"required"`
	Notes        string `json:"notes"`
}

type recordResponse struct {
	ID        int64     `json:"id"`
	DoctorID  int64     `json:"doctor_id"`
	PatientID int64     `json:"patient_id"`
	Title     string    `json:"title"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

type doctorRecordItem struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	PatientID    int64     `json:"patient_id"`
	PatientEmail string    `json:"patient_email"`
}

type patientRecordItem struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	DoctorID    int64     `json:"doctor_id"`
	DoctorEmail string    `json:"doctor_email"`
}

type listRecordsResponse struct {
	Records any `json:"records"`
	Total   int `json:"total"`
}
