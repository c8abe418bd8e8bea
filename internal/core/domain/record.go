package domain

import (
	"errors"
	"time"
)

var (
	ErrPatientNotFound = errors.New("patient not found")
	ErrNotAPatient     = errors.New("user is not a patient")
	ErrTitleRequired   = errors.New("title is required")
)

// MedicalRecord is an entry a doctor writes about a patient.
type MedicalRecord struct {
	ID        int64     `json:"id"`
	DoctorID  int64     `json:"doctor_id"`
	PatientID int64     `json:"patient_id"`
	Title     string    `json:"title"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// DoctorRecordView is a record as seen by its author, joined with the
// patient's email.
type DoctorRecordView struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	PatientID    int64     `json:"patient_id"`
	PatientEmail string    `json:"patient_email"`
}

// PatientRecordView is a record as seen by its subject, joined with the
// authoring doctor's email.
type PatientRecordView struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	DoctorID    int64     `json:"doctor_id"`
	DoctorEmail string    `json:"doctor_email"`
}
