package record

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no medical record matches the given ID.
var ErrNotFound = errors.New("medical record not found")

// MedicalRecord maps to the medical_records table. CreatedBy and
// UpdatedBy hold the login subject of the user who touched the record.
type MedicalRecord struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	PatientID     uuid.UUID  `db:"patient_id" json:"patient_id"`
	AppointmentID *uuid.UUID `db:"appointment_id" json:"appointment_id,omitempty"`
	DoctorID      *uuid.UUID `db:"doctor_id" json:"doctor_id,omitempty"`
	Diagnosis     *string    `db:"diagnosis" json:"diagnosis,omitempty"`
	Symptoms      *string    `db:"symptoms" json:"symptoms,omitempty"`
	Prescription  *string    `db:"prescription" json:"prescription,omitempty"`
	Notes         *string    `db:"notes" json:"notes,omitempty"`
	CreatedBy     string     `db:"created_by" json:"created_by"`
	UpdatedBy     string     `db:"updated_by" json:"updated_by"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}
