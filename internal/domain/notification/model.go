package notification

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no notification matches the given ID.
var ErrNotFound = errors.New("notification not found")

// Type classifies a notification.
type Type string

const (
	TypeReminder     Type = "APPOINTMENT_REMINDER"
	TypeConfirmation Type = "APPOINTMENT_CONFIRMATION"
	TypeCancellation Type = "APPOINTMENT_CANCELLATION"
	TypeGeneral      Type = "GENERAL"
)

// Valid reports whether t is a known type.
func (t Type) Valid() bool {
	switch t {
	case TypeReminder, TypeConfirmation, TypeCancellation, TypeGeneral:
		return true
	}
	return false
}

// Status tracks delivery.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusSent    Status = "SENT"
	StatusFailed  Status = "FAILED"
)

// Notification maps to the notifications table. Rows are written as
// PENDING and the dispatcher moves them to SENT or FAILED.
type Notification struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	PatientID     uuid.UUID  `db:"patient_id" json:"patient_id"`
	AppointmentID *uuid.UUID `db:"appointment_id" json:"appointment_id,omitempty"`
	Type          Type       `db:"type" json:"type"`
	Message       string     `db:"message" json:"message"`
	Status        Status     `db:"status" json:"status"`
	SentAt        *time.Time `db:"sent_at" json:"sent_at,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}
