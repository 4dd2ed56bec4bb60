package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Detail, int, error)

	// CountConflicts counts SCHEDULED appointments for the doctor
	// whose start lies strictly within one slot length of the given
	// start, on either side. Two bookings exactly one slot apart do
	// not conflict. excludeID omits one appointment from the count,
	// pass uuid.Nil to count all.
	CountConflicts(ctx context.Context, doctorID uuid.UUID, start time.Time, excludeID uuid.UUID) (int, error)

	// ListScheduledStarts returns the start times of SCHEDULED
	// appointments for the doctor within [from, to).
	ListScheduledStarts(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]time.Time, error)

	// ListDistinctPatientIDs returns the IDs of patients who have any
	// appointment with the doctor.
	ListDistinctPatientIDs(ctx context.Context, doctorID uuid.UUID) ([]uuid.UUID, error)
}
