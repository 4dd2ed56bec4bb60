package appointment

import (
	"errors"
	"fmt"

	"github.com/clinic/clinic/internal/domain/doctor"
)

var (
	// ErrNotFound is returned when no appointment matches the given ID.
	ErrNotFound = errors.New("appointment not found")
	// ErrPastDate rejects bookings whose slot start is not in the future.
	ErrPastDate = errors.New("appointment time must be in the future")
	// ErrDoctorUnavailable means the doctor has no working window on
	// the requested day.
	ErrDoctorUnavailable = errors.New("doctor is not available on this day")
	// ErrOutsideHours means the requested time falls outside the
	// doctor's working window.
	ErrOutsideHours = errors.New("appointment time is outside working hours")
	// ErrConflict means the slot overlaps another scheduled
	// appointment for the same doctor, or the doctor's booking lock
	// could not be acquired.
	ErrConflict = errors.New("appointment conflicts with an existing booking")
	// ErrInvalidTransition rejects status changes out of a terminal
	// state or into SCHEDULED.
	ErrInvalidTransition = errors.New("invalid status transition")
)

func unavailableOn(day doctor.Weekday) error {
	return fmt.Errorf("%w: no availability on %s", ErrDoctorUnavailable, day.DisplayName())
}

func outsideHours(w *doctor.Window) error {
	return fmt.Errorf("%w: working hours are %s to %s", ErrOutsideHours, w.Start, w.End)
}
