package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clinic/clinic/internal/domain/doctor"
	"github.com/clinic/clinic/internal/domain/patient"
	"github.com/clinic/clinic/internal/domain/record"
	"github.com/clinic/clinic/internal/platform/lock"
)

// DoctorDirectory is the slice of the doctor service the scheduler
// needs.
type DoctorDirectory interface {
	Get(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error)
	GetByUserID(ctx context.Context, userID string) (*doctor.Doctor, error)
	EffectiveWindow(ctx context.Context, doctorID uuid.UUID, date time.Time) (*doctor.Window, error)
}

// PatientDirectory resolves patients referenced by appointments.
type PatientDirectory interface {
	Get(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
}

// RecordBrowser lists medical records for the doctor's own patients.
type RecordBrowser interface {
	ListByPatients(ctx context.Context, patientIDs []uuid.UUID, limit, offset int) ([]*record.MedicalRecord, int, error)
}

// Notifier queues patient-facing messages triggered by bookings.
// Delivery failures never fail the booking itself.
type Notifier interface {
	AppointmentBooked(ctx context.Context, a *Appointment) error
	AppointmentCancelled(ctx context.Context, a *Appointment) error
}

type Service struct {
	appointments Repository
	doctors      DoctorDirectory
	patients     PatientDirectory
	records      RecordBrowser
	locker       lock.Locker
	notifier     Notifier
	loc          *time.Location
	logger       zerolog.Logger

	now func() time.Time
}

// NewService builds the scheduling service. loc is the clinic's
// reference timezone; every submitted time is converted into it before
// the weekday and working-hours checks run, so a client's UTC offset
// can never move a booking into a different day or window.
func NewService(
	appointments Repository,
	doctors DoctorDirectory,
	patients PatientDirectory,
	records RecordBrowser,
	locker lock.Locker,
	notifier Notifier,
	loc *time.Location,
	logger zerolog.Logger,
) *Service {
	return &Service{
		appointments: appointments,
		doctors:      doctors,
		patients:     patients,
		records:      records,
		locker:       locker,
		notifier:     notifier,
		loc:          loc,
		logger:       logger,
		now:          time.Now,
	}
}

// Validate checks a proposed slot in order: the time must be in the
// future, the doctor must work that day, the time must fall inside the
// working window, and the slot must not overlap another scheduled
// appointment. The weekday and hours checks read the time in the
// clinic's reference timezone, not the offset the client submitted.
// excludeID skips one appointment in the conflict count so reschedules
// do not collide with themselves.
func (s *Service) Validate(ctx context.Context, a *Appointment, excludeID uuid.UUID) error {
	if !a.AppointmentTime.After(s.now()) {
		return ErrPastDate
	}

	local := a.AppointmentTime.In(s.loc)

	window, err := s.doctors.EffectiveWindow(ctx, a.DoctorID, local)
	if err != nil {
		return err
	}
	if window == nil {
		return unavailableOn(doctor.WeekdayFromTime(local))
	}

	t := doctor.TimeOfDay(local.Hour()*60 + local.Minute())
	if t < window.Start || t > window.End {
		return outsideHours(window)
	}

	count, err := s.appointments.CountConflicts(ctx, a.DoctorID, a.AppointmentTime, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}
	return nil
}

// Create books a new appointment. Validation and the insert run under
// the doctor's booking lock so two concurrent requests for the same
// slot cannot both pass the conflict check.
func (s *Service) Create(ctx context.Context, a *Appointment) error {
	if _, err := s.patients.Get(ctx, a.PatientID); err != nil {
		return err
	}
	if _, err := s.doctors.Get(ctx, a.DoctorID); err != nil {
		return err
	}
	a.Status = StatusScheduled

	err := s.locker.WithDoctorLock(ctx, a.DoctorID, func(ctx context.Context) error {
		if err := s.Validate(ctx, a, uuid.Nil); err != nil {
			return err
		}
		return s.appointments.Create(ctx, a)
	})
	if errors.Is(err, lock.ErrNotAcquired) {
		return ErrConflict
	}
	if err != nil {
		return err
	}

	if err := s.notifier.AppointmentBooked(ctx, a); err != nil {
		s.logger.Error().Err(err).Str("appointment_id", a.ID.String()).
			Msg("failed to queue booking confirmation")
	}
	return nil
}

// Get returns a single appointment.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.appointments.GetByID(ctx, id)
}

// Update reschedules an appointment. Only SCHEDULED appointments can
// change; the new slot is validated with the appointment itself
// excluded from the conflict count.
func (s *Service) Update(ctx context.Context, a *Appointment) error {
	existing, err := s.appointments.GetByID(ctx, a.ID)
	if err != nil {
		return err
	}
	if existing.Status != StatusScheduled {
		return ErrInvalidTransition
	}
	a.PatientID = existing.PatientID
	a.DoctorID = existing.DoctorID
	a.Status = existing.Status

	err = s.locker.WithDoctorLock(ctx, a.DoctorID, func(ctx context.Context) error {
		if err := s.Validate(ctx, a, a.ID); err != nil {
			return err
		}
		return s.appointments.Update(ctx, a)
	})
	if errors.Is(err, lock.ErrNotAcquired) {
		return ErrConflict
	}
	return err
}

// UpdateStatus moves an appointment through its lifecycle. COMPLETED
// and CANCELLED are terminal. Cancelling queues a notification.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Appointment, error) {
	a, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !status.Valid() || !a.Status.CanTransitionTo(status) {
		return nil, ErrInvalidTransition
	}
	if err := s.appointments.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	a.Status = status

	if status == StatusCancelled {
		if err := s.notifier.AppointmentCancelled(ctx, a); err != nil {
			s.logger.Error().Err(err).Str("appointment_id", a.ID.String()).
				Msg("failed to queue cancellation notice")
		}
	}
	return a, nil
}

// Delete removes an appointment outright.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.appointments.Delete(ctx, id)
}

// List returns appointments with patient and doctor names attached.
func (s *Service) List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Detail, int, error) {
	return s.appointments.List(ctx, filter, limit, offset)
}

// AvailableSlots returns the free slot starts for a doctor on one
// calendar day. Slots already taken by scheduled appointments are
// removed. ErrDoctorUnavailable means the doctor has no window that
// day.
func (s *Service) AvailableSlots(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]time.Time, error) {
	if _, err := s.doctors.Get(ctx, doctorID); err != nil {
		return nil, err
	}

	window, err := s.doctors.EffectiveWindow(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}
	if window == nil {
		return nil, unavailableOn(doctor.WeekdayFromTime(date))
	}

	slots := GenerateSlots(window, date, s.now().In(date.Location()))

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	booked, err := s.appointments.ListScheduledStarts(ctx, doctorID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	return FilterBooked(slots, booked), nil
}

// ListDoctorPatients returns the distinct patients who have had any
// appointment with the doctor linked to the given login subject.
func (s *Service) ListDoctorPatients(ctx context.Context, userID string) ([]*patient.Patient, error) {
	doc, err := s.doctors.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids, err := s.appointments.ListDistinctPatientIDs(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	patients := make([]*patient.Patient, 0, len(ids))
	for _, id := range ids {
		p, err := s.patients.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		patients = append(patients, p)
	}
	return patients, nil
}

// ListDoctorRecords returns medical records belonging to the doctor's
// own patients.
func (s *Service) ListDoctorRecords(ctx context.Context, userID string, limit, offset int) ([]*record.MedicalRecord, int, error) {
	doc, err := s.doctors.GetByUserID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	ids, err := s.appointments.ListDistinctPatientIDs(ctx, doc.ID)
	if err != nil {
		return nil, 0, err
	}
	if len(ids) == 0 {
		return nil, 0, nil
	}
	return s.records.ListByPatients(ctx, ids, limit, offset)
}
