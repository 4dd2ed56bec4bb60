package doctor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	doctors        Repository
	availabilities AvailabilityRepository
}

func NewService(doctors Repository, availabilities AvailabilityRepository) *Service {
	return &Service{doctors: doctors, availabilities: availabilities}
}

func (s *Service) Create(ctx context.Context, d *Doctor) error {
	if err := validate(d); err != nil {
		return err
	}
	return s.doctors.Create(ctx, d)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return s.doctors.GetByID(ctx, id)
}

// GetByUserID resolves the doctor record linked to a login subject.
func (s *Service) GetByUserID(ctx context.Context, userID string) (*Doctor, error) {
	return s.doctors.GetByUserID(ctx, userID)
}

func (s *Service) Update(ctx context.Context, d *Doctor) error {
	if err := validate(d); err != nil {
		return err
	}
	return s.doctors.Update(ctx, d)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.doctors.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, specialization string, limit, offset int) ([]*Doctor, int, error) {
	return s.doctors.List(ctx, specialization, limit, offset)
}

// SetAvailability replaces the doctor's window for the rule's day or
// date. The doctor must exist.
func (s *Service) SetAvailability(ctx context.Context, a *Availability) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if _, err := s.doctors.GetByID(ctx, a.DoctorID); err != nil {
		return err
	}
	return s.availabilities.Replace(ctx, a)
}

func (s *Service) ListAvailabilities(ctx context.Context, doctorID uuid.UUID) ([]*Availability, error) {
	if _, err := s.doctors.GetByID(ctx, doctorID); err != nil {
		return nil, err
	}
	return s.availabilities.ListByDoctor(ctx, doctorID)
}

func (s *Service) DeleteAvailability(ctx context.Context, id uuid.UUID) error {
	return s.availabilities.Delete(ctx, id)
}

// EffectiveWindow resolves the doctor's working window for a calendar
// day. A date-specific override supersedes the recurring weekly rule.
// A nil window means the doctor does not work that day.
func (s *Service) EffectiveWindow(ctx context.Context, doctorID uuid.UUID, date time.Time) (*Window, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	override, err := s.availabilities.GetOverride(ctx, doctorID, day)
	if err != nil {
		return nil, err
	}
	if override != nil {
		return &Window{Start: override.StartTime, End: override.EndTime}, nil
	}

	recurring, err := s.availabilities.GetRecurring(ctx, doctorID, WeekdayFromTime(date))
	if err != nil {
		return nil, err
	}
	if recurring != nil {
		return &Window{Start: recurring.StartTime, End: recurring.EndTime}, nil
	}
	return nil, nil
}

func validate(d *Doctor) error {
	if strings.TrimSpace(d.FirstName) == "" {
		return fmt.Errorf("first_name is required")
	}
	if strings.TrimSpace(d.LastName) == "" {
		return fmt.Errorf("last_name is required")
	}
	if strings.TrimSpace(d.Specialization) == "" {
		return fmt.Errorf("specialization is required")
	}
	if !strings.Contains(d.Email, "@") {
		return fmt.Errorf("email is invalid")
	}
	return nil
}
