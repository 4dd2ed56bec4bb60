package doctor

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error)
	GetByUserID(ctx context.Context, userID string) (*Doctor, error)
	Update(ctx context.Context, d *Doctor) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, specialization string, limit, offset int) ([]*Doctor, int, error)
}

type AvailabilityRepository interface {
	// Replace swaps the stored window for the rule's day or date with
	// the given one. Setting availability twice for the same day must
	// not accumulate rows.
	Replace(ctx context.Context, a *Availability) error
	GetRecurring(ctx context.Context, doctorID uuid.UUID, day Weekday) (*Availability, error)
	GetOverride(ctx context.Context, doctorID uuid.UUID, date time.Time) (*Availability, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*Availability, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
