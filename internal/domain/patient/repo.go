package patient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Patient, int, error)
}

// ListFilter narrows patient listings. Zero values mean no filtering.
type ListFilter struct {
	// Search matches against first name, last name and email,
	// case-insensitively.
	Search string
	// InsuranceProvider matches the provider name exactly.
	InsuranceProvider string
}
