package patient

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no patient matches the given ID.
var ErrNotFound = errors.New("patient not found")

// Patient maps to the patients table.
type Patient struct {
	ID                uuid.UUID `db:"id" json:"id"`
	FirstName         string    `db:"first_name" json:"first_name"`
	LastName          string    `db:"last_name" json:"last_name"`
	DateOfBirth       time.Time `db:"date_of_birth" json:"date_of_birth"`
	Email             string    `db:"email" json:"email"`
	Phone             *string   `db:"phone" json:"phone,omitempty"`
	Address           *string   `db:"address" json:"address,omitempty"`
	InsuranceProvider *string   `db:"insurance_provider" json:"insurance_provider,omitempty"`
	InsuranceID       *string   `db:"insurance_id" json:"insurance_id,omitempty"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// FullName returns the patient's display name.
func (p *Patient) FullName() string {
	return fmt.Sprintf("%s %s", p.FirstName, p.LastName)
}

// Age returns the patient's age in whole years at the given reference time.
func (p *Patient) Age(now time.Time) int {
	years := now.Year() - p.DateOfBirth.Year()
	birthday := time.Date(now.Year(), p.DateOfBirth.Month(), p.DateOfBirth.Day(), 0, 0, 0, 0, now.Location())
	if now.Before(birthday) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
