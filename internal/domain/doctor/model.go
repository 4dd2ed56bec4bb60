package doctor

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no doctor matches the given ID.
	ErrNotFound = errors.New("doctor not found")
	// ErrInvalidWindow is returned when an availability window is malformed.
	ErrInvalidWindow = errors.New("invalid availability window")
)

// Doctor maps to the doctors table. UserID links the doctor to the
// subject claim of their login token so the "my patients" and
// "my records" views can resolve the caller.
type Doctor struct {
	ID             uuid.UUID `db:"id" json:"id"`
	FirstName      string    `db:"first_name" json:"first_name"`
	LastName       string    `db:"last_name" json:"last_name"`
	Specialization string    `db:"specialization" json:"specialization"`
	Email          string    `db:"email" json:"email"`
	Phone          *string   `db:"phone" json:"phone,omitempty"`
	Bio            *string   `db:"bio" json:"bio,omitempty"`
	UserID         *string   `db:"user_id" json:"user_id,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// FullName returns the doctor's display name with title.
func (d *Doctor) FullName() string {
	return fmt.Sprintf("Dr. %s %s", d.FirstName, d.LastName)
}

// Weekday identifies a day of the week in availability rules.
type Weekday string

const (
	Monday    Weekday = "MON"
	Tuesday   Weekday = "TUE"
	Wednesday Weekday = "WED"
	Thursday  Weekday = "THU"
	Friday    Weekday = "FRI"
	Saturday  Weekday = "SAT"
	Sunday    Weekday = "SUN"
)

var weekdayNames = map[Weekday]string{
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
	Saturday:  "Saturday",
	Sunday:    "Sunday",
}

// Valid reports whether w is one of the seven weekday codes.
func (w Weekday) Valid() bool {
	_, ok := weekdayNames[w]
	return ok
}

// DisplayName returns the full English name of the weekday.
func (w Weekday) DisplayName() string {
	if name, ok := weekdayNames[w]; ok {
		return name
	}
	return string(w)
}

// WeekdayFromTime maps a time.Weekday onto the availability code.
func WeekdayFromTime(t time.Time) Weekday {
	switch t.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// TimeOfDay is a clock time expressed as minutes since midnight. It
// serializes as "HH:MM".
type TimeOfDay int

// ParseTimeOfDay parses a "HH:MM" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("parse time of day %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time of day %q out of range", s)
	}
	return TimeOfDay(h*60 + m), nil
}

// Hour returns the hour component, 0 through 23.
func (t TimeOfDay) Hour() int { return int(t) / 60 }

// Minute returns the minute component, 0 through 59.
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// At anchors the clock time on the given calendar date.
func (t TimeOfDay) At(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("time of day must be a %q string", "HH:MM")
	}
	parsed, err := ParseTimeOfDay(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Availability is a working window for a doctor. Exactly one of
// DayOfWeek (a recurring weekly rule) or SpecificDate (an override for
// a single calendar day) is set. An override replaces all recurring
// rules for that day.
type Availability struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	DoctorID     uuid.UUID  `db:"doctor_id" json:"doctor_id"`
	DayOfWeek    *Weekday   `db:"day_of_week" json:"day_of_week,omitempty"`
	SpecificDate *time.Time `db:"specific_date" json:"specific_date,omitempty"`
	StartTime    TimeOfDay  `db:"start_time" json:"start_time"`
	EndTime      TimeOfDay  `db:"end_time" json:"end_time"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// Validate checks the window shape. Midnight-spanning windows are not
// supported, so start must precede end.
func (a *Availability) Validate() error {
	hasDay := a.DayOfWeek != nil
	hasDate := a.SpecificDate != nil
	if hasDay == hasDate {
		return fmt.Errorf("%w: exactly one of day_of_week or specific_date must be set", ErrInvalidWindow)
	}
	if hasDay && !a.DayOfWeek.Valid() {
		return fmt.Errorf("%w: unknown day_of_week %q", ErrInvalidWindow, *a.DayOfWeek)
	}
	if a.StartTime >= a.EndTime {
		return fmt.Errorf("%w: start_time must be before end_time", ErrInvalidWindow)
	}
	return nil
}

// Window is a resolved working interval for one calendar day.
type Window struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}
