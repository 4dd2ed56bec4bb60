package doctor

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

// -- Mock Repositories --

type mockRepo struct {
	doctors map[uuid.UUID]*Doctor
}

func newMockRepo() *mockRepo {
	return &mockRepo{doctors: make(map[uuid.UUID]*Doctor)}
}

func (m *mockRepo) Create(_ context.Context, d *Doctor) error {
	d.ID = uuid.New()
	d.CreatedAt = time.Now()
	d.UpdatedAt = time.Now()
	m.doctors[d.ID] = d
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Doctor, error) {
	d, ok := m.doctors[id]
	if !ok {
		return nil, ErrNotFound
	}
	return d, nil
}

func (m *mockRepo) GetByUserID(_ context.Context, userID string) (*Doctor, error) {
	for _, d := range m.doctors {
		if d.UserID != nil && *d.UserID == userID {
			return d, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepo) Update(_ context.Context, d *Doctor) error {
	if _, ok := m.doctors[d.ID]; !ok {
		return ErrNotFound
	}
	m.doctors[d.ID] = d
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.doctors[id]; !ok {
		return ErrNotFound
	}
	delete(m.doctors, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, _ string, _, _ int) ([]*Doctor, int, error) {
	var result []*Doctor
	for _, d := range m.doctors {
		result = append(result, d)
	}
	return result, len(result), nil
}

type mockAvailabilityRepo struct {
	avails map[uuid.UUID]*Availability
}

func newMockAvailabilityRepo() *mockAvailabilityRepo {
	return &mockAvailabilityRepo{avails: make(map[uuid.UUID]*Availability)}
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func (m *mockAvailabilityRepo) Replace(_ context.Context, a *Availability) error {
	for id, existing := range m.avails {
		if existing.DoctorID != a.DoctorID {
			continue
		}
		if a.DayOfWeek != nil && existing.DayOfWeek != nil && *existing.DayOfWeek == *a.DayOfWeek {
			delete(m.avails, id)
		}
		if a.SpecificDate != nil && existing.SpecificDate != nil && sameDate(*existing.SpecificDate, *a.SpecificDate) {
			delete(m.avails, id)
		}
	}
	a.ID = uuid.New()
	m.avails[a.ID] = a
	return nil
}

func (m *mockAvailabilityRepo) GetRecurring(_ context.Context, doctorID uuid.UUID, day Weekday) (*Availability, error) {
	for _, a := range m.avails {
		if a.DoctorID == doctorID && a.DayOfWeek != nil && *a.DayOfWeek == day {
			return a, nil
		}
	}
	return nil, nil
}

func (m *mockAvailabilityRepo) GetOverride(_ context.Context, doctorID uuid.UUID, date time.Time) (*Availability, error) {
	for _, a := range m.avails {
		if a.DoctorID == doctorID && a.SpecificDate != nil && sameDate(*a.SpecificDate, date) {
			return a, nil
		}
	}
	return nil, nil
}

func (m *mockAvailabilityRepo) ListByDoctor(_ context.Context, doctorID uuid.UUID) ([]*Availability, error) {
	var result []*Availability
	for _, a := range m.avails {
		if a.DoctorID == doctorID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (m *mockAvailabilityRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.avails[id]; !ok {
		return ErrNotFound
	}
	delete(m.avails, id)
	return nil
}

// -- Helpers --

func newTestService(t *testing.T) (*Service, *Doctor, *mockAvailabilityRepo) {
	t.Helper()
	repo := newMockRepo()
	avails := newMockAvailabilityRepo()
	svc := NewService(repo, avails)

	d := &Doctor{
		FirstName:      "Elena",
		LastName:       "Ruiz",
		Specialization: "Cardiology",
		Email:          "elena@clinic.test",
	}
	if err := svc.Create(context.Background(), d); err != nil {
		t.Fatalf("create doctor: %v", err)
	}
	return svc, d, avails
}

func recurring(doctorID uuid.UUID, day Weekday, start, end TimeOfDay) *Availability {
	return &Availability{DoctorID: doctorID, DayOfWeek: &day, StartTime: start, EndTime: end}
}

func override(doctorID uuid.UUID, date time.Time, start, end TimeOfDay) *Availability {
	return &Availability{DoctorID: doctorID, SpecificDate: &date, StartTime: start, EndTime: end}
}

// -- Tests --

func TestCreate_RequiresSpecialization(t *testing.T) {
	svc := NewService(newMockRepo(), newMockAvailabilityRepo())

	d := &Doctor{FirstName: "A", LastName: "B", Email: "a@b.com"}
	if err := svc.Create(context.Background(), d); err == nil {
		t.Error("expected error for missing specialization")
	}
}

func TestSetAvailability_UnknownDoctor(t *testing.T) {
	svc := NewService(newMockRepo(), newMockAvailabilityRepo())

	a := recurring(uuid.New(), Monday, 9*60, 17*60)
	if err := svc.SetAvailability(context.Background(), a); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSetAvailability_RejectsInvalidWindow(t *testing.T) {
	svc, d, _ := newTestService(t)

	a := recurring(d.ID, Monday, 17*60, 9*60)
	if err := svc.SetAvailability(context.Background(), a); err == nil {
		t.Error("expected error for inverted window")
	}
}

func TestSetAvailability_ReplacesNotDuplicates(t *testing.T) {
	svc, d, avails := newTestService(t)
	ctx := context.Background()

	if err := svc.SetAvailability(ctx, recurring(d.ID, Monday, 9*60, 17*60)); err != nil {
		t.Fatalf("first set: %v", err)
	}
	if err := svc.SetAvailability(ctx, recurring(d.ID, Monday, 10*60, 16*60)); err != nil {
		t.Fatalf("second set: %v", err)
	}

	items, err := svc.ListAvailabilities(ctx, d.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 availability after replace, got %d", len(items))
	}
	if items[0].StartTime != 10*60 || items[0].EndTime != 16*60 {
		t.Errorf("window = %s-%s, want 10:00-16:00", items[0].StartTime, items[0].EndTime)
	}
	_ = avails
}

func TestEffectiveWindow_RecurringRule(t *testing.T) {
	svc, d, _ := newTestService(t)
	ctx := context.Background()

	if err := svc.SetAvailability(ctx, recurring(d.ID, Monday, 9*60, 17*60)); err != nil {
		t.Fatalf("set: %v", err)
	}

	// 2026-03-02 is a Monday.
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	w, err := svc.EffectiveWindow(ctx, d.ID, monday)
	if err != nil {
		t.Fatalf("effective window: %v", err)
	}
	if w == nil {
		t.Fatal("expected a window on Monday")
	}
	if w.Start != 9*60 || w.End != 17*60 {
		t.Errorf("window = %s-%s, want 09:00-17:00", w.Start, w.End)
	}

	tuesday := monday.AddDate(0, 0, 1)
	w, err = svc.EffectiveWindow(ctx, d.ID, tuesday)
	if err != nil {
		t.Fatalf("effective window: %v", err)
	}
	if w != nil {
		t.Errorf("expected no window on Tuesday, got %s-%s", w.Start, w.End)
	}
}

func TestEffectiveWindow_OverrideWins(t *testing.T) {
	svc, d, _ := newTestService(t)
	ctx := context.Background()

	// 2026-03-02 is a Monday.
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	if err := svc.SetAvailability(ctx, recurring(d.ID, Monday, 9*60, 17*60)); err != nil {
		t.Fatalf("set recurring: %v", err)
	}
	if err := svc.SetAvailability(ctx, override(d.ID, monday, 12*60, 15*60)); err != nil {
		t.Fatalf("set override: %v", err)
	}

	w, err := svc.EffectiveWindow(ctx, d.ID, monday)
	if err != nil {
		t.Fatalf("effective window: %v", err)
	}
	if w == nil {
		t.Fatal("expected a window")
	}
	if w.Start != 12*60 || w.End != 15*60 {
		t.Errorf("window = %s-%s, want the 12:00-15:00 override", w.Start, w.End)
	}

	// The following Monday falls back to the recurring rule.
	nextMonday := monday.AddDate(0, 0, 7)
	w, err = svc.EffectiveWindow(ctx, d.ID, nextMonday)
	if err != nil {
		t.Fatalf("effective window: %v", err)
	}
	if w == nil || w.Start != 9*60 {
		t.Errorf("expected recurring rule on following Monday, got %+v", w)
	}
}

func TestGetByUserID(t *testing.T) {
	svc, d, _ := newTestService(t)
	ctx := context.Background()

	userID := "auth0|someone"
	d.UserID = &userID
	if err := svc.Update(ctx, d); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := svc.GetByUserID(ctx, userID)
	if err != nil {
		t.Fatalf("get by user id: %v", err)
	}
	if got.ID != d.ID {
		t.Errorf("resolved wrong doctor")
	}

	if _, err := svc.GetByUserID(ctx, "auth0|nobody"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
