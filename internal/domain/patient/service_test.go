package patient

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

// -- Mock Repository --

type mockRepo struct {
	patients map[uuid.UUID]*Patient
}

func newMockRepo() *mockRepo {
	return &mockRepo{patients: make(map[uuid.UUID]*Patient)}
}

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	m.patients[p.ID] = p
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (m *mockRepo) Update(_ context.Context, p *Patient) error {
	if _, ok := m.patients[p.ID]; !ok {
		return ErrNotFound
	}
	m.patients[p.ID] = p
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.patients[id]; !ok {
		return ErrNotFound
	}
	delete(m.patients, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, filter ListFilter, limit, offset int) ([]*Patient, int, error) {
	var result []*Patient
	for _, p := range m.patients {
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(p.FirstName), needle) &&
				!strings.Contains(strings.ToLower(p.LastName), needle) &&
				!strings.Contains(strings.ToLower(p.Email), needle) {
				continue
			}
		}
		if filter.InsuranceProvider != "" {
			if p.InsuranceProvider == nil || *p.InsuranceProvider != filter.InsuranceProvider {
				continue
			}
		}
		result = append(result, p)
	}
	return result, len(result), nil
}

func validPatient() *Patient {
	return &Patient{
		FirstName:   "Maria",
		LastName:    "Lopez",
		DateOfBirth: time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC),
		Email:       "maria@example.com",
	}
}

func TestCreate_Valid(t *testing.T) {
	svc := NewService(newMockRepo())

	p := validPatient()
	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID == uuid.Nil {
		t.Error("expected ID to be assigned")
	}
}

func TestCreate_RequiresNames(t *testing.T) {
	svc := NewService(newMockRepo())

	p := validPatient()
	p.FirstName = "  "
	if err := svc.Create(context.Background(), p); err == nil {
		t.Error("expected error for blank first name")
	}

	p = validPatient()
	p.LastName = ""
	if err := svc.Create(context.Background(), p); err == nil {
		t.Error("expected error for blank last name")
	}
}

func TestCreate_RejectsFutureBirthDate(t *testing.T) {
	svc := NewService(newMockRepo())

	p := validPatient()
	p.DateOfBirth = time.Now().AddDate(1, 0, 0)
	if err := svc.Create(context.Background(), p); err == nil {
		t.Error("expected error for future date of birth")
	}
}

func TestCreate_RejectsInvalidEmail(t *testing.T) {
	svc := NewService(newMockRepo())

	p := validPatient()
	p.Email = "not-an-email"
	if err := svc.Create(context.Background(), p); err == nil {
		t.Error("expected error for invalid email")
	}
}

func TestGet_NotFound(t *testing.T) {
	svc := NewService(newMockRepo())

	if _, err := svc.Get(context.Background(), uuid.New()); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdate_RoundTrip(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	p := validPatient()
	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("create: %v", err)
	}

	p.LastName = "Lopez-Garcia"
	if err := svc.Update(context.Background(), p); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := svc.Get(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.LastName != "Lopez-Garcia" {
		t.Errorf("LastName = %q, want Lopez-Garcia", got.LastName)
	}
}

func TestList_SearchFilter(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	a := validPatient()
	_ = svc.Create(context.Background(), a)

	b := validPatient()
	b.FirstName = "Carlos"
	b.Email = "carlos@example.com"
	_ = svc.Create(context.Background(), b)

	items, total, err := svc.List(context.Background(), ListFilter{Search: "carlos"}, 20, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Fatalf("expected 1 match, got %d", total)
	}
	if items[0].FirstName != "Carlos" {
		t.Errorf("unexpected match: %s", items[0].FirstName)
	}
}

func TestAge(t *testing.T) {
	p := &Patient{DateOfBirth: time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)}

	now := time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC)
	if got := p.Age(now); got != 35 {
		t.Errorf("Age before birthday = %d, want 35", got)
	}

	now = time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	if got := p.Age(now); got != 36 {
		t.Errorf("Age on birthday = %d, want 36", got)
	}
}
