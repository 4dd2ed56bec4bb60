package record

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/clinic/clinic/internal/domain/patient"
)

// -- Mocks --

type mockRepo struct {
	records map[uuid.UUID]*MedicalRecord
}

func newMockRepo() *mockRepo {
	return &mockRepo{records: make(map[uuid.UUID]*MedicalRecord)}
}

func (m *mockRepo) Create(_ context.Context, r *MedicalRecord) error {
	r.ID = uuid.New()
	r.CreatedAt = time.Now()
	r.UpdatedAt = time.Now()
	m.records[r.ID] = r
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*MedicalRecord, error) {
	r, ok := m.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return r, nil
}

func (m *mockRepo) Update(_ context.Context, r *MedicalRecord) error {
	if _, ok := m.records[r.ID]; !ok {
		return ErrNotFound
	}
	m.records[r.ID] = r
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.records[id]; !ok {
		return ErrNotFound
	}
	delete(m.records, id)
	return nil
}

func (m *mockRepo) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*MedicalRecord, int, error) {
	return m.ListByPatients(ctx, []uuid.UUID{patientID}, limit, offset)
}

func (m *mockRepo) ListByPatients(_ context.Context, patientIDs []uuid.UUID, _, _ int) ([]*MedicalRecord, int, error) {
	wanted := make(map[uuid.UUID]bool, len(patientIDs))
	for _, id := range patientIDs {
		wanted[id] = true
	}
	var result []*MedicalRecord
	for _, r := range m.records {
		if wanted[r.PatientID] {
			result = append(result, r)
		}
	}
	return result, len(result), nil
}

type mockPatients struct {
	known map[uuid.UUID]*patient.Patient
}

func (m *mockPatients) Get(_ context.Context, id uuid.UUID) (*patient.Patient, error) {
	p, ok := m.known[id]
	if !ok {
		return nil, patient.ErrNotFound
	}
	return p, nil
}

func newTestService() (*Service, uuid.UUID) {
	patientID := uuid.New()
	patients := &mockPatients{known: map[uuid.UUID]*patient.Patient{
		patientID: {ID: patientID, FirstName: "Maria", LastName: "Lopez"},
	}}
	return NewService(newMockRepo(), patients), patientID
}

func strPtr(s string) *string { return &s }

// -- Tests --

func TestCreate_StampsAuthor(t *testing.T) {
	svc, patientID := newTestService()

	m := &MedicalRecord{PatientID: patientID, Diagnosis: strPtr("flu")}
	if err := svc.Create(context.Background(), m, "user-1"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if m.CreatedBy != "user-1" || m.UpdatedBy != "user-1" {
		t.Errorf("audit columns = %q/%q, want user-1", m.CreatedBy, m.UpdatedBy)
	}
}

func TestCreate_UnknownPatient(t *testing.T) {
	svc, _ := newTestService()

	m := &MedicalRecord{PatientID: uuid.New()}
	if err := svc.Create(context.Background(), m, "user-1"); err != patient.ErrNotFound {
		t.Fatalf("expected patient.ErrNotFound, got %v", err)
	}
}

func TestCreate_RequiresPatientID(t *testing.T) {
	svc, _ := newTestService()

	m := &MedicalRecord{}
	if err := svc.Create(context.Background(), m, "user-1"); err == nil {
		t.Error("expected error for missing patient_id")
	}
}

func TestUpdate_StampsEditor(t *testing.T) {
	svc, patientID := newTestService()
	ctx := context.Background()

	m := &MedicalRecord{PatientID: patientID}
	if err := svc.Create(ctx, m, "user-1"); err != nil {
		t.Fatalf("create: %v", err)
	}

	m.Diagnosis = strPtr("updated")
	if err := svc.Update(ctx, m, "user-2"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if m.UpdatedBy != "user-2" {
		t.Errorf("UpdatedBy = %q, want user-2", m.UpdatedBy)
	}
	if m.CreatedBy != "user-1" {
		t.Errorf("CreatedBy = %q, want user-1", m.CreatedBy)
	}
}

func TestListByPatient(t *testing.T) {
	svc, patientID := newTestService()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := svc.Create(ctx, &MedicalRecord{PatientID: patientID}, "user-1"); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	items, total, err := svc.ListByPatient(ctx, patientID, 20, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 || len(items) != 3 {
		t.Errorf("expected 3 records, got %d", total)
	}
}

func TestListByPatient_UnknownPatient(t *testing.T) {
	svc, _ := newTestService()

	if _, _, err := svc.ListByPatient(context.Background(), uuid.New(), 20, 0); err != patient.ErrNotFound {
		t.Fatalf("expected patient.ErrNotFound, got %v", err)
	}
}
