package record

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/clinic/clinic/internal/domain/patient"
)

// PatientDirectory verifies that referenced patients exist.
type PatientDirectory interface {
	Get(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
}

type Service struct {
	records  Repository
	patients PatientDirectory
}

func NewService(records Repository, patients PatientDirectory) *Service {
	return &Service{records: records, patients: patients}
}

// Create stores a new record. author is the login subject of the
// caller and is stamped on both audit columns.
func (s *Service) Create(ctx context.Context, m *MedicalRecord, author string) error {
	if m.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if _, err := s.patients.Get(ctx, m.PatientID); err != nil {
		return err
	}
	m.CreatedBy = author
	m.UpdatedBy = author
	return s.records.Create(ctx, m)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*MedicalRecord, error) {
	return s.records.GetByID(ctx, id)
}

// Update modifies the clinical fields of a record and stamps the
// caller as the last editor.
func (s *Service) Update(ctx context.Context, m *MedicalRecord, author string) error {
	m.UpdatedBy = author
	return s.records.Update(ctx, m)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.records.Delete(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*MedicalRecord, int, error) {
	if _, err := s.patients.Get(ctx, patientID); err != nil {
		return nil, 0, err
	}
	return s.records.ListByPatient(ctx, patientID, limit, offset)
}

// ListByPatients lists records across a set of patients. Used by the
// doctor's "my records" view.
func (s *Service) ListByPatients(ctx context.Context, patientIDs []uuid.UUID, limit, offset int) ([]*MedicalRecord, int, error) {
	return s.records.ListByPatients(ctx, patientIDs, limit, offset)
}
