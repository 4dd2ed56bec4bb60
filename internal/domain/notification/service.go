package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	notifications Repository
}

func NewService(notifications Repository) *Service {
	return &Service{notifications: notifications}
}

// Enqueue stores a notification for later delivery.
func (s *Service) Enqueue(ctx context.Context, n *Notification) error {
	if n.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if !n.Type.Valid() {
		return fmt.Errorf("invalid notification type: %s", n.Type)
	}
	if n.Message == "" {
		return fmt.Errorf("message is required")
	}
	return s.notifications.Create(ctx, n)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Notification, error) {
	return s.notifications.GetByID(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Notification, int, error) {
	return s.notifications.ListByPatient(ctx, patientID, limit, offset)
}
