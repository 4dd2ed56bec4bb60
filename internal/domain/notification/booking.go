package notification

import (
	"context"
	"fmt"

	"github.com/clinic/clinic/internal/domain/appointment"
)

// BookingNotifier translates appointment lifecycle events into queued
// notifications. It satisfies the appointment service's Notifier
// dependency.
type BookingNotifier struct {
	svc *Service
}

func NewBookingNotifier(svc *Service) *BookingNotifier {
	return &BookingNotifier{svc: svc}
}

func (b *BookingNotifier) AppointmentBooked(ctx context.Context, a *appointment.Appointment) error {
	return b.svc.Enqueue(ctx, &Notification{
		PatientID:     a.PatientID,
		AppointmentID: &a.ID,
		Type:          TypeConfirmation,
		Message: fmt.Sprintf("Your appointment on %s has been confirmed.",
			a.AppointmentTime.Format("Monday, January 2 2006 at 15:04")),
	})
}

func (b *BookingNotifier) AppointmentCancelled(ctx context.Context, a *appointment.Appointment) error {
	return b.svc.Enqueue(ctx, &Notification{
		PatientID:     a.PatientID,
		AppointmentID: &a.ID,
		Type:          TypeCancellation,
		Message: fmt.Sprintf("Your appointment on %s has been cancelled.",
			a.AppointmentTime.Format("Monday, January 2 2006 at 15:04")),
	})
}
