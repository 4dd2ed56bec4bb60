package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clinic/clinic/internal/domain/patient"
	"github.com/clinic/clinic/internal/platform/notify"
)

const dispatchBatchSize = 50

// PatientDirectory resolves delivery addresses for queued
// notifications.
type PatientDirectory interface {
	Get(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
}

// Dispatcher drains the pending notification queue on an interval.
// Email is the delivery channel of record; patients with a phone number
// on file additionally get the message as an SMS.
type Dispatcher struct {
	notifications Repository
	patients      PatientDirectory
	email         notify.EmailSender
	sms           notify.SMSSender
	interval      time.Duration
	logger        zerolog.Logger
}

func NewDispatcher(
	notifications Repository,
	patients PatientDirectory,
	email notify.EmailSender,
	sms notify.SMSSender,
	interval time.Duration,
	logger zerolog.Logger,
) *Dispatcher {
	return &Dispatcher{
		notifications: notifications,
		patients:      patients,
		email:         email,
		sms:           sms,
		interval:      interval,
		logger:        logger,
	}
}

// Start runs the dispatch loop until the context is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := d.DispatchPending(ctx); err != nil {
				d.logger.Error().Err(err).Msg("notification dispatch pass failed")
			}
		}
	}
}

// DispatchPending delivers one batch of pending notifications. Each
// notification is marked SENT or FAILED individually, so one bad
// address does not block the queue.
func (d *Dispatcher) DispatchPending(ctx context.Context) error {
	pending, err := d.notifications.ListPending(ctx, dispatchBatchSize)
	if err != nil {
		return err
	}

	for _, n := range pending {
		if err := d.deliver(ctx, n); err != nil {
			d.logger.Warn().Err(err).
				Str("notification_id", n.ID.String()).
				Str("patient_id", n.PatientID.String()).
				Msg("notification delivery failed")
			if err := d.notifications.MarkFailed(ctx, n.ID); err != nil {
				return err
			}
			continue
		}
		if err := d.notifications.MarkSent(ctx, n.ID); err != nil {
			return err
		}
	}
	return nil
}

// deliver sends the notification by email and, when the patient has a
// phone number, by SMS. The SMS is best effort: a failed text never
// fails a notification whose email went out.
func (d *Dispatcher) deliver(ctx context.Context, n *Notification) error {
	p, err := d.patients.Get(ctx, n.PatientID)
	if err != nil {
		return err
	}
	if err := d.email.SendEmail(ctx, p.Email, p.FullName(), subjectFor(n.Type), n.Message); err != nil {
		return err
	}
	if p.Phone != nil && *p.Phone != "" {
		if err := d.sms.SendSMS(ctx, *p.Phone, n.Message); err != nil {
			d.logger.Warn().Err(err).
				Str("notification_id", n.ID.String()).
				Str("patient_id", n.PatientID.String()).
				Msg("sms delivery failed")
		}
	}
	return nil
}

func subjectFor(t Type) string {
	switch t {
	case TypeConfirmation:
		return "Appointment confirmed"
	case TypeCancellation:
		return "Appointment cancelled"
	case TypeReminder:
		return "Appointment reminder"
	}
	return "Message from your clinic"
}
