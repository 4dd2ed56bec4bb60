// Package notify delivers outbound messages to patients. The dispatcher
// in the notification domain picks a sender at startup based on which
// provider credentials are configured.
package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// EmailSender delivers a single email message.
type EmailSender interface {
	SendEmail(ctx context.Context, toEmail, toName, subject, body string) error
}

// SMSSender delivers a single SMS message. The destination number must
// be in E.164 format.
type SMSSender interface {
	SendSMS(ctx context.Context, toNumber, body string) error
}

// NoopSender logs messages instead of delivering them. It is the
// default when no provider credentials are configured.
type NoopSender struct {
	Logger zerolog.Logger
}

func (s *NoopSender) SendEmail(ctx context.Context, toEmail, toName, subject, body string) error {
	s.Logger.Info().
		Str("to", toEmail).
		Str("subject", subject).
		Msg("email delivery skipped: no provider configured")
	return nil
}

func (s *NoopSender) SendSMS(ctx context.Context, toNumber, body string) error {
	s.Logger.Info().
		Str("to", toNumber).
		Msg("sms delivery skipped: no provider configured")
	return nil
}
