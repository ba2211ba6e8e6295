package notify

import (
	"context"
	"log/slog"

	"github.com/example/executive-scheduler/internal/logging"
)

// NoopMailer logs messages instead of delivering them. Used when no SMTP
// server is configured.
type NoopMailer struct{}

// NewNoopMailer creates a new no-op mailer.
func NewNoopMailer() *NoopMailer {
	return &NoopMailer{}
}

// Send logs the message and succeeds.
func (m *NoopMailer) Send(ctx context.Context, message Message) error {
	logging.Logger(ctx, nil).DebugContext(ctx, "email delivery disabled, skipping message",
		slog.String("recipient", message.To),
		slog.String("subject", message.Subject),
	)
	return nil
}
