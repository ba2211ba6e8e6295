package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/example/executive-scheduler/internal/notify"
)

// SecretaryService covers secretary-driven outreach to executives.
type SecretaryService struct {
	users  UserDirectory
	mailer notify.Mailer
	logger *slog.Logger
}

// NewSecretaryService constructs a SecretaryService.
func NewSecretaryService(users UserDirectory, mailer notify.Mailer, logger *slog.Logger) *SecretaryService {
	return &SecretaryService{
		users:  users,
		mailer: mailer,
		logger: defaultLogger(logger),
	}
}

func (s *SecretaryService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "SecretaryService", operation, attrs...)
}

// Broadcast sends an email to the selected executives, or to every executive
// when no recipients are named. Returns the number of recipients reached.
func (s *SecretaryService) Broadcast(ctx context.Context, params BroadcastParams) (sent int, err error) {
	if s == nil {
		err = fmt.Errorf("SecretaryService is nil")
		return
	}

	logger := s.loggerWith(ctx, "Broadcast",
		"user_id", params.Principal.UserID,
		"recipient_count", len(params.ExecutiveIDs),
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "broadcast failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("sent", sent).InfoContext(ctx, "broadcast succeeded")
	}()

	if !params.Principal.IsSecretary() {
		err = ErrUnauthorized
		return
	}

	validation := &ValidationError{}
	subject := strings.TrimSpace(params.Subject)
	body := strings.TrimSpace(params.Body)
	if subject == "" {
		validation.add("subject", "subject is required")
	}
	if body == "" {
		validation.add("body", "body is required")
	}
	if validation.HasErrors() {
		err = validation
		return
	}

	ids := uniqueStrings(params.ExecutiveIDs)
	filter := UserDirectoryFilter{Role: RoleExecutive}
	if len(ids) > 0 {
		filter = UserDirectoryFilter{IDs: ids}
	}

	var recipients []User
	recipients, err = s.users.ListUsers(ctx, filter)
	if err != nil {
		return
	}
	if len(ids) > 0 && len(recipients) != len(ids) {
		validation.add("executive_ids", "one or more executives do not exist")
		err = validation
		return
	}

	if params.Date != nil {
		body = fmt.Sprintf("Regarding %s:\n\n%s", params.Date.Format("Mon, Jan 2, 2006"), body)
	}

	for _, recipient := range recipients {
		message := notify.Message{
			To:      recipient.Email,
			Subject: subject,
			Body:    body,
		}
		if sendErr := s.mailer.Send(ctx, message); sendErr != nil {
			logger.WarnContext(ctx, "failed to send broadcast email",
				"recipient_id", recipient.ID,
				"error", sendErr,
			)
			continue
		}
		sent++
	}

	return sent, nil
}
