package application

import (
	"context"
	"fmt"
	"log/slog"
)

// EscalationService exposes the secretary's manual intervention queue.
type EscalationService struct {
	escalations EscalationRepository
	logger      *slog.Logger
}

// NewEscalationService wires dependencies for escalation operations.
func NewEscalationService(escalations EscalationRepository, logger *slog.Logger) *EscalationService {
	return &EscalationService{escalations: escalations, logger: defaultLogger(logger)}
}

func (s *EscalationService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "EscalationService", operation, attrs...)
}

// ListEscalations returns pending manual intervention requests, newest first.
// Only secretaries may read the queue.
func (s *EscalationService) ListEscalations(ctx context.Context, principal Principal) ([]Escalation, error) {
	if s == nil {
		return nil, fmt.Errorf("EscalationService is nil")
	}
	if !principal.IsSecretary() {
		return nil, ErrUnauthorized
	}
	return s.escalations.ListEscalations(ctx)
}

// ResolveEscalation removes a handled request from the queue.
func (s *EscalationService) ResolveEscalation(ctx context.Context, principal Principal, id string) (err error) {
	if s == nil {
		return fmt.Errorf("EscalationService is nil")
	}

	logger := s.loggerWith(ctx, "ResolveEscalation",
		"escalation_id", id,
		"actor_id", principal.UserID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "escalation resolution rejected", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "escalation resolved")
	}()

	if !principal.IsSecretary() {
		err = ErrUnauthorized
		return
	}

	err = s.escalations.DeleteEscalation(ctx, id)
	return
}
