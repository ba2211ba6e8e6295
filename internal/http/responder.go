package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/executive-scheduler/internal/application"
)

var (
	errBadRequestBody       = errors.New("the request body could not be parsed")
	errInvalidMeetingID     = errors.New("a meeting id is required")
	errInvalidLeaveID       = errors.New("a leave id is required")
	errInvalidEngagementID  = errors.New("an engagement id is required")
	errInvalidEscalationID  = errors.New("an escalation id is required")
	errMissingSessionToken  = errors.New("a session token is required")
	errInvalidDateParameter = errors.New("date must be provided as YYYY-MM-DD")
)

type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}

	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	message := http.StatusText(status)
	if err != nil {
		if msg := strings.TrimSpace(err.Error()); msg != "" {
			message = msg
		}
		r.loggerFor(ctx).ErrorContext(ctx, "request failed", "status", status, "error", err)
	}

	r.writeJSON(ctx, w, status, errorResponse{Message: message})
}

func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		r.writeError(ctx, w, http.StatusInternalServerError, errors.New("unknown error"))
		return
	}

	switch {
	case errors.Is(err, application.ErrUnauthorized):
		r.writeJSON(ctx, w, http.StatusForbidden, errorResponse{
			ErrorCode: "FORBIDDEN",
			Message:   "you do not have permission to perform this operation",
		})
	case errors.Is(err, application.ErrNotFound):
		r.writeJSON(ctx, w, http.StatusNotFound, errorResponse{Message: "the requested resource was not found"})
	case errors.Is(err, application.ErrAlreadyExists):
		r.writeJSON(ctx, w, http.StatusBadRequest, errorResponse{
			ErrorCode: "ALREADY_EXISTS",
			Message:   "the resource already exists",
		})
	case errors.Is(err, application.ErrInvalidCredentials):
		r.writeJSON(ctx, w, http.StatusUnauthorized, errorResponse{
			ErrorCode: "INVALID_CREDENTIALS",
			Message:   "email or password is incorrect",
		})
	case errors.Is(err, application.ErrSessionExpired):
		r.writeJSON(ctx, w, http.StatusUnauthorized, errorResponse{
			ErrorCode: "SESSION_EXPIRED",
			Message:   "the session has expired, please log in again",
		})
	case errors.Is(err, application.ErrSessionRevoked):
		r.writeJSON(ctx, w, http.StatusUnauthorized, errorResponse{
			ErrorCode: "SESSION_REVOKED",
			Message:   "the session has been revoked, please log in again",
		})
	case errors.Is(err, application.ErrNoAvailability):
		r.writeJSON(ctx, w, http.StatusNotFound, errorResponse{
			ErrorCode: "NO_AVAILABILITY",
			Message:   "no free slot remains on the requested day",
		})
	default:
		var vErr *application.ValidationError
		if errors.As(err, &vErr) {
			r.writeJSON(ctx, w, http.StatusBadRequest, errorResponse{
				ErrorCode: "VALIDATION_FAILED",
				Message:   "the request is invalid",
				Errors:    vErr.FieldErrors,
			})
			return
		}

		var conflictErr *application.ConflictError
		if errors.As(err, &conflictErr) {
			r.writeJSON(ctx, w, http.StatusBadRequest, errorResponse{
				ErrorCode: "SCHEDULING_CONFLICT",
				Message:   "the requested period overlaps existing commitments",
				Conflicts: toConflictDTOs(conflictErr.Conflicts),
			})
			return
		}

		r.writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Message: "an internal error occurred"})
	}
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	if logger := LoggerFromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}

type errorResponse struct {
	ErrorCode string            `json:"error_code,omitempty"`
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors,omitempty"`
	Conflicts []conflictDTO     `json:"conflicts,omitempty"`
}

type conflictDTO struct {
	Kind    string `json:"kind"`
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
	Title   string `json:"title,omitempty"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

func toConflictDTOs(conflicts []application.Conflict) []conflictDTO {
	if len(conflicts) == 0 {
		return nil
	}
	dtos := make([]conflictDTO, 0, len(conflicts))
	for _, conflict := range conflicts {
		dtos = append(dtos, conflictDTO{
			Kind:    conflict.Kind,
			ID:      conflict.ID,
			OwnerID: conflict.OwnerID,
			Title:   conflict.Title,
			Start:   formatTimestamp(conflict.Start),
			End:     formatTimestamp(conflict.End),
		})
	}
	return dtos
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTimestamp accepts either a datetime-local form value or an RFC 3339
// string.
func parseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse("2006-01-02T15:04", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(value))
}
