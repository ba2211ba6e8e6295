package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/example/executive-scheduler/internal/application"
)

// TokenResolver maps a bearer token to its acting principal.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (application.Principal, error)
}

// RequireSession rejects requests that do not carry a live session token and
// stores the resolved principal on the request context.
func RequireSession(resolver TokenResolver, logger *slog.Logger) func(http.Handler) http.Handler {
	responder := newResponder(logger)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractTokenFromRequest(r)
			if token == "" {
				responder.writeJSON(r.Context(), w, http.StatusUnauthorized, errorResponse{
					ErrorCode: "MISSING_TOKEN",
					Message:   errMissingSessionToken.Error(),
				})
				return
			}

			principal, err := resolver.ResolveToken(r.Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, application.ErrUnauthorized):
					responder.writeJSON(r.Context(), w, http.StatusUnauthorized, errorResponse{
						ErrorCode: "INVALID_TOKEN",
						Message:   "session token is not recognized",
					})
				case errors.Is(err, application.ErrSessionExpired),
					errors.Is(err, application.ErrSessionRevoked):
					responder.handleServiceError(r.Context(), w, err)
				default:
					responder.writeJSON(r.Context(), w, http.StatusInternalServerError, errorResponse{Message: "session validation failed"})
				}
				return
			}

			ctx := ContextWithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSecretary rejects authenticated principals that do not hold the
// secretary role. It must run behind RequireSession.
func RequireSecretary(logger *slog.Logger) func(http.Handler) http.Handler {
	responder := newResponder(logger)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok || !principal.IsSecretary() {
				responder.writeJSON(r.Context(), w, http.StatusForbidden, errorResponse{
					ErrorCode: "FORBIDDEN",
					Message:   "this operation requires the secretary role",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestLogger attaches a request scoped logger to the context and logs
// request start and completion.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	var counter atomic.Uint64

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := counter.Add(1)
			logger := base.With(
				"request_id", id,
				"method", r.Method,
				"path", r.URL.Path,
			)

			ctx := ContextWithLogger(r.Context(), logger)
			start := time.Now()
			logger.InfoContext(ctx, "request started")
			next.ServeHTTP(w, r.WithContext(ctx))
			logger.InfoContext(ctx, "request completed", "duration", time.Since(start))
		})
	}
}
