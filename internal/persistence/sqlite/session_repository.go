package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/executive-scheduler/internal/persistence"
)

// SessionRepository implements persistence.SessionRepository using SQLite.
type SessionRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewSessionRepository creates a new SQLite session repository.
func NewSessionRepository(pool *ConnectionPool) *SessionRepository {
	return &SessionRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

// CreateSession inserts a new session record.
func (r *SessionRepository) CreateSession(ctx context.Context, session persistence.Session) (persistence.Session, error) {
	if session.ID == "" || session.Token == "" {
		return persistence.Session{}, persistence.ErrConstraintViolation
	}

	now := time.Now().UTC()
	session.CreatedAt = now
	session.UpdatedAt = now

	query := `
		INSERT INTO sessions (id, user_id, token, expires_at, created_at, updated_at, revoked_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.helper.Exec(ctx, query,
		session.ID,
		session.UserID,
		session.Token,
		formatTime(session.ExpiresAt),
		formatTime(session.CreatedAt),
		formatTime(session.UpdatedAt),
		nullableTime(session.RevokedAt),
	)
	if err != nil {
		return persistence.Session{}, r.mapper.MapError(err)
	}

	return session, nil
}

// GetSession retrieves a session by its opaque token.
func (r *SessionRepository) GetSession(ctx context.Context, token string) (persistence.Session, error) {
	if token == "" {
		return persistence.Session{}, persistence.ErrNotFound
	}

	query := `
		SELECT id, user_id, token, expires_at, created_at, updated_at, revoked_at
		FROM sessions
		WHERE token = ?
	`

	var session persistence.Session
	var expiresAtStr, createdAtStr, updatedAtStr string
	var revokedAt sql.NullString

	err := r.helper.QueryRow(ctx, query, token).Scan(
		&session.ID,
		&session.UserID,
		&session.Token,
		&expiresAtStr,
		&createdAtStr,
		&updatedAtStr,
		&revokedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return persistence.Session{}, persistence.ErrNotFound
		}
		return persistence.Session{}, r.mapper.MapError(err)
	}

	if session.ExpiresAt, err = parseTime(expiresAtStr, "expires_at"); err != nil {
		return persistence.Session{}, err
	}
	if session.CreatedAt, err = parseTime(createdAtStr, "created_at"); err != nil {
		return persistence.Session{}, err
	}
	if session.UpdatedAt, err = parseTime(updatedAtStr, "updated_at"); err != nil {
		return persistence.Session{}, err
	}
	if revokedAt.Valid {
		t, err := parseTime(revokedAt.String, "revoked_at")
		if err != nil {
			return persistence.Session{}, err
		}
		session.RevokedAt = &t
	}

	return session, nil
}

// RevokeSession marks the session revoked at the given instant.
func (r *SessionRepository) RevokeSession(ctx context.Context, token string, revokedAt time.Time) (persistence.Session, error) {
	if token == "" {
		return persistence.Session{}, persistence.ErrNotFound
	}

	query := `
		UPDATE sessions
		SET revoked_at = ?, updated_at = ?
		WHERE token = ? AND revoked_at IS NULL
	`

	result, err := r.helper.Exec(ctx, query,
		formatTime(revokedAt),
		formatTime(time.Now().UTC()),
		token,
	)
	if err != nil {
		return persistence.Session{}, r.mapper.MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return persistence.Session{}, r.mapper.MapError(err)
	}
	if rowsAffected == 0 {
		return persistence.Session{}, persistence.ErrNotFound
	}

	return r.GetSession(ctx, token)
}

// DeleteExpiredSessions removes sessions whose expiry precedes the reference instant.
func (r *SessionRepository) DeleteExpiredSessions(ctx context.Context, reference time.Time) error {
	_, err := r.helper.Exec(ctx,
		"DELETE FROM sessions WHERE expires_at < ?",
		formatTime(reference),
	)
	if err != nil {
		return r.mapper.MapError(err)
	}
	return nil
}
