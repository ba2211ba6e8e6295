package sqlite

import (
	"context"
	"fmt"
)

// Timestamps are stored as RFC3339 UTC text throughout.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		role          TEXT NOT NULL CHECK (role IN ('executive', 'secretary')),
		password_hash TEXT NOT NULL,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL REFERENCES users(id),
		token      TEXT NOT NULL UNIQUE,
		expires_at TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		revoked_at TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS meetings (
		id            TEXT PRIMARY KEY,
		title         TEXT NOT NULL,
		start_time    TEXT NOT NULL,
		end_time      TEXT NOT NULL,
		venue         TEXT,
		project_name  TEXT,
		created_by    TEXT NOT NULL REFERENCES users(id),
		reminder_sent INTEGER NOT NULL DEFAULT 0,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL,
		CHECK (end_time > start_time)
	)`,
	`CREATE TABLE IF NOT EXISTS meeting_attendees (
		meeting_id TEXT NOT NULL REFERENCES meetings(id),
		user_id    TEXT NOT NULL REFERENCES users(id),
		PRIMARY KEY (meeting_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS leaves (
		id           TEXT PRIMARY KEY,
		executive_id TEXT NOT NULL REFERENCES users(id),
		leave_start  TEXT NOT NULL,
		leave_end    TEXT NOT NULL,
		reason       TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL,
		CHECK (leave_end > leave_start)
	)`,
	`CREATE TABLE IF NOT EXISTS engagements (
		id               TEXT PRIMARY KEY,
		executive_id     TEXT NOT NULL REFERENCES users(id),
		engagement_start TEXT NOT NULL,
		engagement_end   TEXT NOT NULL,
		description      TEXT NOT NULL DEFAULT '',
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL,
		CHECK (engagement_end > engagement_start)
	)`,
	`CREATE TABLE IF NOT EXISTS manual_intervention_requests (
		id                  TEXT PRIMARY KEY,
		meeting_date        TEXT NOT NULL,
		executives_involved TEXT NOT NULL,
		created_at          TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_meetings_time ON meetings(start_time, end_time)`,
	`CREATE INDEX IF NOT EXISTS idx_meeting_attendees_user ON meeting_attendees(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_leaves_executive ON leaves(executive_id, leave_start)`,
	`CREATE INDEX IF NOT EXISTS idx_engagements_executive ON engagements(executive_id, engagement_start)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_token ON sessions(token)`,
}

// Migrate creates the schema when it does not exist yet. Statements are
// idempotent so the migration can run on every startup.
func Migrate(ctx context.Context, pool *ConnectionPool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.DB().ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
