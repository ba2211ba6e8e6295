package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/executive-scheduler/internal/persistence"
)

// EscalationRepository implements persistence.EscalationRepository using SQLite.
// The executives involved are stored as a JSON array of name/email pairs.
type EscalationRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewEscalationRepository creates a new SQLite escalation repository.
func NewEscalationRepository(pool *ConnectionPool) *EscalationRepository {
	return &EscalationRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

// CreateEscalation inserts a new manual intervention request.
func (r *EscalationRepository) CreateEscalation(ctx context.Context, escalation persistence.Escalation) error {
	if escalation.ID == "" {
		return persistence.ErrConstraintViolation
	}

	executives, err := json.Marshal(escalation.Executives)
	if err != nil {
		return fmt.Errorf("failed to encode executives: %w", err)
	}

	escalation.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO manual_intervention_requests (id, meeting_date, executives_involved, created_at)
		VALUES (?, ?, ?, ?)
	`

	_, err = r.helper.Exec(ctx, query,
		escalation.ID,
		formatTime(escalation.MeetingDate),
		string(executives),
		formatTime(escalation.CreatedAt),
	)
	if err != nil {
		return r.mapper.MapError(err)
	}
	return nil
}

// GetEscalation retrieves a manual intervention request by ID.
func (r *EscalationRepository) GetEscalation(ctx context.Context, id string) (persistence.Escalation, error) {
	if id == "" {
		return persistence.Escalation{}, persistence.ErrNotFound
	}
	row := r.helper.QueryRow(ctx, selectEscalationQuery+" WHERE id = ?", id)
	return r.scanEscalation(row)
}

// ListEscalations lists manual intervention requests, newest first.
func (r *EscalationRepository) ListEscalations(ctx context.Context) ([]persistence.Escalation, error) {
	rows, err := r.helper.Query(ctx, selectEscalationQuery+" ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var escalations []persistence.Escalation
	for rows.Next() {
		escalation, err := r.scanEscalation(rows)
		if err != nil {
			return nil, err
		}
		escalations = append(escalations, escalation)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	return escalations, nil
}

// DeleteEscalation removes a manual intervention request by ID.
func (r *EscalationRepository) DeleteEscalation(ctx context.Context, id string) error {
	if id == "" {
		return persistence.ErrNotFound
	}

	result, err := r.helper.Exec(ctx, "DELETE FROM manual_intervention_requests WHERE id = ?", id)
	if err != nil {
		return r.mapper.MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}

const selectEscalationQuery = `
	SELECT id, meeting_date, executives_involved, created_at
	FROM manual_intervention_requests
`

func (r *EscalationRepository) scanEscalation(row rowScanner) (persistence.Escalation, error) {
	var escalation persistence.Escalation
	var meetingDateStr, executivesStr, createdAtStr string

	err := row.Scan(
		&escalation.ID,
		&meetingDateStr,
		&executivesStr,
		&createdAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return persistence.Escalation{}, persistence.ErrNotFound
		}
		return persistence.Escalation{}, r.mapper.MapError(err)
	}

	if err := json.Unmarshal([]byte(executivesStr), &escalation.Executives); err != nil {
		return persistence.Escalation{}, fmt.Errorf("failed to decode executives: %w", err)
	}

	if escalation.MeetingDate, err = parseTime(meetingDateStr, "meeting_date"); err != nil {
		return persistence.Escalation{}, err
	}
	if escalation.CreatedAt, err = parseTime(createdAtStr, "created_at"); err != nil {
		return persistence.Escalation{}, err
	}

	return escalation, nil
}
