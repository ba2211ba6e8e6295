package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/example/executive-scheduler/internal/persistence"
)

// EngagementRepository implements persistence.EngagementRepository using SQLite.
type EngagementRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewEngagementRepository creates a new SQLite engagement repository.
func NewEngagementRepository(pool *ConnectionPool) *EngagementRepository {
	return &EngagementRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

// CreateEngagement inserts a new personal engagement.
func (r *EngagementRepository) CreateEngagement(ctx context.Context, engagement persistence.Engagement) error {
	if engagement.ID == "" || engagement.ExecutiveID == "" {
		return persistence.ErrConstraintViolation
	}
	if !engagement.End.After(engagement.Start) {
		return persistence.ErrConstraintViolation
	}

	now := time.Now().UTC()
	engagement.CreatedAt = now
	engagement.UpdatedAt = now

	query := `
		INSERT INTO engagements (id, executive_id, engagement_start, engagement_end, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.helper.Exec(ctx, query,
		engagement.ID,
		engagement.ExecutiveID,
		formatTime(engagement.Start),
		formatTime(engagement.End),
		engagement.Description,
		formatTime(engagement.CreatedAt),
		formatTime(engagement.UpdatedAt),
	)
	if err != nil {
		return r.mapper.MapError(err)
	}
	return nil
}

// UpdateEngagement updates the period and description of an existing
// engagement. The owner is never changed.
func (r *EngagementRepository) UpdateEngagement(ctx context.Context, engagement persistence.Engagement) error {
	if engagement.ID == "" {
		return persistence.ErrConstraintViolation
	}
	if !engagement.End.After(engagement.Start) {
		return persistence.ErrConstraintViolation
	}

	engagement.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE engagements
		SET engagement_start = ?, engagement_end = ?, description = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.helper.Exec(ctx, query,
		formatTime(engagement.Start),
		formatTime(engagement.End),
		engagement.Description,
		formatTime(engagement.UpdatedAt),
		engagement.ID,
	)
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

// GetEngagement retrieves an engagement by ID.
func (r *EngagementRepository) GetEngagement(ctx context.Context, id string) (persistence.Engagement, error) {
	if id == "" {
		return persistence.Engagement{}, persistence.ErrNotFound
	}
	row := r.helper.QueryRow(ctx, selectEngagementQuery+" WHERE id = ?", id)
	return r.scanEngagement(row)
}

// ListEngagements lists engagements matching the filter, ordered by start.
func (r *EngagementRepository) ListEngagements(ctx context.Context, filter persistence.PeriodFilter) ([]persistence.Engagement, error) {
	query := selectEngagementQuery
	var conditions []string
	var args []interface{}

	if filter.ExecutiveID != "" {
		conditions = append(conditions, "executive_id = ?")
		args = append(args, filter.ExecutiveID)
	}
	if filter.StartsAfter != nil {
		conditions = append(conditions, "engagement_end > ?")
		args = append(args, formatTime(*filter.StartsAfter))
	}
	if filter.EndsBefore != nil {
		conditions = append(conditions, "engagement_start < ?")
		args = append(args, formatTime(*filter.EndsBefore))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY engagement_start ASC, id ASC"

	rows, err := r.helper.Query(ctx, query, args...)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var engagements []persistence.Engagement
	for rows.Next() {
		engagement, err := r.scanEngagement(rows)
		if err != nil {
			return nil, err
		}
		engagements = append(engagements, engagement)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	return engagements, nil
}

// DeleteEngagement removes an engagement by ID.
func (r *EngagementRepository) DeleteEngagement(ctx context.Context, id string) error {
	if id == "" {
		return persistence.ErrNotFound
	}

	result, err := r.helper.Exec(ctx, "DELETE FROM engagements WHERE id = ?", id)
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

const selectEngagementQuery = `
	SELECT id, executive_id, engagement_start, engagement_end, description, created_at, updated_at
	FROM engagements
`

func (r *EngagementRepository) scanEngagement(row rowScanner) (persistence.Engagement, error) {
	var engagement persistence.Engagement
	var startStr, endStr, createdAtStr, updatedAtStr string

	err := row.Scan(
		&engagement.ID,
		&engagement.ExecutiveID,
		&startStr,
		&endStr,
		&engagement.Description,
		&createdAtStr,
		&updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return persistence.Engagement{}, persistence.ErrNotFound
		}
		return persistence.Engagement{}, r.mapper.MapError(err)
	}

	if engagement.Start, err = parseTime(startStr, "engagement_start"); err != nil {
		return persistence.Engagement{}, err
	}
	if engagement.End, err = parseTime(endStr, "engagement_end"); err != nil {
		return persistence.Engagement{}, err
	}
	if engagement.CreatedAt, err = parseTime(createdAtStr, "created_at"); err != nil {
		return persistence.Engagement{}, err
	}
	if engagement.UpdatedAt, err = parseTime(updatedAtStr, "updated_at"); err != nil {
		return persistence.Engagement{}, err
	}

	return engagement, nil
}
