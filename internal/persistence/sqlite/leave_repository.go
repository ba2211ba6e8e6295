package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/example/executive-scheduler/internal/persistence"
)

// LeaveRepository implements persistence.LeaveRepository using SQLite.
type LeaveRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewLeaveRepository creates a new SQLite leave repository.
func NewLeaveRepository(pool *ConnectionPool) *LeaveRepository {
	return &LeaveRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

// CreateLeave inserts a new leave period.
func (r *LeaveRepository) CreateLeave(ctx context.Context, leave persistence.Leave) error {
	if leave.ID == "" || leave.ExecutiveID == "" {
		return persistence.ErrConstraintViolation
	}
	if !leave.End.After(leave.Start) {
		return persistence.ErrConstraintViolation
	}

	now := time.Now().UTC()
	leave.CreatedAt = now
	leave.UpdatedAt = now

	query := `
		INSERT INTO leaves (id, executive_id, leave_start, leave_end, reason, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.helper.Exec(ctx, query,
		leave.ID,
		leave.ExecutiveID,
		formatTime(leave.Start),
		formatTime(leave.End),
		leave.Reason,
		formatTime(leave.CreatedAt),
		formatTime(leave.UpdatedAt),
	)
	if err != nil {
		return r.mapper.MapError(err)
	}
	return nil
}

// UpdateLeave updates the period and reason of an existing leave. The owner
// is never changed.
func (r *LeaveRepository) UpdateLeave(ctx context.Context, leave persistence.Leave) error {
	if leave.ID == "" {
		return persistence.ErrConstraintViolation
	}
	if !leave.End.After(leave.Start) {
		return persistence.ErrConstraintViolation
	}

	leave.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE leaves
		SET leave_start = ?, leave_end = ?, reason = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.helper.Exec(ctx, query,
		formatTime(leave.Start),
		formatTime(leave.End),
		leave.Reason,
		formatTime(leave.UpdatedAt),
		leave.ID,
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

// GetLeave retrieves a leave by ID.
func (r *LeaveRepository) GetLeave(ctx context.Context, id string) (persistence.Leave, error) {
	if id == "" {
		return persistence.Leave{}, persistence.ErrNotFound
	}
	row := r.helper.QueryRow(ctx, selectLeaveQuery+" WHERE id = ?", id)
	return r.scanLeave(row)
}

// ListLeaves lists leaves matching the filter, ordered by start.
func (r *LeaveRepository) ListLeaves(ctx context.Context, filter persistence.PeriodFilter) ([]persistence.Leave, error) {
	query := selectLeaveQuery
	var conditions []string
	var args []interface{}

	if filter.ExecutiveID != "" {
		conditions = append(conditions, "executive_id = ?")
		args = append(args, filter.ExecutiveID)
	}
	if filter.StartsAfter != nil {
		conditions = append(conditions, "leave_end > ?")
		args = append(args, formatTime(*filter.StartsAfter))
	}
	if filter.EndsBefore != nil {
		conditions = append(conditions, "leave_start < ?")
		args = append(args, formatTime(*filter.EndsBefore))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY leave_start ASC, id ASC"

	rows, err := r.helper.Query(ctx, query, args...)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var leaves []persistence.Leave
	for rows.Next() {
		leave, err := r.scanLeave(rows)
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, leave)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	return leaves, nil
}

// DeleteLeave removes a leave by ID.
func (r *LeaveRepository) DeleteLeave(ctx context.Context, id string) error {
	if id == "" {
		return persistence.ErrNotFound
	}

	result, err := r.helper.Exec(ctx, "DELETE FROM leaves WHERE id = ?", id)
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

const selectLeaveQuery = `
	SELECT id, executive_id, leave_start, leave_end, reason, created_at, updated_at
	FROM leaves
`

func (r *LeaveRepository) scanLeave(row rowScanner) (persistence.Leave, error) {
	var leave persistence.Leave
	var startStr, endStr, createdAtStr, updatedAtStr string

	err := row.Scan(
		&leave.ID,
		&leave.ExecutiveID,
		&startStr,
		&endStr,
		&leave.Reason,
		&createdAtStr,
		&updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return persistence.Leave{}, persistence.ErrNotFound
		}
		return persistence.Leave{}, r.mapper.MapError(err)
	}

	if leave.Start, err = parseTime(startStr, "leave_start"); err != nil {
		return persistence.Leave{}, err
	}
	if leave.End, err = parseTime(endStr, "leave_end"); err != nil {
		return persistence.Leave{}, err
	}
	if leave.CreatedAt, err = parseTime(createdAtStr, "created_at"); err != nil {
		return persistence.Leave{}, err
	}
	if leave.UpdatedAt, err = parseTime(updatedAtStr, "updated_at"); err != nil {
		return persistence.Leave{}, err
	}

	return leave, nil
}
