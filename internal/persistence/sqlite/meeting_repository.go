package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/example/executive-scheduler/internal/persistence"
)

// MeetingRepository implements persistence.MeetingRepository using SQLite.
type MeetingRepository struct {
	pool   *ConnectionPool
	helper *QueryHelper
	mapper *ErrorMapper
}

// NewMeetingRepository creates a new SQLite meeting repository.
func NewMeetingRepository(pool *ConnectionPool) *MeetingRepository {
	return &MeetingRepository{
		pool:   pool,
		helper: NewQueryHelper(pool),
		mapper: NewErrorMapper(),
	}
}

// CreateMeeting inserts a new meeting with its attendees.
func (r *MeetingRepository) CreateMeeting(ctx context.Context, meeting persistence.Meeting) error {
	if meeting.ID == "" {
		return persistence.ErrConstraintViolation
	}
	if !meeting.End.After(meeting.Start) {
		return persistence.ErrConstraintViolation
	}

	now := time.Now().UTC()
	meeting.CreatedAt = now
	meeting.UpdatedAt = now

	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO meetings (id, title, start_time, end_time, venue, project_name, created_by, reminder_sent, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`

		_, err := r.helper.ExecTx(tx, query,
			meeting.ID,
			meeting.Title,
			formatTime(meeting.Start),
			formatTime(meeting.End),
			nullableString(meeting.Venue),
			nullableString(meeting.ProjectName),
			meeting.CreatorID,
			meeting.ReminderSent,
			formatTime(meeting.CreatedAt),
			formatTime(meeting.UpdatedAt),
		)
		if err != nil {
			return r.mapper.MapError(err)
		}

		return r.insertAttendees(tx, meeting.ID, meeting.Attendees)
	})
}

// UpdateMeeting updates an existing meeting and replaces its attendee set.
// The creator is never changed, and a time change resets the reminder flag.
func (r *MeetingRepository) UpdateMeeting(ctx context.Context, meeting persistence.Meeting) error {
	if meeting.ID == "" {
		return persistence.ErrConstraintViolation
	}
	if !meeting.End.After(meeting.Start) {
		return persistence.ErrConstraintViolation
	}

	meeting.UpdatedAt = time.Now().UTC()

	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		var currentStart string
		err := r.helper.QueryRowTx(tx, "SELECT start_time FROM meetings WHERE id = ?", meeting.ID).Scan(&currentStart)
		if err != nil {
			if err == sql.ErrNoRows {
				return persistence.ErrNotFound
			}
			return r.mapper.MapError(err)
		}

		reminderSent := meeting.ReminderSent
		if currentStart != formatTime(meeting.Start) {
			reminderSent = false
		}

		query := `
			UPDATE meetings
			SET title = ?, start_time = ?, end_time = ?, venue = ?, project_name = ?, reminder_sent = ?, updated_at = ?
			WHERE id = ?
		`

		result, err := r.helper.ExecTx(tx, query,
			meeting.Title,
			formatTime(meeting.Start),
			formatTime(meeting.End),
			nullableString(meeting.Venue),
			nullableString(meeting.ProjectName),
			reminderSent,
			formatTime(meeting.UpdatedAt),
			meeting.ID,
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

		if _, err := r.helper.ExecTx(tx, "DELETE FROM meeting_attendees WHERE meeting_id = ?", meeting.ID); err != nil {
			return r.mapper.MapError(err)
		}
		return r.insertAttendees(tx, meeting.ID, meeting.Attendees)
	})
}

// GetMeeting retrieves a meeting with its attendees by ID.
func (r *MeetingRepository) GetMeeting(ctx context.Context, id string) (persistence.Meeting, error) {
	if id == "" {
		return persistence.Meeting{}, persistence.ErrNotFound
	}

	row := r.helper.QueryRow(ctx, selectMeetingQuery+" WHERE m.id = ?", id)
	meeting, err := r.scanMeeting(row)
	if err != nil {
		return persistence.Meeting{}, err
	}

	attendees, err := r.loadAttendees(ctx, id)
	if err != nil {
		return persistence.Meeting{}, err
	}
	meeting.Attendees = attendees

	return meeting, nil
}

// ListMeetings lists meetings matching the filter, ordered by start time.
func (r *MeetingRepository) ListMeetings(ctx context.Context, filter persistence.MeetingFilter) ([]persistence.Meeting, error) {
	query, args := r.buildListQuery(filter)

	rows, err := r.helper.Query(ctx, query, args...)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var meetings []persistence.Meeting
	for rows.Next() {
		meeting, err := r.scanMeeting(rows)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, meeting)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	for i := range meetings {
		attendees, err := r.loadAttendees(ctx, meetings[i].ID)
		if err != nil {
			return nil, err
		}
		meetings[i].Attendees = attendees
	}

	return meetings, nil
}

// DeleteMeeting removes a meeting and its attendance rows.
func (r *MeetingRepository) DeleteMeeting(ctx context.Context, id string) error {
	if id == "" {
		return persistence.ErrNotFound
	}

	return r.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := r.helper.ExecTx(tx, "DELETE FROM meeting_attendees WHERE meeting_id = ?", id); err != nil {
			return r.mapper.MapError(err)
		}

		result, err := r.helper.ExecTx(tx, "DELETE FROM meetings WHERE id = ?", id)
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
	})
}

// ListPendingReminders returns meetings starting after the reference instant
// whose reminder has not yet been sent.
func (r *MeetingRepository) ListPendingReminders(ctx context.Context, reference time.Time) ([]persistence.Meeting, error) {
	query := selectMeetingQuery + " WHERE m.start_time > ? AND m.reminder_sent = 0 ORDER BY m.start_time ASC, m.id ASC"

	rows, err := r.helper.Query(ctx, query, formatTime(reference))
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var meetings []persistence.Meeting
	for rows.Next() {
		meeting, err := r.scanMeeting(rows)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, meeting)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	for i := range meetings {
		attendees, err := r.loadAttendees(ctx, meetings[i].ID)
		if err != nil {
			return nil, err
		}
		meetings[i].Attendees = attendees
	}

	return meetings, nil
}

// MarkReminderSent flags the meeting so the reminder is not sent again.
func (r *MeetingRepository) MarkReminderSent(ctx context.Context, id string) error {
	result, err := r.helper.Exec(ctx,
		"UPDATE meetings SET reminder_sent = 1, updated_at = ? WHERE id = ?",
		formatTime(time.Now().UTC()), id,
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

const selectMeetingQuery = `
	SELECT m.id, m.title, m.start_time, m.end_time, m.venue, m.project_name, m.created_by, m.reminder_sent, m.created_at, m.updated_at
	FROM meetings m
`

func (r *MeetingRepository) scanMeeting(row rowScanner) (persistence.Meeting, error) {
	var meeting persistence.Meeting
	var startStr, endStr, createdAtStr, updatedAtStr string
	var venue, projectName sql.NullString

	err := row.Scan(
		&meeting.ID,
		&meeting.Title,
		&startStr,
		&endStr,
		&venue,
		&projectName,
		&meeting.CreatorID,
		&meeting.ReminderSent,
		&createdAtStr,
		&updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return persistence.Meeting{}, persistence.ErrNotFound
		}
		return persistence.Meeting{}, r.mapper.MapError(err)
	}

	if venue.Valid {
		meeting.Venue = &venue.String
	}
	if projectName.Valid {
		meeting.ProjectName = &projectName.String
	}

	if meeting.Start, err = parseTime(startStr, "start_time"); err != nil {
		return persistence.Meeting{}, err
	}
	if meeting.End, err = parseTime(endStr, "end_time"); err != nil {
		return persistence.Meeting{}, err
	}
	if meeting.CreatedAt, err = parseTime(createdAtStr, "created_at"); err != nil {
		return persistence.Meeting{}, err
	}
	if meeting.UpdatedAt, err = parseTime(updatedAtStr, "updated_at"); err != nil {
		return persistence.Meeting{}, err
	}

	return meeting, nil
}

func (r *MeetingRepository) insertAttendees(tx *sql.Tx, meetingID string, attendees []string) error {
	seen := make(map[string]struct{}, len(attendees))
	for _, attendee := range attendees {
		attendee = strings.TrimSpace(attendee)
		if attendee == "" {
			continue
		}
		if _, ok := seen[attendee]; ok {
			continue
		}
		seen[attendee] = struct{}{}

		_, err := r.helper.ExecTx(tx,
			"INSERT INTO meeting_attendees (meeting_id, user_id) VALUES (?, ?)",
			meetingID, attendee)
		if err != nil {
			return r.mapper.MapError(err)
		}
	}
	return nil
}

func (r *MeetingRepository) loadAttendees(ctx context.Context, meetingID string) ([]string, error) {
	rows, err := r.helper.Query(ctx,
		"SELECT user_id FROM meeting_attendees WHERE meeting_id = ? ORDER BY user_id ASC",
		meetingID)
	if err != nil {
		return nil, r.mapper.MapError(err)
	}
	defer rows.Close()

	var attendees []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, r.mapper.MapError(err)
		}
		attendees = append(attendees, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapper.MapError(err)
	}

	return attendees, nil
}

func (r *MeetingRepository) buildListQuery(filter persistence.MeetingFilter) (string, []interface{}) {
	baseQuery := "SELECT DISTINCT m.id, m.title, m.start_time, m.end_time, m.venue, m.project_name, m.created_by, m.reminder_sent, m.created_at, m.updated_at FROM meetings m"

	var conditions []string
	var args []interface{}

	if len(filter.AttendeeIDs) > 0 {
		baseQuery += " LEFT JOIN meeting_attendees ma ON m.id = ma.meeting_id"

		placeholders := make([]string, len(filter.AttendeeIDs))
		for i, attendeeID := range filter.AttendeeIDs {
			placeholders[i] = "?"
			args = append(args, attendeeID)
		}

		condition := fmt.Sprintf("(ma.user_id IN (%s) OR m.created_by IN (%s))",
			strings.Join(placeholders, ","), strings.Join(placeholders, ","))
		conditions = append(conditions, condition)

		for _, attendeeID := range filter.AttendeeIDs {
			args = append(args, attendeeID)
		}
	}

	if filter.StartsAfter != nil {
		conditions = append(conditions, "m.end_time > ?")
		args = append(args, formatTime(*filter.StartsAfter))
	}
	if filter.EndsBefore != nil {
		conditions = append(conditions, "m.start_time < ?")
		args = append(args, formatTime(*filter.EndsBefore))
	}

	if len(conditions) > 0 {
		baseQuery += " WHERE " + strings.Join(conditions, " AND ")
	}
	baseQuery += " ORDER BY m.start_time ASC, m.id ASC"

	return baseQuery, args
}
