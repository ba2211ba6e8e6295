package application

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/example/executive-scheduler/internal/interval"
	"github.com/example/executive-scheduler/internal/notify"
	"github.com/example/executive-scheduler/internal/scheduler"
)

// MeetingService orchestrates validation, conflict admission, and persistence
// for meetings. Admission is all-or-nothing across the organizer and every
// invited attendee: one busy participant rejects the whole booking.
type MeetingService struct {
	meetings    MeetingRepository
	calendar    *BusyCalendar
	users       UserDirectory
	locker      *scheduler.ParticipantLocker
	mailer      notify.Mailer
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewMeetingService wires dependencies for meeting operations.
func NewMeetingService(meetings MeetingRepository, calendar *BusyCalendar, users UserDirectory, locker *scheduler.ParticipantLocker, mailer notify.Mailer, idGenerator func() string, now func() time.Time, logger *slog.Logger) *MeetingService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	if locker == nil {
		locker = scheduler.NewParticipantLocker()
	}
	return &MeetingService{
		meetings:    meetings,
		calendar:    calendar,
		users:       users,
		locker:      locker,
		mailer:      mailer,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

func (s *MeetingService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "MeetingService", operation, attrs...)
}

// ScheduleMeeting validates the request, checks every participant's calendar
// under the participant lock, and persists the meeting when nobody is busy.
func (s *MeetingService) ScheduleMeeting(ctx context.Context, params ScheduleMeetingParams) (meeting Meeting, err error) {
	if s == nil {
		return Meeting{}, fmt.Errorf("MeetingService is nil")
	}
	input := params.Input

	logger := s.loggerWith(ctx, "ScheduleMeeting",
		"organizer_id", params.Principal.UserID,
		"attendee_count", len(input.AttendeeIDs),
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "meeting booking rejected", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("meeting_id", meeting.ID).InfoContext(ctx, "meeting booked")
	}()

	vErr := &ValidationError{}
	if strings.TrimSpace(input.Title) == "" {
		vErr.add("title", "title is required")
	}
	validatePeriod(input.Start, input.End, vErr)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	attendees := uniqueStrings(input.AttendeeIDs)
	attendees = slices.DeleteFunc(attendees, func(id string) bool { return id == params.Principal.UserID })
	participants := uniqueStrings(append([]string{params.Principal.UserID}, attendees...))

	if err = s.ensureUsersExist(ctx, participants); err != nil {
		return
	}

	release := s.locker.Lock(participants)
	defer release()

	proposed := interval.Interval{Start: input.Start, End: input.End}
	busy, err := s.calendar.BusyEvents(ctx, participants, proposed)
	if err != nil {
		return
	}
	if conflicts := scheduler.FindConflicts(busy, proposed, nil); len(conflicts) > 0 {
		err = &ConflictError{Conflicts: conflictsFromEvents(conflicts)}
		return
	}

	createdAt := s.now()
	meeting = Meeting{
		ID:          s.idGenerator(),
		Title:       strings.TrimSpace(input.Title),
		Start:       input.Start,
		End:         input.End,
		Venue:       strings.TrimSpace(input.Venue),
		ProjectName: strings.TrimSpace(input.ProjectName),
		CreatorID:   params.Principal.UserID,
		AttendeeIDs: sortStrings(attendees),
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}

	meeting, err = s.meetings.CreateMeeting(ctx, meeting)
	if err != nil {
		meeting = Meeting{}
		return
	}
	return
}

// RescheduleMeeting moves an existing meeting. Only the creator may move it,
// the new period is re-validated against every participant excluding the
// meeting's own prior interval, and attendees other than the actor are
// notified.
func (s *MeetingService) RescheduleMeeting(ctx context.Context, params RescheduleMeetingParams) (meeting Meeting, err error) {
	if s == nil {
		return Meeting{}, fmt.Errorf("MeetingService is nil")
	}

	logger := s.loggerWith(ctx, "RescheduleMeeting",
		"meeting_id", params.MeetingID,
		"actor_id", params.Principal.UserID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "meeting reschedule rejected", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "meeting rescheduled")
	}()

	vErr := &ValidationError{}
	validatePeriod(params.Start, params.End, vErr)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	existing, err := s.meetings.GetMeeting(ctx, params.MeetingID)
	if err != nil {
		return
	}
	if existing.CreatorID != params.Principal.UserID {
		err = ErrUnauthorized
		return
	}

	participants := existing.Participants()
	release := s.locker.Lock(participants)
	defer release()

	proposed := interval.Interval{Start: params.Start, End: params.End}
	busy, err := s.calendar.BusyEvents(ctx, participants, proposed)
	if err != nil {
		return
	}
	self := scheduler.EventRef{Kind: scheduler.KindMeeting, ID: existing.ID}
	if conflicts := scheduler.FindConflicts(busy, proposed, &self); len(conflicts) > 0 {
		err = &ConflictError{Conflicts: conflictsFromEvents(conflicts)}
		return
	}

	previousStart := existing.Start
	existing.Start = params.Start
	existing.End = params.End
	existing.UpdatedAt = s.now()

	meeting, err = s.meetings.UpdateMeeting(ctx, existing)
	if err != nil {
		meeting = Meeting{}
		return
	}

	s.notifyParticipants(ctx, logger, meeting, params.Principal.UserID,
		fmt.Sprintf("Meeting rescheduled: %s", meeting.Title),
		fmt.Sprintf("The meeting %q has moved from %s to %s.",
			meeting.Title,
			previousStart.Format(interval.DisplayLayout),
			meeting.Start.Format(interval.DisplayLayout),
		),
	)
	return
}

// CancelMeeting removes a meeting. Only the creator may cancel it; attendees
// other than the actor are notified.
func (s *MeetingService) CancelMeeting(ctx context.Context, params CancelMeetingParams) (err error) {
	if s == nil {
		return fmt.Errorf("MeetingService is nil")
	}

	logger := s.loggerWith(ctx, "CancelMeeting",
		"meeting_id", params.MeetingID,
		"actor_id", params.Principal.UserID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "meeting cancellation rejected", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "meeting cancelled")
	}()

	existing, err := s.meetings.GetMeeting(ctx, params.MeetingID)
	if err != nil {
		return
	}
	if existing.CreatorID != params.Principal.UserID {
		err = ErrUnauthorized
		return
	}

	if err = s.meetings.DeleteMeeting(ctx, params.MeetingID); err != nil {
		return
	}

	s.notifyParticipants(ctx, logger, existing, params.Principal.UserID,
		fmt.Sprintf("Meeting cancelled: %s", existing.Title),
		fmt.Sprintf("The meeting %q scheduled for %s has been cancelled.",
			existing.Title,
			existing.Start.Format(interval.DisplayLayout),
		),
	)
	return
}

// GetMeeting returns a meeting visible to the principal. Participants and
// secretaries may read it.
func (s *MeetingService) GetMeeting(ctx context.Context, principal Principal, id string) (Meeting, error) {
	if s == nil {
		return Meeting{}, fmt.Errorf("MeetingService is nil")
	}
	meeting, err := s.meetings.GetMeeting(ctx, id)
	if err != nil {
		return Meeting{}, err
	}
	if !principal.IsSecretary() && !slices.Contains(meeting.Participants(), principal.UserID) {
		return Meeting{}, ErrUnauthorized
	}
	return meeting, nil
}

// DayMeetings lists one user's meetings overlapping the given date.
func (s *MeetingService) DayMeetings(ctx context.Context, userID string, date time.Time) ([]Meeting, error) {
	if s == nil {
		return nil, fmt.Errorf("MeetingService is nil")
	}
	if strings.TrimSpace(userID) == "" {
		vErr := &ValidationError{}
		vErr.add("user_id", "user is required")
		return nil, vErr
	}

	window := dayBounds(date)
	return s.meetings.ListMeetings(ctx, MeetingRepositoryFilter{
		AttendeeIDs: []string{userID},
		StartsAfter: &window.Start,
		EndsBefore:  &window.End,
	})
}

// notifyParticipants delivers a best-effort email to every participant except
// the actor. Failures are logged and swallowed.
func (s *MeetingService) notifyParticipants(ctx context.Context, logger *slog.Logger, meeting Meeting, actorID, subject, body string) {
	if s.mailer == nil || s.users == nil {
		return
	}

	recipients := slices.DeleteFunc(meeting.Participants(), func(id string) bool { return id == actorID })
	if len(recipients) == 0 {
		return
	}

	users, err := s.users.ListUsers(ctx, UserDirectoryFilter{IDs: recipients})
	if err != nil {
		logger.WarnContext(ctx, "failed to resolve notification recipients", "error", err)
		return
	}
	for _, user := range users {
		if sendErr := s.mailer.Send(ctx, notify.Message{To: user.Email, Subject: subject, Body: body}); sendErr != nil {
			logger.WarnContext(ctx, "failed to notify attendee", "recipient", user.Email, "error", sendErr)
		}
	}
}

func (s *MeetingService) ensureUsersExist(ctx context.Context, userIDs []string) error {
	users, err := s.users.ListUsers(ctx, UserDirectoryFilter{IDs: userIDs})
	if err != nil {
		return err
	}
	if len(users) == len(userIDs) {
		return nil
	}
	found := make(map[string]struct{}, len(users))
	for _, u := range users {
		found[u.ID] = struct{}{}
	}
	vErr := &ValidationError{}
	for _, id := range userIDs {
		if _, ok := found[id]; !ok {
			vErr.add("attendee_ids", fmt.Sprintf("unknown user %s", id))
		}
	}
	return vErr
}

func validatePeriod(start, end time.Time, vErr *ValidationError) {
	if start.IsZero() {
		vErr.add("start", "start is required")
	}
	if end.IsZero() {
		vErr.add("end", "end is required")
	}
	if !start.IsZero() && !end.IsZero() && !end.After(start) {
		vErr.add("end", "end must be after start")
	}
}

// dayBounds returns midnight-to-midnight bounds around the given date in its
// own location.
func dayBounds(date time.Time) interval.Interval {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return interval.Interval{Start: start, End: start.AddDate(0, 0, 1)}
}
