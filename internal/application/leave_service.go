package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/executive-scheduler/internal/interval"
	"github.com/example/executive-scheduler/internal/notify"
	"github.com/example/executive-scheduler/internal/scheduler"
)

// LeaveService records leave periods, guarding them against the owner's own
// meetings, leaves, and engagements.
type LeaveService struct {
	leaves      LeaveRepository
	calendar    *BusyCalendar
	users       UserDirectory
	locker      *scheduler.ParticipantLocker
	mailer      notify.Mailer
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewLeaveService wires dependencies for leave operations.
func NewLeaveService(leaves LeaveRepository, calendar *BusyCalendar, users UserDirectory, locker *scheduler.ParticipantLocker, mailer notify.Mailer, idGenerator func() string, now func() time.Time, logger *slog.Logger) *LeaveService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	if locker == nil {
		locker = scheduler.NewParticipantLocker()
	}
	return &LeaveService{
		leaves:      leaves,
		calendar:    calendar,
		users:       users,
		locker:      locker,
		mailer:      mailer,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

func (s *LeaveService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "LeaveService", operation, attrs...)
}

// CreateLeave records a leave for an executive. The actor must be the owner
// or a secretary booking on their behalf.
func (s *LeaveService) CreateLeave(ctx context.Context, params CreatePeriodParams) (leave Leave, err error) {
	if s == nil {
		return Leave{}, fmt.Errorf("LeaveService is nil")
	}
	input := params.Input

	ownerID := strings.TrimSpace(input.ExecutiveID)
	if ownerID == "" {
		ownerID = params.Principal.UserID
	}

	logger := s.loggerWith(ctx, "CreateLeave",
		"executive_id", ownerID,
		"actor_id", params.Principal.UserID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "leave booking rejected", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("leave_id", leave.ID).InfoContext(ctx, "leave recorded")
	}()

	if ownerID != params.Principal.UserID && !params.Principal.IsSecretary() {
		err = ErrUnauthorized
		return
	}

	vErr := &ValidationError{}
	validatePeriod(input.Start, input.End, vErr)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	owner, err := s.users.GetUser(ctx, ownerID)
	if err != nil {
		return
	}

	release := s.locker.Lock([]string{ownerID})
	defer release()

	proposed := interval.Interval{Start: input.Start, End: input.End}
	if err = s.ensureOwnerFree(ctx, ownerID, proposed, nil); err != nil {
		return
	}

	createdAt := s.now()
	leave = Leave{
		ID:          s.idGenerator(),
		ExecutiveID: ownerID,
		Start:       input.Start,
		End:         input.End,
		Reason:      strings.TrimSpace(input.Note),
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}

	leave, err = s.leaves.CreateLeave(ctx, leave)
	if err != nil {
		leave = Leave{}
		return
	}

	if params.Notify && params.Principal.UserID != ownerID {
		s.notifyOwner(ctx, logger, owner,
			"Leave recorded on your calendar",
			fmt.Sprintf("A leave from %s to %s has been recorded on your calendar.",
				leave.Start.Format(interval.DisplayLayout),
				leave.End.Format(interval.DisplayLayout),
			),
		)
	}
	return
}

// RescheduleLeave moves an existing leave, re-validated excluding itself.
func (s *LeaveService) RescheduleLeave(ctx context.Context, params ReschedulePeriodParams) (leave Leave, err error) {
	if s == nil {
		return Leave{}, fmt.Errorf("LeaveService is nil")
	}

	logger := s.loggerWith(ctx, "RescheduleLeave",
		"leave_id", params.ID,
		"actor_id", params.Principal.UserID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "leave reschedule rejected", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "leave rescheduled")
	}()

	vErr := &ValidationError{}
	validatePeriod(params.Start, params.End, vErr)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	existing, err := s.leaves.GetLeave(ctx, params.ID)
	if err != nil {
		return
	}
	// Identity, not role: only the owner may move a leave.
	if existing.ExecutiveID != params.Principal.UserID {
		err = ErrUnauthorized
		return
	}

	release := s.locker.Lock([]string{existing.ExecutiveID})
	defer release()

	proposed := interval.Interval{Start: params.Start, End: params.End}
	self := scheduler.EventRef{Kind: scheduler.KindLeave, ID: existing.ID}
	if err = s.ensureOwnerFree(ctx, existing.ExecutiveID, proposed, &self); err != nil {
		return
	}

	existing.Start = params.Start
	existing.End = params.End
	if note := strings.TrimSpace(params.Note); note != "" {
		existing.Reason = note
	}
	existing.UpdatedAt = s.now()

	leave, err = s.leaves.UpdateLeave(ctx, existing)
	if err != nil {
		leave = Leave{}
	}
	return
}

// DeleteLeave removes a leave. Only its owner may delete it.
func (s *LeaveService) DeleteLeave(ctx context.Context, params DeletePeriodParams) (err error) {
	if s == nil {
		return fmt.Errorf("LeaveService is nil")
	}

	logger := s.loggerWith(ctx, "DeleteLeave",
		"leave_id", params.ID,
		"actor_id", params.Principal.UserID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "leave deletion rejected", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "leave deleted")
	}()

	existing, err := s.leaves.GetLeave(ctx, params.ID)
	if err != nil {
		return
	}
	if existing.ExecutiveID != params.Principal.UserID {
		err = ErrUnauthorized
		return
	}

	err = s.leaves.DeleteLeave(ctx, params.ID)
	return
}

// GetLeave returns one leave visible to its owner or a secretary.
func (s *LeaveService) GetLeave(ctx context.Context, principal Principal, id string) (Leave, error) {
	if s == nil {
		return Leave{}, fmt.Errorf("LeaveService is nil")
	}
	leave, err := s.leaves.GetLeave(ctx, id)
	if err != nil {
		return Leave{}, err
	}
	if leave.ExecutiveID != principal.UserID && !principal.IsSecretary() {
		return Leave{}, ErrUnauthorized
	}
	return leave, nil
}

func (s *LeaveService) ensureOwnerFree(ctx context.Context, ownerID string, proposed interval.Interval, excluding *scheduler.EventRef) error {
	busy, err := s.calendar.BusyEvents(ctx, []string{ownerID}, proposed)
	if err != nil {
		return err
	}
	if conflicts := scheduler.FindConflicts(busy, proposed, excluding); len(conflicts) > 0 {
		return &ConflictError{Conflicts: conflictsFromEvents(conflicts)}
	}
	return nil
}

func (s *LeaveService) notifyOwner(ctx context.Context, logger *slog.Logger, owner User, subject, body string) {
	if s.mailer == nil {
		return
	}
	if err := s.mailer.Send(ctx, notify.Message{To: owner.Email, Subject: subject, Body: body}); err != nil {
		logger.WarnContext(ctx, "failed to notify executive", "recipient", owner.Email, "error", err)
	}
}
