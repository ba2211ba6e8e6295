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

// EngagementService records personal engagements, guarding them against the
// owner's own meetings, leaves, and engagements. Secretaries use it to block
// availability on an executive's behalf.
type EngagementService struct {
	engagements EngagementRepository
	calendar    *BusyCalendar
	users       UserDirectory
	locker      *scheduler.ParticipantLocker
	mailer      notify.Mailer
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewEngagementService wires dependencies for engagement operations.
func NewEngagementService(engagements EngagementRepository, calendar *BusyCalendar, users UserDirectory, locker *scheduler.ParticipantLocker, mailer notify.Mailer, idGenerator func() string, now func() time.Time, logger *slog.Logger) *EngagementService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	if locker == nil {
		locker = scheduler.NewParticipantLocker()
	}
	return &EngagementService{
		engagements: engagements,
		calendar:    calendar,
		users:       users,
		locker:      locker,
		mailer:      mailer,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

func (s *EngagementService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "EngagementService", operation, attrs...)
}

// CreateEngagement records an engagement. The actor must be the owner or a
// secretary blocking time on their behalf; in the latter case the owner is
// notified when requested.
func (s *EngagementService) CreateEngagement(ctx context.Context, params CreatePeriodParams) (engagement Engagement, err error) {
	if s == nil {
		return Engagement{}, fmt.Errorf("EngagementService is nil")
	}
	input := params.Input

	ownerID := strings.TrimSpace(input.ExecutiveID)
	if ownerID == "" {
		ownerID = params.Principal.UserID
	}

	logger := s.loggerWith(ctx, "CreateEngagement",
		"executive_id", ownerID,
		"actor_id", params.Principal.UserID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "engagement booking rejected", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("engagement_id", engagement.ID).InfoContext(ctx, "engagement recorded")
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
	engagement = Engagement{
		ID:          s.idGenerator(),
		ExecutiveID: ownerID,
		Start:       input.Start,
		End:         input.End,
		Description: strings.TrimSpace(input.Note),
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}

	engagement, err = s.engagements.CreateEngagement(ctx, engagement)
	if err != nil {
		engagement = Engagement{}
		return
	}

	if params.Notify && params.Principal.UserID != ownerID {
		s.notifyOwner(ctx, logger, owner,
			"Time blocked on your calendar",
			fmt.Sprintf("The period from %s to %s has been blocked on your calendar.",
				engagement.Start.Format(interval.DisplayLayout),
				engagement.End.Format(interval.DisplayLayout),
			),
		)
	}
	return
}

// RescheduleEngagement moves an existing engagement, re-validated excluding
// itself.
func (s *EngagementService) RescheduleEngagement(ctx context.Context, params ReschedulePeriodParams) (engagement Engagement, err error) {
	if s == nil {
		return Engagement{}, fmt.Errorf("EngagementService is nil")
	}

	logger := s.loggerWith(ctx, "RescheduleEngagement",
		"engagement_id", params.ID,
		"actor_id", params.Principal.UserID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "engagement reschedule rejected", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "engagement rescheduled")
	}()

	vErr := &ValidationError{}
	validatePeriod(params.Start, params.End, vErr)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	existing, err := s.engagements.GetEngagement(ctx, params.ID)
	if err != nil {
		return
	}
	if existing.ExecutiveID != params.Principal.UserID && !params.Principal.IsSecretary() {
		err = ErrUnauthorized
		return
	}

	release := s.locker.Lock([]string{existing.ExecutiveID})
	defer release()

	proposed := interval.Interval{Start: params.Start, End: params.End}
	self := scheduler.EventRef{Kind: scheduler.KindEngagement, ID: existing.ID}
	if err = s.ensureOwnerFree(ctx, existing.ExecutiveID, proposed, &self); err != nil {
		return
	}

	existing.Start = params.Start
	existing.End = params.End
	if note := strings.TrimSpace(params.Note); note != "" {
		existing.Description = note
	}
	existing.UpdatedAt = s.now()

	engagement, err = s.engagements.UpdateEngagement(ctx, existing)
	if err != nil {
		engagement = Engagement{}
	}
	return
}

// DeleteEngagement removes an engagement. The owner or a secretary may
// delete it.
func (s *EngagementService) DeleteEngagement(ctx context.Context, params DeletePeriodParams) (err error) {
	if s == nil {
		return fmt.Errorf("EngagementService is nil")
	}

	logger := s.loggerWith(ctx, "DeleteEngagement",
		"engagement_id", params.ID,
		"actor_id", params.Principal.UserID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "engagement deletion rejected", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "engagement deleted")
	}()

	existing, err := s.engagements.GetEngagement(ctx, params.ID)
	if err != nil {
		return
	}
	if existing.ExecutiveID != params.Principal.UserID && !params.Principal.IsSecretary() {
		err = ErrUnauthorized
		return
	}

	err = s.engagements.DeleteEngagement(ctx, params.ID)
	return
}

func (s *EngagementService) ensureOwnerFree(ctx context.Context, ownerID string, proposed interval.Interval, excluding *scheduler.EventRef) error {
	busy, err := s.calendar.BusyEvents(ctx, []string{ownerID}, proposed)
	if err != nil {
		return err
	}
	if conflicts := scheduler.FindConflicts(busy, proposed, excluding); len(conflicts) > 0 {
		return &ConflictError{Conflicts: conflictsFromEvents(conflicts)}
	}
	return nil
}

func (s *EngagementService) notifyOwner(ctx context.Context, logger *slog.Logger, owner User, subject, body string) {
	if s.mailer == nil {
		return
	}
	if err := s.mailer.Send(ctx, notify.Message{To: owner.Email, Subject: subject, Body: body}); err != nil {
		logger.WarnContext(ctx, "failed to notify executive", "recipient", owner.Email, "error", err)
	}
}
