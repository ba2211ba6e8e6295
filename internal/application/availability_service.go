package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/executive-scheduler/internal/interval"
	"github.com/example/executive-scheduler/internal/notify"
)

// AvailabilityService derives free slots for one participant or a whole
// attendee set, and escalates to the secretary when no common slot exists.
type AvailabilityService struct {
	calendar       *BusyCalendar
	users          UserDirectory
	escalations    EscalationRepository
	mailer         notify.Mailer
	secretaryEmail string
	idGenerator    func() string
	now            func() time.Time
	logger         *slog.Logger
}

// NewAvailabilityService wires dependencies for availability lookups.
func NewAvailabilityService(calendar *BusyCalendar, users UserDirectory, escalations EscalationRepository, mailer notify.Mailer, secretaryEmail string, idGenerator func() string, now func() time.Time, logger *slog.Logger) *AvailabilityService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &AvailabilityService{
		calendar:       calendar,
		users:          users,
		escalations:    escalations,
		mailer:         mailer,
		secretaryEmail: secretaryEmail,
		idGenerator:    idGenerator,
		now:            now,
		logger:         defaultLogger(logger),
	}
}

func (s *AvailabilityService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AvailabilityService", operation, attrs...)
}

// FreeSlots returns the free periods of one participant on a day. The day
// window starts at the current instant when the date is today. ErrNoAvailability
// is returned when no slot of at least a minute remains.
func (s *AvailabilityService) FreeSlots(ctx context.Context, params FreeSlotsParams) (slots []interval.Slot, err error) {
	if s == nil {
		return nil, fmt.Errorf("AvailabilityService is nil")
	}

	logger := s.loggerWith(ctx, "FreeSlots",
		"participant_id", params.ParticipantID,
		"date", params.Date.Format("2006-01-02"),
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "free slot lookup failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("slot_count", len(slots)).InfoContext(ctx, "free slots computed")
	}()

	if strings.TrimSpace(params.ParticipantID) == "" {
		vErr := &ValidationError{}
		vErr.add("participant_id", "participant is required")
		err = vErr
		return
	}
	if params.Date.IsZero() {
		vErr := &ValidationError{}
		vErr.add("date", "date is required")
		err = vErr
		return
	}

	if _, err = s.users.GetUser(ctx, params.ParticipantID); err != nil {
		return
	}

	slots, err = s.freeSlotsForUsers(ctx, []string{params.ParticipantID}, params.Date)
	if err != nil {
		return
	}
	if len(slots) == 0 {
		slots = nil
		err = ErrNoAvailability
	}
	return
}

// CommonSlots intersects the free time of the organizer and every attendee on
// a day. When nothing remains, exactly one escalation is recorded, the
// secretary is notified, and the escalation is returned with ErrNoAvailability.
func (s *AvailabilityService) CommonSlots(ctx context.Context, params CommonSlotsParams) (result CommonSlotsResult, err error) {
	if s == nil {
		return CommonSlotsResult{}, fmt.Errorf("AvailabilityService is nil")
	}

	participants := uniqueStrings(append([]string{params.OrganizerID}, params.AttendeeIDs...))

	logger := s.loggerWith(ctx, "CommonSlots",
		"organizer_id", params.OrganizerID,
		"participant_count", len(participants),
		"date", params.Date.Format("2006-01-02"),
	)
	defer func() {
		if err != nil && ErrorKind(err) != "no_availability" {
			logger.ErrorContext(ctx, "common slot search failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		if err != nil {
			logger.InfoContext(ctx, "no common slot, escalated to secretary")
			return
		}
		logger.With("slot_count", len(result.Slots)).InfoContext(ctx, "common slots computed")
	}()

	vErr := &ValidationError{}
	if strings.TrimSpace(params.OrganizerID) == "" {
		vErr.add("organizer_id", "organizer is required")
	}
	if len(participants) < 2 {
		vErr.add("attendee_ids", "at least one attendee is required")
	}
	if params.Date.IsZero() {
		vErr.add("date", "date is required")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	users, err := s.resolveUsers(ctx, participants)
	if err != nil {
		return
	}

	slots, err := s.freeSlotsForUsers(ctx, participants, params.Date)
	if err != nil {
		return
	}
	if len(slots) > 0 {
		result = CommonSlotsResult{Slots: slots}
		return
	}

	escalation, escErr := s.escalate(ctx, logger, params.Date, users)
	if escErr != nil {
		err = escErr
		return
	}
	result = CommonSlotsResult{Escalation: escalation}
	err = ErrNoAvailability
	return
}

// freeSlotsForUsers merges every participant's busy time and walks the gaps.
func (s *AvailabilityService) freeSlotsForUsers(ctx context.Context, userIDs []string, date time.Time) ([]interval.Slot, error) {
	window := interval.DayWindow(date, s.now())
	if !window.IsValid() {
		return nil, nil
	}

	busy, err := s.calendar.BusyIntervals(ctx, userIDs, window)
	if err != nil {
		return nil, err
	}

	free := interval.FreeSlots(interval.Merge(busy), window, interval.MinSlotDuration)
	return interval.PresentSlots(free), nil
}

func (s *AvailabilityService) resolveUsers(ctx context.Context, userIDs []string) ([]User, error) {
	users, err := s.users.ListUsers(ctx, UserDirectoryFilter{IDs: userIDs})
	if err != nil {
		return nil, err
	}
	if len(users) != len(userIDs) {
		found := make(map[string]struct{}, len(users))
		for _, u := range users {
			found[u.ID] = struct{}{}
		}
		vErr := &ValidationError{}
		for _, id := range userIDs {
			if _, ok := found[id]; !ok {
				vErr.add("participant_ids", fmt.Sprintf("unknown participant %s", id))
			}
		}
		return nil, vErr
	}
	return users, nil
}

// escalate persists the manual intervention request and notifies the
// secretary. The email is best-effort; a delivery failure is logged only.
func (s *AvailabilityService) escalate(ctx context.Context, logger *slog.Logger, date time.Time, users []User) (*Escalation, error) {
	contacts := make([]ExecutiveContact, 0, len(users))
	names := make([]string, 0, len(users))
	for _, u := range users {
		contacts = append(contacts, ExecutiveContact{Name: u.Name, Email: u.Email})
		names = append(names, u.Name)
	}

	escalation := Escalation{
		ID:          s.idGenerator(),
		MeetingDate: date,
		Executives:  contacts,
		CreatedAt:   s.now(),
	}

	persisted, err := s.escalations.CreateEscalation(ctx, escalation)
	if err != nil {
		return nil, fmt.Errorf("failed to record escalation: %w", err)
	}

	if s.mailer != nil && s.secretaryEmail != "" {
		message := notify.Message{
			To:      s.secretaryEmail,
			Subject: "Manual scheduling intervention required",
			Body: fmt.Sprintf(
				"No common availability was found for %s on %s. Please coordinate a meeting manually.",
				strings.Join(names, ", "),
				date.Format("Mon, Jan 2, 2006"),
			),
		}
		if sendErr := s.mailer.Send(ctx, message); sendErr != nil {
			logger.WarnContext(ctx, "failed to notify secretary", "error", sendErr)
		}
	}

	return &persisted, nil
}
