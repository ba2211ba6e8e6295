package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/executive-scheduler/internal/interval"
	"github.com/example/executive-scheduler/internal/notify"
)

// ReminderService delivers one reminder email per attendee for upcoming
// meetings that have not been reminded yet. Marking happens after delivery,
// so a crash between the two can repeat a reminder; duplicates are tolerated,
// silence is not.
type ReminderService struct {
	meetings MeetingRepository
	users    UserDirectory
	mailer   notify.Mailer
	logger   *slog.Logger
}

// NewReminderService wires dependencies for reminder processing.
func NewReminderService(meetings MeetingRepository, users UserDirectory, mailer notify.Mailer, logger *slog.Logger) *ReminderService {
	return &ReminderService{
		meetings: meetings,
		users:    users,
		mailer:   mailer,
		logger:   defaultLogger(logger),
	}
}

// ProcessPendingReminders sends reminders for every meeting starting after
// the given instant whose reminder flag is unset, then marks them. Returns
// the number of meetings reminded.
func (s *ReminderService) ProcessPendingReminders(ctx context.Context, now time.Time) (int, error) {
	if s == nil {
		return 0, fmt.Errorf("ReminderService is nil")
	}

	logger := serviceLogger(ctx, s.logger, "ReminderService", "ProcessPendingReminders")

	pending, err := s.meetings.ListPendingReminders(ctx, now)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load pending reminders", "error", err)
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	reminded := 0
	for _, meeting := range pending {
		if err := s.remind(ctx, logger, meeting); err != nil {
			logger.ErrorContext(ctx, "failed to process reminder",
				"meeting_id", meeting.ID, "error", err)
			continue
		}
		reminded++
	}

	logger.With("reminded", reminded, "pending", len(pending)).
		InfoContext(ctx, "reminder pass completed")
	return reminded, nil
}

func (s *ReminderService) remind(ctx context.Context, logger *slog.Logger, meeting Meeting) error {
	users, err := s.users.ListUsers(ctx, UserDirectoryFilter{IDs: meeting.Participants()})
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Reminder: %s", meeting.Title)
	body := fmt.Sprintf("Your meeting %q starts at %s.",
		meeting.Title, meeting.Start.Format(interval.DisplayLayout))

	for _, user := range users {
		if sendErr := s.mailer.Send(ctx, notify.Message{To: user.Email, Subject: subject, Body: body}); sendErr != nil {
			logger.WarnContext(ctx, "failed to deliver reminder",
				"meeting_id", meeting.ID, "recipient", user.Email, "error", sendErr)
		}
	}

	return s.meetings.MarkReminderSent(ctx, meeting.ID)
}
