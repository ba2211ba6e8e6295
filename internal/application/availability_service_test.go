package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/executive-scheduler/internal/testfixtures"
)

func newAvailabilityFixture(t *testing.T) (*AvailabilityService, *meetingRepositoryStub, *leaveRepositoryStub, *engagementRepositoryStub, *escalationRepositoryStub, *mailerStub) {
	t.Helper()

	users := newUserDirectoryStub(
		User{ID: "exec-1", Name: "Alice", Email: "alice@example.com", Role: RoleExecutive},
		User{ID: "exec-2", Name: "Bob", Email: "bob@example.com", Role: RoleExecutive},
	)
	meetings := newMeetingRepositoryStub()
	leaves := newLeaveRepositoryStub()
	engagements := newEngagementRepositoryStub()
	escalations := &escalationRepositoryStub{}
	mailer := newMailerStub()

	calendar := NewBusyCalendar(meetings, leaves, engagements)
	clock := testfixtures.NewClock(time.Date(2025, time.June, 12, 8, 0, 0, 0, time.UTC))
	ids := testfixtures.NewIDGenerator("esc")

	svc := NewAvailabilityService(calendar, users, escalations, mailer, "secretary@example.com", ids.NextFunc(), clock.NowFunc(), nil)
	return svc, meetings, leaves, engagements, escalations, mailer
}

func TestAvailabilityService_FreeSlots(t *testing.T) {
	t.Parallel()

	day := time.Date(2025, time.June, 13, 0, 0, 0, 0, time.UTC)

	t.Run("reports the gaps between commitments", func(t *testing.T) {
		t.Parallel()

		svc, meetings, leaves, _, _, _ := newAvailabilityFixture(t)
		meetings.seed(Meeting{
			ID:        "m-1",
			Title:     "Standup",
			Start:     day.Add(9 * time.Hour),
			End:       day.Add(10 * time.Hour),
			CreatorID: "exec-1",
		})
		leaves.seed(Leave{
			ID:          "l-1",
			ExecutiveID: "exec-1",
			Start:       day.Add(13 * time.Hour),
			End:         day.Add(14 * time.Hour),
			Reason:      "dentist",
		})

		slots, err := svc.FreeSlots(context.Background(), FreeSlotsParams{ParticipantID: "exec-1", Date: day})
		if err != nil {
			t.Fatalf("FreeSlots failed: %v", err)
		}
		if len(slots) != 3 {
			t.Fatalf("expected 3 slots, got %d: %+v", len(slots), slots)
		}
		if !slots[0].End.Equal(day.Add(9 * time.Hour)) {
			t.Fatalf("expected first slot to end at 09:00, got %v", slots[0].End)
		}
		if !slots[1].Start.Equal(day.Add(10*time.Hour)) || !slots[1].End.Equal(day.Add(13*time.Hour)) {
			t.Fatalf("unexpected middle slot %+v", slots[1])
		}
		if slots[1].StartISO != "2025-06-13T10:00" {
			t.Fatalf("unexpected form value %q", slots[1].StartISO)
		}
	})

	t.Run("starts the window at now for today", func(t *testing.T) {
		t.Parallel()

		svc, _, _, _, _, _ := newAvailabilityFixture(t)
		today := time.Date(2025, time.June, 12, 0, 0, 0, 0, time.UTC)

		slots, err := svc.FreeSlots(context.Background(), FreeSlotsParams{ParticipantID: "exec-1", Date: today})
		if err != nil {
			t.Fatalf("FreeSlots failed: %v", err)
		}
		if len(slots) != 1 {
			t.Fatalf("expected a single open slot, got %d", len(slots))
		}
		if !slots[0].Start.Equal(today.Add(8 * time.Hour)) {
			t.Fatalf("expected slot to start at the current instant, got %v", slots[0].Start)
		}
	})

	t.Run("returns no availability for a fully booked day", func(t *testing.T) {
		t.Parallel()

		svc, _, leaves, _, _, _ := newAvailabilityFixture(t)
		leaves.seed(Leave{
			ID:          "l-1",
			ExecutiveID: "exec-1",
			Start:       day,
			End:         day.AddDate(0, 0, 1),
			Reason:      "vacation",
		})

		_, err := svc.FreeSlots(context.Background(), FreeSlotsParams{ParticipantID: "exec-1", Date: day})
		if !errors.Is(err, ErrNoAvailability) {
			t.Fatalf("expected ErrNoAvailability, got %v", err)
		}
	})

	t.Run("rejects an unknown participant", func(t *testing.T) {
		t.Parallel()

		svc, _, _, _, _, _ := newAvailabilityFixture(t)
		_, err := svc.FreeSlots(context.Background(), FreeSlotsParams{ParticipantID: "ghost", Date: day})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestAvailabilityService_CommonSlots(t *testing.T) {
	t.Parallel()

	day := time.Date(2025, time.June, 13, 0, 0, 0, 0, time.UTC)

	t.Run("intersects everyone's free time", func(t *testing.T) {
		t.Parallel()

		svc, meetings, _, engagements, _, _ := newAvailabilityFixture(t)
		meetings.seed(Meeting{
			ID:        "m-1",
			Title:     "Board review",
			Start:     day.Add(9 * time.Hour),
			End:       day.Add(10 * time.Hour),
			CreatorID: "exec-1",
		})
		engagements.seed(Engagement{
			ID:          "e-1",
			ExecutiveID: "exec-2",
			Start:       day.Add(11 * time.Hour),
			End:         day.Add(12 * time.Hour),
			Description: "gym",
		})

		result, err := svc.CommonSlots(context.Background(), CommonSlotsParams{
			OrganizerID: "exec-1",
			AttendeeIDs: []string{"exec-2"},
			Date:        day,
		})
		if err != nil {
			t.Fatalf("CommonSlots failed: %v", err)
		}
		if len(result.Slots) != 3 {
			t.Fatalf("expected 3 common slots, got %d", len(result.Slots))
		}
		if !result.Slots[1].Start.Equal(day.Add(10*time.Hour)) || !result.Slots[1].End.Equal(day.Add(11*time.Hour)) {
			t.Fatalf("unexpected middle slot %+v", result.Slots[1])
		}
	})

	t.Run("escalates to the secretary when nothing remains", func(t *testing.T) {
		t.Parallel()

		svc, _, leaves, _, escalations, mailer := newAvailabilityFixture(t)
		leaves.seed(
			Leave{ID: "l-1", ExecutiveID: "exec-1", Start: day, End: day.AddDate(0, 0, 1), Reason: "offsite"},
			Leave{ID: "l-2", ExecutiveID: "exec-2", Start: day, End: day.AddDate(0, 0, 1), Reason: "offsite"},
		)

		result, err := svc.CommonSlots(context.Background(), CommonSlotsParams{
			OrganizerID: "exec-1",
			AttendeeIDs: []string{"exec-2"},
			Date:        day,
		})
		if !errors.Is(err, ErrNoAvailability) {
			t.Fatalf("expected ErrNoAvailability, got %v", err)
		}
		if result.Escalation == nil {
			t.Fatal("expected the escalation to be returned")
		}
		if len(escalations.escalations) != 1 {
			t.Fatalf("expected one recorded escalation, got %d", len(escalations.escalations))
		}
		recorded := escalations.escalations[0]
		if !recorded.MeetingDate.Equal(day) {
			t.Fatalf("unexpected escalation date %v", recorded.MeetingDate)
		}
		if len(recorded.Executives) != 2 {
			t.Fatalf("expected both executives listed, got %+v", recorded.Executives)
		}
		if got := mailer.recipients(); len(got) != 1 || got[0] != "secretary@example.com" {
			t.Fatalf("expected a secretary notification, got %v", got)
		}
	})

	t.Run("swallows secretary delivery failures", func(t *testing.T) {
		t.Parallel()

		svc, _, leaves, _, escalations, mailer := newAvailabilityFixture(t)
		mailer.failTo = map[string]error{"secretary@example.com": errors.New("smtp down")}
		leaves.seed(
			Leave{ID: "l-1", ExecutiveID: "exec-1", Start: day, End: day.AddDate(0, 0, 1)},
			Leave{ID: "l-2", ExecutiveID: "exec-2", Start: day, End: day.AddDate(0, 0, 1)},
		)

		result, err := svc.CommonSlots(context.Background(), CommonSlotsParams{
			OrganizerID: "exec-1",
			AttendeeIDs: []string{"exec-2"},
			Date:        day,
		})
		if !errors.Is(err, ErrNoAvailability) {
			t.Fatalf("expected ErrNoAvailability, got %v", err)
		}
		if result.Escalation == nil || len(escalations.escalations) != 1 {
			t.Fatal("expected the escalation to be recorded despite the delivery failure")
		}
	})

	t.Run("rejects unknown participants with field errors", func(t *testing.T) {
		t.Parallel()

		svc, _, _, _, _, _ := newAvailabilityFixture(t)
		_, err := svc.CommonSlots(context.Background(), CommonSlotsParams{
			OrganizerID: "exec-1",
			AttendeeIDs: []string{"ghost"},
			Date:        day,
		})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected a validation error, got %v", err)
		}
		if len(vErr.FieldErrors["participant_ids"]) == 0 {
			t.Fatalf("expected participant_ids errors, got %+v", vErr.FieldErrors)
		}
	})

	t.Run("requires at least one attendee", func(t *testing.T) {
		t.Parallel()

		svc, _, _, _, _, _ := newAvailabilityFixture(t)
		_, err := svc.CommonSlots(context.Background(), CommonSlotsParams{OrganizerID: "exec-1", Date: day})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected a validation error, got %v", err)
		}
	})
}
