package application

import (
	"context"
	"fmt"

	"github.com/example/executive-scheduler/internal/interval"
	"github.com/example/executive-scheduler/internal/scheduler"
)

// BusyCalendar aggregates the three sources of busy time into one event list.
// Meetings are projected once per queried participant so a conflict can name
// the participant it blocks.
type BusyCalendar struct {
	meetings    MeetingRepository
	leaves      LeaveRepository
	engagements EngagementRepository
}

// NewBusyCalendar wires the three busy-time repositories.
func NewBusyCalendar(meetings MeetingRepository, leaves LeaveRepository, engagements EngagementRepository) *BusyCalendar {
	return &BusyCalendar{meetings: meetings, leaves: leaves, engagements: engagements}
}

// BusyEvents returns every commitment of the given users that overlaps the
// window, across meetings, leaves, and engagements.
func (c *BusyCalendar) BusyEvents(ctx context.Context, userIDs []string, window interval.Interval) ([]scheduler.BusyEvent, error) {
	if c == nil {
		return nil, fmt.Errorf("BusyCalendar is nil")
	}

	userIDs = uniqueStrings(userIDs)
	if len(userIDs) == 0 {
		return nil, nil
	}
	queried := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		queried[id] = struct{}{}
	}

	var events []scheduler.BusyEvent

	meetings, err := c.meetings.ListMeetings(ctx, MeetingRepositoryFilter{
		AttendeeIDs: userIDs,
		StartsAfter: &window.Start,
		EndsBefore:  &window.End,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load meetings: %w", err)
	}
	for _, meeting := range meetings {
		for _, participant := range meeting.Participants() {
			if _, ok := queried[participant]; !ok {
				continue
			}
			events = append(events, scheduler.BusyEvent{
				Ref:     scheduler.EventRef{Kind: scheduler.KindMeeting, ID: meeting.ID},
				OwnerID: participant,
				Span:    meeting.Span(),
				Title:   meeting.Title,
			})
		}
	}

	for _, userID := range userIDs {
		leaves, err := c.leaves.ListLeaves(ctx, PeriodRepositoryFilter{
			ExecutiveID: userID,
			StartsAfter: &window.Start,
			EndsBefore:  &window.End,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to load leaves: %w", err)
		}
		for _, leave := range leaves {
			events = append(events, scheduler.BusyEvent{
				Ref:     scheduler.EventRef{Kind: scheduler.KindLeave, ID: leave.ID},
				OwnerID: leave.ExecutiveID,
				Span:    interval.Interval{Start: leave.Start, End: leave.End},
				Title:   leave.Reason,
			})
		}

		engagements, err := c.engagements.ListEngagements(ctx, PeriodRepositoryFilter{
			ExecutiveID: userID,
			StartsAfter: &window.Start,
			EndsBefore:  &window.End,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to load engagements: %w", err)
		}
		for _, engagement := range engagements {
			events = append(events, scheduler.BusyEvent{
				Ref:     scheduler.EventRef{Kind: scheduler.KindEngagement, ID: engagement.ID},
				OwnerID: engagement.ExecutiveID,
				Span:    interval.Interval{Start: engagement.Start, End: engagement.End},
				Title:   engagement.Description,
			})
		}
	}

	return events, nil
}

// BusyIntervals projects the users' busy events onto bare intervals.
func (c *BusyCalendar) BusyIntervals(ctx context.Context, userIDs []string, window interval.Interval) ([]interval.Interval, error) {
	events, err := c.BusyEvents(ctx, userIDs, window)
	if err != nil {
		return nil, err
	}
	intervals := make([]interval.Interval, 0, len(events))
	for _, event := range events {
		intervals = append(intervals, event.Span)
	}
	return intervals, nil
}

func conflictsFromEvents(events []scheduler.BusyEvent) []Conflict {
	if len(events) == 0 {
		return nil
	}
	conflicts := make([]Conflict, 0, len(events))
	seen := make(map[scheduler.EventRef]struct{}, len(events))
	for _, event := range events {
		if _, ok := seen[event.Ref]; ok {
			continue
		}
		seen[event.Ref] = struct{}{}
		conflicts = append(conflicts, Conflict{
			Kind:    string(event.Ref.Kind),
			ID:      event.Ref.ID,
			OwnerID: event.OwnerID,
			Title:   event.Title,
			Start:   event.Span.Start,
			End:     event.Span.End,
		})
	}
	return conflicts
}
