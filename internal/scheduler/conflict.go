package scheduler

import (
	"github.com/example/executive-scheduler/internal/interval"
)

// EventKind discriminates the three sources of busy time.
type EventKind string

const (
	// KindMeeting marks a committed meeting the owner attends.
	KindMeeting EventKind = "meeting"
	// KindLeave marks an approved leave period.
	KindLeave EventKind = "leave"
	// KindEngagement marks a personal engagement.
	KindEngagement EventKind = "engagement"
)

// EventRef identifies one busy event for exclusion and diagnostics.
type EventRef struct {
	Kind EventKind
	ID   string
}

// BusyEvent projects a meeting, leave, or engagement onto the shared shape the
// conflict test operates on. Title carries the kind-specific display payload
// (meeting title, leave reason, engagement description).
type BusyEvent struct {
	Ref     EventRef
	OwnerID string
	Span    interval.Interval
	Title   string
}

// FindConflicts returns the existing events whose spans overlap the proposed
// interval, skipping the event identified by excluding so an update never
// conflicts with its own prior self. Overlap is strict: events that merely
// touch the proposed boundaries are not conflicts.
func FindConflicts(existing []BusyEvent, proposed interval.Interval, excluding *EventRef) []BusyEvent {
	if !proposed.IsValid() {
		return nil
	}

	var conflicts []BusyEvent
	for _, event := range existing {
		if excluding != nil && event.Ref == *excluding {
			continue
		}
		if event.Span.Overlaps(proposed) {
			conflicts = append(conflicts, event)
		}
	}
	return conflicts
}

// HasConflict reports whether any existing event overlaps the proposed interval.
func HasConflict(existing []BusyEvent, proposed interval.Interval, excluding *EventRef) bool {
	return len(FindConflicts(existing, proposed, excluding)) > 0
}

// ConflictsByKind groups conflicting events by their source category for
// error reporting.
func ConflictsByKind(conflicts []BusyEvent) map[EventKind][]BusyEvent {
	if len(conflicts) == 0 {
		return nil
	}
	grouped := make(map[EventKind][]BusyEvent)
	for _, event := range conflicts {
		grouped[event.Ref.Kind] = append(grouped[event.Ref.Kind], event)
	}
	return grouped
}
