package application

import (
	"context"
	"time"
)

// MeetingRepository captures the persistence interactions needed by services
// that read or write meetings.
type MeetingRepository interface {
	CreateMeeting(ctx context.Context, meeting Meeting) (Meeting, error)
	UpdateMeeting(ctx context.Context, meeting Meeting) (Meeting, error)
	GetMeeting(ctx context.Context, id string) (Meeting, error)
	ListMeetings(ctx context.Context, filter MeetingRepositoryFilter) ([]Meeting, error)
	DeleteMeeting(ctx context.Context, id string) error
	ListPendingReminders(ctx context.Context, reference time.Time) ([]Meeting, error)
	MarkReminderSent(ctx context.Context, id string) error
}

// MeetingRepositoryFilter narrows queries issued to the meeting repository.
// AttendeeIDs matches meetings any listed user attends or created.
type MeetingRepositoryFilter struct {
	AttendeeIDs []string
	StartsAfter *time.Time
	EndsBefore  *time.Time
}

// PeriodRepositoryFilter narrows leave and engagement queries.
type PeriodRepositoryFilter struct {
	ExecutiveID string
	StartsAfter *time.Time
	EndsBefore  *time.Time
}

// LeaveRepository captures persistence interactions for leave periods.
type LeaveRepository interface {
	CreateLeave(ctx context.Context, leave Leave) (Leave, error)
	UpdateLeave(ctx context.Context, leave Leave) (Leave, error)
	GetLeave(ctx context.Context, id string) (Leave, error)
	ListLeaves(ctx context.Context, filter PeriodRepositoryFilter) ([]Leave, error)
	DeleteLeave(ctx context.Context, id string) error
}

// EngagementRepository captures persistence interactions for engagements.
type EngagementRepository interface {
	CreateEngagement(ctx context.Context, engagement Engagement) (Engagement, error)
	UpdateEngagement(ctx context.Context, engagement Engagement) (Engagement, error)
	GetEngagement(ctx context.Context, id string) (Engagement, error)
	ListEngagements(ctx context.Context, filter PeriodRepositoryFilter) ([]Engagement, error)
	DeleteEngagement(ctx context.Context, id string) error
}

// UserDirectory exposes user lookup operations.
type UserDirectory interface {
	GetUser(ctx context.Context, id string) (User, error)
	ListUsers(ctx context.Context, filter UserDirectoryFilter) ([]User, error)
}

// UserDirectoryFilter narrows user directory listings.
type UserDirectoryFilter struct {
	Role string
	IDs  []string
}

// EscalationRepository captures persistence interactions for manual
// intervention requests.
type EscalationRepository interface {
	CreateEscalation(ctx context.Context, escalation Escalation) (Escalation, error)
	GetEscalation(ctx context.Context, id string) (Escalation, error)
	ListEscalations(ctx context.Context) ([]Escalation, error)
	DeleteEscalation(ctx context.Context, id string) error
}
