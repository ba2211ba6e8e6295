package persistence

import "context"
import "time"

// UserRepository exposes account storage operations.
type UserRepository interface {
	CreateUser(ctx context.Context, user User) error
	UpdateUser(ctx context.Context, user User) error
	GetUser(ctx context.Context, id string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	ListUsers(ctx context.Context, filter UserFilter) ([]User, error)
}

// SessionRepository stores authentication session state.
type SessionRepository interface {
	CreateSession(ctx context.Context, session Session) (Session, error)
	GetSession(ctx context.Context, token string) (Session, error)
	RevokeSession(ctx context.Context, token string, revokedAt time.Time) (Session, error)
	DeleteExpiredSessions(ctx context.Context, reference time.Time) error
}

// MeetingRepository stores meetings and their attendee sets.
type MeetingRepository interface {
	CreateMeeting(ctx context.Context, meeting Meeting) error
	UpdateMeeting(ctx context.Context, meeting Meeting) error
	GetMeeting(ctx context.Context, id string) (Meeting, error)
	ListMeetings(ctx context.Context, filter MeetingFilter) ([]Meeting, error)
	DeleteMeeting(ctx context.Context, id string) error
	ListPendingReminders(ctx context.Context, reference time.Time) ([]Meeting, error)
	MarkReminderSent(ctx context.Context, id string) error
}

// LeaveRepository stores leave periods.
type LeaveRepository interface {
	CreateLeave(ctx context.Context, leave Leave) error
	UpdateLeave(ctx context.Context, leave Leave) error
	GetLeave(ctx context.Context, id string) (Leave, error)
	ListLeaves(ctx context.Context, filter PeriodFilter) ([]Leave, error)
	DeleteLeave(ctx context.Context, id string) error
}

// EngagementRepository stores personal engagements.
type EngagementRepository interface {
	CreateEngagement(ctx context.Context, engagement Engagement) error
	UpdateEngagement(ctx context.Context, engagement Engagement) error
	GetEngagement(ctx context.Context, id string) (Engagement, error)
	ListEngagements(ctx context.Context, filter PeriodFilter) ([]Engagement, error)
	DeleteEngagement(ctx context.Context, id string) error
}

// EscalationRepository stores manual intervention requests.
type EscalationRepository interface {
	CreateEscalation(ctx context.Context, escalation Escalation) error
	GetEscalation(ctx context.Context, id string) (Escalation, error)
	ListEscalations(ctx context.Context) ([]Escalation, error)
	DeleteEscalation(ctx context.Context, id string) error
}
