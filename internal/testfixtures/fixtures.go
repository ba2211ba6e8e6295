package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/executive-scheduler/internal/persistence"
)

var (
	userCounter       uint64
	meetingCounter    uint64
	leaveCounter      uint64
	engagementCounter uint64
	sessionCounter    uint64
)

var referenceTime = time.Date(2025, time.June, 12, 8, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// UserOption configures a generated user fixture.
type UserOption func(*persistence.User)

// NewUserFixture returns a deterministic user record with optional overrides.
func NewUserFixture(opts ...UserOption) persistence.User {
	idx := atomic.AddUint64(&userCounter, 1)
	id := fmt.Sprintf("user-%03d", idx)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	user := persistence.User{
		ID:           id,
		Name:         fmt.Sprintf("User %03d", idx),
		Email:        fmt.Sprintf("%s@example.com", id),
		Role:         persistence.RoleExecutive,
		PasswordHash: fmt.Sprintf("hash-%03d", idx),
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	for _, opt := range opts {
		opt(&user)
	}
	return user
}

// WithUserID overrides the generated user ID.
func WithUserID(id string) UserOption {
	return func(u *persistence.User) { u.ID = id }
}

// WithUserName overrides the generated display name.
func WithUserName(name string) UserOption {
	return func(u *persistence.User) { u.Name = name }
}

// WithUserEmail overrides the generated email address.
func WithUserEmail(email string) UserOption {
	return func(u *persistence.User) { u.Email = email }
}

// WithUserRole sets the role on the generated fixture.
func WithUserRole(role string) UserOption {
	return func(u *persistence.User) { u.Role = role }
}

// WithUserPasswordHash overrides the generated password hash.
func WithUserPasswordHash(hash string) UserOption {
	return func(u *persistence.User) { u.PasswordHash = hash }
}

// MeetingOption configures a generated meeting fixture.
type MeetingOption func(*persistence.Meeting)

// NewMeetingFixture returns a deterministic one-hour meeting with optional
// overrides. Successive fixtures occupy successive hours.
func NewMeetingFixture(opts ...MeetingOption) persistence.Meeting {
	idx := atomic.AddUint64(&meetingCounter, 1)
	start := referenceTime.Add(time.Duration(idx) * time.Hour)
	meeting := persistence.Meeting{
		ID:        fmt.Sprintf("meeting-%03d", idx),
		Title:     fmt.Sprintf("Meeting %03d", idx),
		Start:     start,
		End:       start.Add(time.Hour),
		CreatorID: "user-001",
		CreatedAt: referenceTime,
		UpdatedAt: referenceTime,
	}
	for _, opt := range opts {
		opt(&meeting)
	}
	return meeting
}

// WithMeetingID overrides the generated meeting ID.
func WithMeetingID(id string) MeetingOption {
	return func(m *persistence.Meeting) { m.ID = id }
}

// WithMeetingTitle overrides the generated title.
func WithMeetingTitle(title string) MeetingOption {
	return func(m *persistence.Meeting) { m.Title = title }
}

// WithMeetingSpan sets the start and end of the meeting.
func WithMeetingSpan(start, end time.Time) MeetingOption {
	return func(m *persistence.Meeting) {
		m.Start = start
		m.End = end
	}
}

// WithMeetingCreator sets the creating user.
func WithMeetingCreator(userID string) MeetingOption {
	return func(m *persistence.Meeting) { m.CreatorID = userID }
}

// WithMeetingAttendees sets the attendee user IDs.
func WithMeetingAttendees(userIDs ...string) MeetingOption {
	return func(m *persistence.Meeting) { m.Attendees = userIDs }
}

// WithMeetingProject sets the project name.
func WithMeetingProject(project string) MeetingOption {
	return func(m *persistence.Meeting) { m.ProjectName = &project }
}

// WithMeetingReminderSent sets the reminder flag.
func WithMeetingReminderSent(sent bool) MeetingOption {
	return func(m *persistence.Meeting) { m.ReminderSent = sent }
}

// LeaveOption configures a generated leave fixture.
type LeaveOption func(*persistence.Leave)

// NewLeaveFixture returns a deterministic one-day leave with optional overrides.
func NewLeaveFixture(opts ...LeaveOption) persistence.Leave {
	idx := atomic.AddUint64(&leaveCounter, 1)
	start := referenceTime.Add(time.Duration(idx) * 24 * time.Hour)
	leave := persistence.Leave{
		ID:          fmt.Sprintf("leave-%03d", idx),
		ExecutiveID: "user-001",
		Start:       start,
		End:         start.Add(8 * time.Hour),
		Reason:      "annual leave",
		CreatedAt:   referenceTime,
		UpdatedAt:   referenceTime,
	}
	for _, opt := range opts {
		opt(&leave)
	}
	return leave
}

// WithLeaveID overrides the generated leave ID.
func WithLeaveID(id string) LeaveOption {
	return func(l *persistence.Leave) { l.ID = id }
}

// WithLeaveExecutive sets the owning executive.
func WithLeaveExecutive(userID string) LeaveOption {
	return func(l *persistence.Leave) { l.ExecutiveID = userID }
}

// WithLeaveSpan sets the start and end of the leave.
func WithLeaveSpan(start, end time.Time) LeaveOption {
	return func(l *persistence.Leave) {
		l.Start = start
		l.End = end
	}
}

// EngagementOption configures a generated engagement fixture.
type EngagementOption func(*persistence.Engagement)

// NewEngagementFixture returns a deterministic engagement with optional overrides.
func NewEngagementFixture(opts ...EngagementOption) persistence.Engagement {
	idx := atomic.AddUint64(&engagementCounter, 1)
	start := referenceTime.Add(time.Duration(idx) * 2 * time.Hour)
	engagement := persistence.Engagement{
		ID:          fmt.Sprintf("engagement-%03d", idx),
		ExecutiveID: "user-001",
		Start:       start,
		End:         start.Add(time.Hour),
		Description: fmt.Sprintf("Engagement %03d", idx),
		CreatedAt:   referenceTime,
		UpdatedAt:   referenceTime,
	}
	for _, opt := range opts {
		opt(&engagement)
	}
	return engagement
}

// WithEngagementID overrides the generated engagement ID.
func WithEngagementID(id string) EngagementOption {
	return func(e *persistence.Engagement) { e.ID = id }
}

// WithEngagementExecutive sets the owning executive.
func WithEngagementExecutive(userID string) EngagementOption {
	return func(e *persistence.Engagement) { e.ExecutiveID = userID }
}

// WithEngagementSpan sets the start and end of the engagement.
func WithEngagementSpan(start, end time.Time) EngagementOption {
	return func(e *persistence.Engagement) {
		e.Start = start
		e.End = end
	}
}

// SessionOption configures a generated session fixture.
type SessionOption func(*persistence.Session)

// NewSessionFixture returns a deterministic session with optional overrides.
func NewSessionFixture(opts ...SessionOption) persistence.Session {
	idx := atomic.AddUint64(&sessionCounter, 1)
	session := persistence.Session{
		ID:        fmt.Sprintf("session-%03d", idx),
		UserID:    "user-001",
		Token:     fmt.Sprintf("token-%03d", idx),
		ExpiresAt: referenceTime.Add(24 * time.Hour),
		CreatedAt: referenceTime,
		UpdatedAt: referenceTime,
	}
	for _, opt := range opts {
		opt(&session)
	}
	return session
}

// WithSessionUser sets the owning user.
func WithSessionUser(userID string) SessionOption {
	return func(s *persistence.Session) { s.UserID = userID }
}

// WithSessionToken overrides the generated token.
func WithSessionToken(token string) SessionOption {
	return func(s *persistence.Session) { s.Token = token }
}

// WithSessionExpiry sets the expiry instant.
func WithSessionExpiry(t time.Time) SessionOption {
	return func(s *persistence.Session) { s.ExpiresAt = t }
}
