package persistence

import "time"

// Role values stored on user records.
const (
	RoleExecutive = "executive"
	RoleSecretary = "secretary"
)

// User represents an account in the scheduling domain.
type User struct {
	ID           string
	Name         string
	Email        string
	Role         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session represents an authentication session persisted for a user.
type Session struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	RevokedAt *time.Time
}

// Meeting represents a committed meeting with its attendee set.
type Meeting struct {
	ID           string
	Title        string
	Start        time.Time
	End          time.Time
	Venue        *string
	ProjectName  *string
	CreatorID    string
	Attendees    []string
	ReminderSent bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Leave represents an approved leave period for one executive.
type Leave struct {
	ID          string
	ExecutiveID string
	Start       time.Time
	End         time.Time
	Reason      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Engagement represents a personal engagement blocking one executive.
type Engagement struct {
	ID          string
	ExecutiveID string
	Start       time.Time
	End         time.Time
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ExecutiveRef identifies one person inside an escalation record.
type ExecutiveRef struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Escalation records a common-slot search that found no availability and was
// handed to the secretary for manual intervention.
type Escalation struct {
	ID          string
	MeetingDate time.Time
	Executives  []ExecutiveRef
	CreatedAt   time.Time
}

// MeetingFilter narrows meeting queries. AttendeeIDs matches meetings where
// any listed user attends or created the meeting.
type MeetingFilter struct {
	AttendeeIDs []string
	StartsAfter *time.Time
	EndsBefore  *time.Time
}

// PeriodFilter narrows leave and engagement queries to one owner and window.
type PeriodFilter struct {
	ExecutiveID string
	StartsAfter *time.Time
	EndsBefore  *time.Time
}

// UserFilter narrows user listings.
type UserFilter struct {
	Role string
	IDs  []string
}
