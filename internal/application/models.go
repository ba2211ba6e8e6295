package application

import (
	"time"

	"github.com/example/executive-scheduler/internal/interval"
)

// Role values carried by principals and users.
const (
	RoleExecutive = "executive"
	RoleSecretary = "secretary"
)

// Principal represents the authenticated user invoking a service method.
type Principal struct {
	UserID string
	Role   string
}

// IsSecretary reports whether the principal holds the secretary role.
func (p Principal) IsSecretary() bool {
	return p.Role == RoleSecretary
}

// User represents an account exposed by the application layer.
type User struct {
	ID        string
	Name      string
	Email     string
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserCredentials bundles a user with the stored password hash for login.
type UserCredentials struct {
	User         User
	PasswordHash string
}

// Session represents an issued authentication session.
type Session struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	RevokedAt *time.Time
}

// Meeting represents a committed meeting.
type Meeting struct {
	ID           string
	Title        string
	Start        time.Time
	End          time.Time
	Venue        string
	ProjectName  string
	CreatorID    string
	AttendeeIDs  []string
	ReminderSent bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Participants returns the creator plus attendees, deduplicated.
func (m Meeting) Participants() []string {
	return uniqueStrings(append([]string{m.CreatorID}, m.AttendeeIDs...))
}

// Span returns the meeting period as an interval.
func (m Meeting) Span() interval.Interval {
	return interval.Interval{Start: m.Start, End: m.End}
}

// Leave represents an approved leave period.
type Leave struct {
	ID          string
	ExecutiveID string
	Start       time.Time
	End         time.Time
	Reason      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Engagement represents a personal engagement.
type Engagement struct {
	ID          string
	ExecutiveID string
	Start       time.Time
	End         time.Time
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ExecutiveContact identifies one person inside an escalation record.
type ExecutiveContact struct {
	Name  string
	Email string
}

// Escalation records a failed common-slot search handed to the secretary.
type Escalation struct {
	ID          string
	MeetingDate time.Time
	Executives  []ExecutiveContact
	CreatedAt   time.Time
}

// MeetingInput captures caller provided meeting fields.
type MeetingInput struct {
	Title       string
	Start       time.Time
	End         time.Time
	Venue       string
	ProjectName string
	AttendeeIDs []string
}

// ScheduleMeetingParams wraps the data required to book a meeting.
type ScheduleMeetingParams struct {
	Principal Principal
	Input     MeetingInput
}

// RescheduleMeetingParams wraps the data required to move an existing meeting.
type RescheduleMeetingParams struct {
	Principal Principal
	MeetingID string
	Start     time.Time
	End       time.Time
}

// CancelMeetingParams wraps the data required to cancel a meeting.
type CancelMeetingParams struct {
	Principal Principal
	MeetingID string
}

// PeriodInput captures caller provided fields for leaves and engagements.
type PeriodInput struct {
	ExecutiveID string
	Start       time.Time
	End         time.Time
	Note        string // leave reason or engagement description
}

// CreatePeriodParams wraps the data required to record a leave or engagement.
type CreatePeriodParams struct {
	Principal Principal
	Input     PeriodInput
	Notify    bool // notify the owner when booked on their behalf
}

// ReschedulePeriodParams wraps the data required to move a leave or engagement.
type ReschedulePeriodParams struct {
	Principal Principal
	ID        string
	Start     time.Time
	End       time.Time
	Note      string
}

// DeletePeriodParams wraps the data required to remove a leave or engagement.
type DeletePeriodParams struct {
	Principal Principal
	ID        string
}

// FreeSlotsParams identifies one participant's free-slot lookup.
type FreeSlotsParams struct {
	ParticipantID string
	Date          time.Time
}

// CommonSlotsParams identifies a multi-attendee common-slot search.
type CommonSlotsParams struct {
	OrganizerID string
	AttendeeIDs []string
	Date        time.Time
}

// CommonSlotsResult carries the found slots, or the escalation that was filed
// when no common slot exists.
type CommonSlotsResult struct {
	Slots      []interval.Slot
	Escalation *Escalation
}

// RegisterUserParams wraps the data required to register an account.
type RegisterUserParams struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// DayScheduleEntry is one busy item in a combined day schedule.
type DayScheduleEntry struct {
	Kind  string // meeting, leave, or engagement
	ID    string
	Title string
	Start time.Time
	End   time.Time
}

// StatisticsRange bounds a statistics query.
type StatisticsRange struct {
	From time.Time
	To   time.Time
}

// ExecutiveTimeStat reports one executive's total meeting load.
type ExecutiveTimeStat struct {
	ExecutiveID   string
	ExecutiveName string
	MeetingCount  int
	TotalHours    float64
}

// ProjectStat reports the meeting load attributed to one project.
type ProjectStat struct {
	ProjectName  string
	MeetingCount int
	TotalHours   float64
	ManHours     float64
}

// ExecutiveFractionStat reports the share of working hours one executive
// spends in meetings.
type ExecutiveFractionStat struct {
	ExecutiveID   string
	ExecutiveName string
	MeetingHours  float64
	WorkingHours  float64
	Fraction      float64
}

// BroadcastParams wraps a secretary broadcast email.
type BroadcastParams struct {
	Principal    Principal
	ExecutiveIDs []string
	Subject      string
	Body         string
	Date         *time.Time
}
