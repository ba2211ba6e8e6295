package application

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/example/executive-scheduler/internal/notify"
)

// userDirectoryStub implements UserDirectory and CredentialStore for tests.
type userDirectoryStub struct {
	users  map[string]User
	hashes map[string]string // keyed by email
	err    error
}

func newUserDirectoryStub(users ...User) *userDirectoryStub {
	stub := &userDirectoryStub{
		users:  make(map[string]User),
		hashes: make(map[string]string),
	}
	for _, user := range users {
		stub.users[user.ID] = user
	}
	return stub
}

func (s *userDirectoryStub) GetUser(ctx context.Context, id string) (User, error) {
	if s.err != nil {
		return User{}, s.err
	}
	user, ok := s.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (s *userDirectoryStub) ListUsers(ctx context.Context, filter UserDirectoryFilter) ([]User, error) {
	if s.err != nil {
		return nil, s.err
	}
	wanted := make(map[string]struct{}, len(filter.IDs))
	for _, id := range filter.IDs {
		wanted[id] = struct{}{}
	}
	var users []User
	for _, user := range s.users {
		if filter.Role != "" && user.Role != filter.Role {
			continue
		}
		if len(wanted) > 0 {
			if _, ok := wanted[user.ID]; !ok {
				continue
			}
		}
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (s *userDirectoryStub) GetUserCredentialsByEmail(ctx context.Context, email string) (UserCredentials, error) {
	if s.err != nil {
		return UserCredentials{}, s.err
	}
	for _, user := range s.users {
		if user.Email == email {
			return UserCredentials{User: user, PasswordHash: s.hashes[email]}, nil
		}
	}
	return UserCredentials{}, ErrNotFound
}

// meetingRepositoryStub keeps meetings in memory with window-overlap listing
// semantics matching the SQLite repository.
type meetingRepositoryStub struct {
	mu       sync.Mutex
	meetings map[string]Meeting

	createErr error
	updateErr error
	deleteErr error
	markErr   error
	listErr   error

	markCalls []string
}

func newMeetingRepositoryStub() *meetingRepositoryStub {
	return &meetingRepositoryStub{meetings: make(map[string]Meeting)}
}

func (s *meetingRepositoryStub) seed(meetings ...Meeting) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, meeting := range meetings {
		s.meetings[meeting.ID] = meeting
	}
}

func (s *meetingRepositoryStub) CreateMeeting(ctx context.Context, meeting Meeting) (Meeting, error) {
	if s.createErr != nil {
		return Meeting{}, s.createErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.meetings[meeting.ID]; ok {
		return Meeting{}, ErrAlreadyExists
	}
	s.meetings[meeting.ID] = meeting
	return meeting, nil
}

func (s *meetingRepositoryStub) UpdateMeeting(ctx context.Context, meeting Meeting) (Meeting, error) {
	if s.updateErr != nil {
		return Meeting{}, s.updateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.meetings[meeting.ID]
	if !ok {
		return Meeting{}, ErrNotFound
	}
	if !current.Start.Equal(meeting.Start) {
		meeting.ReminderSent = false
	}
	s.meetings[meeting.ID] = meeting
	return meeting, nil
}

func (s *meetingRepositoryStub) GetMeeting(ctx context.Context, id string) (Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	meeting, ok := s.meetings[id]
	if !ok {
		return Meeting{}, ErrNotFound
	}
	return meeting, nil
}

func (s *meetingRepositoryStub) ListMeetings(ctx context.Context, filter MeetingRepositoryFilter) ([]Meeting, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	attendees := make(map[string]struct{}, len(filter.AttendeeIDs))
	for _, id := range filter.AttendeeIDs {
		attendees[id] = struct{}{}
	}
	var meetings []Meeting
	for _, meeting := range s.meetings {
		if len(attendees) > 0 {
			match := false
			for _, participant := range meeting.Participants() {
				if _, ok := attendees[participant]; ok {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		if filter.StartsAfter != nil && !meeting.End.After(*filter.StartsAfter) {
			continue
		}
		if filter.EndsBefore != nil && !meeting.Start.Before(*filter.EndsBefore) {
			continue
		}
		meetings = append(meetings, meeting)
	}
	sort.Slice(meetings, func(i, j int) bool {
		if !meetings[i].Start.Equal(meetings[j].Start) {
			return meetings[i].Start.Before(meetings[j].Start)
		}
		return meetings[i].ID < meetings[j].ID
	})
	return meetings, nil
}

func (s *meetingRepositoryStub) DeleteMeeting(ctx context.Context, id string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.meetings[id]; !ok {
		return ErrNotFound
	}
	delete(s.meetings, id)
	return nil
}

func (s *meetingRepositoryStub) ListPendingReminders(ctx context.Context, reference time.Time) ([]Meeting, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var meetings []Meeting
	for _, meeting := range s.meetings {
		if meeting.ReminderSent || !meeting.Start.After(reference) {
			continue
		}
		meetings = append(meetings, meeting)
	}
	sort.Slice(meetings, func(i, j int) bool { return meetings[i].Start.Before(meetings[j].Start) })
	return meetings, nil
}

func (s *meetingRepositoryStub) MarkReminderSent(ctx context.Context, id string) error {
	if s.markErr != nil {
		return s.markErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	meeting, ok := s.meetings[id]
	if !ok {
		return ErrNotFound
	}
	meeting.ReminderSent = true
	s.meetings[id] = meeting
	s.markCalls = append(s.markCalls, id)
	return nil
}

// leaveRepositoryStub keeps leaves in memory.
type leaveRepositoryStub struct {
	mu     sync.Mutex
	leaves map[string]Leave

	createErr error
	deleteErr error
}

func newLeaveRepositoryStub() *leaveRepositoryStub {
	return &leaveRepositoryStub{leaves: make(map[string]Leave)}
}

func (s *leaveRepositoryStub) seed(leaves ...Leave) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, leave := range leaves {
		s.leaves[leave.ID] = leave
	}
}

func (s *leaveRepositoryStub) CreateLeave(ctx context.Context, leave Leave) (Leave, error) {
	if s.createErr != nil {
		return Leave{}, s.createErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leaves[leave.ID] = leave
	return leave, nil
}

func (s *leaveRepositoryStub) UpdateLeave(ctx context.Context, leave Leave) (Leave, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.leaves[leave.ID]; !ok {
		return Leave{}, ErrNotFound
	}
	s.leaves[leave.ID] = leave
	return leave, nil
}

func (s *leaveRepositoryStub) GetLeave(ctx context.Context, id string) (Leave, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	leave, ok := s.leaves[id]
	if !ok {
		return Leave{}, ErrNotFound
	}
	return leave, nil
}

func (s *leaveRepositoryStub) ListLeaves(ctx context.Context, filter PeriodRepositoryFilter) ([]Leave, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var leaves []Leave
	for _, leave := range s.leaves {
		if filter.ExecutiveID != "" && leave.ExecutiveID != filter.ExecutiveID {
			continue
		}
		if filter.StartsAfter != nil && !leave.End.After(*filter.StartsAfter) {
			continue
		}
		if filter.EndsBefore != nil && !leave.Start.Before(*filter.EndsBefore) {
			continue
		}
		leaves = append(leaves, leave)
	}
	sort.Slice(leaves, func(i, j int) bool { return leaves[i].Start.Before(leaves[j].Start) })
	return leaves, nil
}

func (s *leaveRepositoryStub) DeleteLeave(ctx context.Context, id string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.leaves[id]; !ok {
		return ErrNotFound
	}
	delete(s.leaves, id)
	return nil
}

// engagementRepositoryStub keeps engagements in memory.
type engagementRepositoryStub struct {
	mu          sync.Mutex
	engagements map[string]Engagement
}

func newEngagementRepositoryStub() *engagementRepositoryStub {
	return &engagementRepositoryStub{engagements: make(map[string]Engagement)}
}

func (s *engagementRepositoryStub) seed(engagements ...Engagement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, engagement := range engagements {
		s.engagements[engagement.ID] = engagement
	}
}

func (s *engagementRepositoryStub) CreateEngagement(ctx context.Context, engagement Engagement) (Engagement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engagements[engagement.ID] = engagement
	return engagement, nil
}

func (s *engagementRepositoryStub) UpdateEngagement(ctx context.Context, engagement Engagement) (Engagement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.engagements[engagement.ID]; !ok {
		return Engagement{}, ErrNotFound
	}
	s.engagements[engagement.ID] = engagement
	return engagement, nil
}

func (s *engagementRepositoryStub) GetEngagement(ctx context.Context, id string) (Engagement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	engagement, ok := s.engagements[id]
	if !ok {
		return Engagement{}, ErrNotFound
	}
	return engagement, nil
}

func (s *engagementRepositoryStub) ListEngagements(ctx context.Context, filter PeriodRepositoryFilter) ([]Engagement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var engagements []Engagement
	for _, engagement := range s.engagements {
		if filter.ExecutiveID != "" && engagement.ExecutiveID != filter.ExecutiveID {
			continue
		}
		if filter.StartsAfter != nil && !engagement.End.After(*filter.StartsAfter) {
			continue
		}
		if filter.EndsBefore != nil && !engagement.Start.Before(*filter.EndsBefore) {
			continue
		}
		engagements = append(engagements, engagement)
	}
	sort.Slice(engagements, func(i, j int) bool { return engagements[i].Start.Before(engagements[j].Start) })
	return engagements, nil
}

func (s *engagementRepositoryStub) DeleteEngagement(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.engagements[id]; !ok {
		return ErrNotFound
	}
	delete(s.engagements, id)
	return nil
}

// escalationRepositoryStub records escalations in creation order.
type escalationRepositoryStub struct {
	mu          sync.Mutex
	escalations []Escalation
	createErr   error
}

func (s *escalationRepositoryStub) CreateEscalation(ctx context.Context, escalation Escalation) (Escalation, error) {
	if s.createErr != nil {
		return Escalation{}, s.createErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.escalations = append(s.escalations, escalation)
	return escalation, nil
}

func (s *escalationRepositoryStub) GetEscalation(ctx context.Context, id string) (Escalation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, escalation := range s.escalations {
		if escalation.ID == id {
			return escalation, nil
		}
	}
	return Escalation{}, ErrNotFound
}

func (s *escalationRepositoryStub) ListEscalations(ctx context.Context) ([]Escalation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Escalation, len(s.escalations))
	copy(out, s.escalations)
	return out, nil
}

func (s *escalationRepositoryStub) DeleteEscalation(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, escalation := range s.escalations {
		if escalation.ID == id {
			s.escalations = append(s.escalations[:i], s.escalations[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// mailerStub records every message handed to it.
type mailerStub struct {
	mu     sync.Mutex
	sent   []notify.Message
	failTo map[string]error
}

func newMailerStub() *mailerStub {
	return &mailerStub{}
}

func (m *mailerStub) Send(ctx context.Context, message notify.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.failTo[message.To]; ok {
		return err
	}
	m.sent = append(m.sent, message)
	return nil
}

func (m *mailerStub) recipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.sent))
	for _, message := range m.sent {
		out = append(out, message.To)
	}
	sort.Strings(out)
	return out
}
