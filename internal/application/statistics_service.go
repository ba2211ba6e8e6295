package application

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"
)

const workingHoursPerDay = 8.0

// StatisticsService aggregates meeting load per executive and per project.
type StatisticsService struct {
	meetings MeetingRepository
	users    UserDirectory
	logger   *slog.Logger
}

// NewStatisticsService wires dependencies for statistics queries.
func NewStatisticsService(meetings MeetingRepository, users UserDirectory, logger *slog.Logger) *StatisticsService {
	return &StatisticsService{meetings: meetings, users: users, logger: defaultLogger(logger)}
}

// ExecutiveTime reports each executive's meeting count and total hours over
// the range.
func (s *StatisticsService) ExecutiveTime(ctx context.Context, r StatisticsRange) ([]ExecutiveTimeStat, error) {
	if s == nil {
		return nil, fmt.Errorf("StatisticsService is nil")
	}
	if err := validateRange(r); err != nil {
		return nil, err
	}

	executives, meetings, err := s.load(ctx, r)
	if err != nil {
		return nil, err
	}

	stats := make([]ExecutiveTimeStat, 0, len(executives))
	for _, executive := range executives {
		stat := ExecutiveTimeStat{ExecutiveID: executive.ID, ExecutiveName: executive.Name}
		for _, meeting := range meetings {
			if !attendsMeeting(meeting, executive.ID) {
				continue
			}
			stat.MeetingCount++
			stat.TotalHours += meeting.End.Sub(meeting.Start).Hours()
		}
		stats = append(stats, stat)
	}

	sort.Slice(stats, func(i, j int) bool { return stats[i].TotalHours > stats[j].TotalHours })
	return stats, nil
}

// Projects reports the meeting count, total hours, and man-hours attributed
// to each project over the range. Man-hours multiply duration by the number
// of participants. Meetings without a project are grouped under "unassigned".
func (s *StatisticsService) Projects(ctx context.Context, r StatisticsRange) ([]ProjectStat, error) {
	if s == nil {
		return nil, fmt.Errorf("StatisticsService is nil")
	}
	if err := validateRange(r); err != nil {
		return nil, err
	}

	meetings, err := s.meetings.ListMeetings(ctx, MeetingRepositoryFilter{
		StartsAfter: &r.From,
		EndsBefore:  &r.To,
	})
	if err != nil {
		return nil, err
	}

	byProject := make(map[string]*ProjectStat)
	for _, meeting := range meetings {
		name := meeting.ProjectName
		if name == "" {
			name = "unassigned"
		}
		stat, ok := byProject[name]
		if !ok {
			stat = &ProjectStat{ProjectName: name}
			byProject[name] = stat
		}
		hours := meeting.End.Sub(meeting.Start).Hours()
		stat.MeetingCount++
		stat.TotalHours += hours
		stat.ManHours += hours * float64(len(meeting.Participants()))
	}

	stats := make([]ProjectStat, 0, len(byProject))
	for _, stat := range byProject {
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].ManHours > stats[j].ManHours })
	return stats, nil
}

// ExecutiveFraction reports the share of working hours each executive spends
// in meetings, assuming an eight hour weekday.
func (s *StatisticsService) ExecutiveFraction(ctx context.Context, r StatisticsRange) ([]ExecutiveFractionStat, error) {
	if s == nil {
		return nil, fmt.Errorf("StatisticsService is nil")
	}
	if err := validateRange(r); err != nil {
		return nil, err
	}

	executives, meetings, err := s.load(ctx, r)
	if err != nil {
		return nil, err
	}

	working := float64(weekdaysBetween(r.From, r.To)) * workingHoursPerDay

	stats := make([]ExecutiveFractionStat, 0, len(executives))
	for _, executive := range executives {
		stat := ExecutiveFractionStat{
			ExecutiveID:   executive.ID,
			ExecutiveName: executive.Name,
			WorkingHours:  working,
		}
		for _, meeting := range meetings {
			if attendsMeeting(meeting, executive.ID) {
				stat.MeetingHours += meeting.End.Sub(meeting.Start).Hours()
			}
		}
		if working > 0 {
			stat.Fraction = stat.MeetingHours / working
		}
		stats = append(stats, stat)
	}

	sort.Slice(stats, func(i, j int) bool { return stats[i].Fraction > stats[j].Fraction })
	return stats, nil
}

func (s *StatisticsService) load(ctx context.Context, r StatisticsRange) ([]User, []Meeting, error) {
	executives, err := s.users.ListUsers(ctx, UserDirectoryFilter{Role: RoleExecutive})
	if err != nil {
		return nil, nil, err
	}
	meetings, err := s.meetings.ListMeetings(ctx, MeetingRepositoryFilter{
		StartsAfter: &r.From,
		EndsBefore:  &r.To,
	})
	if err != nil {
		return nil, nil, err
	}
	return executives, meetings, nil
}

func attendsMeeting(meeting Meeting, userID string) bool {
	for _, participant := range meeting.Participants() {
		if participant == userID {
			return true
		}
	}
	return false
}

func validateRange(r StatisticsRange) error {
	vErr := &ValidationError{}
	if r.From.IsZero() {
		vErr.add("from", "from is required")
	}
	if r.To.IsZero() {
		vErr.add("to", "to is required")
	}
	if !r.From.IsZero() && !r.To.IsZero() && !r.To.After(r.From) {
		vErr.add("to", "to must be after from")
	}
	if vErr.HasErrors() {
		return vErr
	}
	return nil
}

func weekdaysBetween(from, to time.Time) int {
	days := 0
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	return days
}
