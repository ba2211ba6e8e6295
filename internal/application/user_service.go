package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"sort"
	"strings"
	"time"
)

// UserAccountRepository captures the persistence interactions needed to
// manage accounts.
type UserAccountRepository interface {
	CreateUser(ctx context.Context, credentials UserCredentials) (User, error)
	GetUser(ctx context.Context, id string) (User, error)
	ListUsers(ctx context.Context, filter UserDirectoryFilter) ([]User, error)
}

// PasswordHasher derives a storable hash from a plain password.
type PasswordHasher func(password string) (string, error)

// UserService orchestrates registration, profile lookup, and combined day
// schedules.
type UserService struct {
	accounts     UserAccountRepository
	calendar     *BusyCalendar
	hashPassword PasswordHasher
	idGenerator  func() string
	now          func() time.Time
	logger       *slog.Logger
}

// NewUserService wires dependencies for user operations.
func NewUserService(accounts UserAccountRepository, calendar *BusyCalendar, hashPassword PasswordHasher, idGenerator func() string, now func() time.Time, logger *slog.Logger) *UserService {
	if hashPassword == nil {
		hashPassword = func(password string) (string, error) {
			return CreatePasswordHash(password, DefaultPasswordHashParams)
		}
	}
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &UserService{
		accounts:     accounts,
		calendar:     calendar,
		hashPassword: hashPassword,
		idGenerator:  idGenerator,
		now:          now,
		logger:       defaultLogger(logger),
	}
}

func (s *UserService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "UserService", operation, attrs...)
}

// Register validates input and persists a new account.
func (s *UserService) Register(ctx context.Context, params RegisterUserParams) (user User, err error) {
	if s == nil {
		return User{}, fmt.Errorf("UserService is nil")
	}

	email := strings.TrimSpace(strings.ToLower(params.Email))
	logger := s.loggerWith(ctx, "Register", "email", email)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "registration rejected", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("user_id", user.ID).InfoContext(ctx, "user registered")
	}()

	vErr := &ValidationError{}
	if strings.TrimSpace(params.Name) == "" {
		vErr.add("name", "name is required")
	}
	if email == "" {
		vErr.add("email", "email is required")
	} else if _, mailErr := mail.ParseAddress(email); mailErr != nil {
		vErr.add("email", "email is invalid")
	}
	if len(params.Password) < 8 {
		vErr.add("password", "password must be at least 8 characters")
	}
	role := strings.TrimSpace(params.Role)
	if role == "" {
		role = RoleExecutive
	}
	if role != RoleExecutive && role != RoleSecretary {
		vErr.add("role", "role must be executive or secretary")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	hash, err := s.hashPassword(params.Password)
	if err != nil {
		return
	}

	createdAt := s.now()
	user, err = s.accounts.CreateUser(ctx, UserCredentials{
		User: User{
			ID:        s.idGenerator(),
			Name:      strings.TrimSpace(params.Name),
			Email:     email,
			Role:      role,
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		},
		PasswordHash: hash,
	})
	if err != nil {
		user = User{}
	}
	return
}

// Profile returns the principal's own account.
func (s *UserService) Profile(ctx context.Context, principal Principal) (User, error) {
	if s == nil {
		return User{}, fmt.Errorf("UserService is nil")
	}
	return s.accounts.GetUser(ctx, principal.UserID)
}

// ListByRole lists users, optionally narrowed to one role.
func (s *UserService) ListByRole(ctx context.Context, role string) ([]User, error) {
	if s == nil {
		return nil, fmt.Errorf("UserService is nil")
	}
	role = strings.TrimSpace(role)
	if role != "" && role != RoleExecutive && role != RoleSecretary {
		vErr := &ValidationError{}
		vErr.add("role", "role must be executive or secretary")
		return nil, vErr
	}
	return s.accounts.ListUsers(ctx, UserDirectoryFilter{Role: role})
}

// DaySchedule returns the user's combined meetings, leaves, and engagements
// overlapping the given date, sorted by start.
func (s *UserService) DaySchedule(ctx context.Context, principal Principal, date time.Time) ([]DayScheduleEntry, error) {
	if s == nil {
		return nil, fmt.Errorf("UserService is nil")
	}

	window := dayBounds(date)
	events, err := s.calendar.BusyEvents(ctx, []string{principal.UserID}, window)
	if err != nil {
		return nil, err
	}

	entries := make([]DayScheduleEntry, 0, len(events))
	for _, event := range events {
		entries = append(entries, DayScheduleEntry{
			Kind:  string(event.Ref.Kind),
			ID:    event.Ref.ID,
			Title: event.Title,
			Start: event.Span.Start,
			End:   event.Span.End,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Start.Equal(entries[j].Start) {
			return entries[i].ID < entries[j].ID
		}
		return entries[i].Start.Before(entries[j].Start)
	})
	return entries, nil
}
