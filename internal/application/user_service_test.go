package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/executive-scheduler/internal/testfixtures"
)

// accountRepositoryStub implements UserAccountRepository on top of the user
// directory stub.
type accountRepositoryStub struct {
	*userDirectoryStub
	createErr error
}

func (s *accountRepositoryStub) CreateUser(ctx context.Context, credentials UserCredentials) (User, error) {
	if s.createErr != nil {
		return User{}, s.createErr
	}
	for _, existing := range s.users {
		if existing.Email == credentials.User.Email {
			return User{}, ErrAlreadyExists
		}
	}
	s.users[credentials.User.ID] = credentials.User
	s.hashes[credentials.User.Email] = credentials.PasswordHash
	return credentials.User, nil
}

func newUserServiceFixture(t *testing.T) (*UserService, *accountRepositoryStub, *meetingRepositoryStub, *leaveRepositoryStub, *engagementRepositoryStub) {
	t.Helper()

	accounts := &accountRepositoryStub{userDirectoryStub: newUserDirectoryStub(
		User{ID: "exec-1", Name: "Alice", Email: "alice@example.com", Role: RoleExecutive},
	)}
	meetings := newMeetingRepositoryStub()
	leaves := newLeaveRepositoryStub()
	engagements := newEngagementRepositoryStub()

	calendar := NewBusyCalendar(meetings, leaves, engagements)
	clock := testfixtures.NewClock(time.Date(2025, time.June, 12, 8, 0, 0, 0, time.UTC))
	ids := testfixtures.NewIDGenerator("user")

	hasher := func(password string) (string, error) { return "hashed:" + password, nil }
	svc := NewUserService(accounts, calendar, hasher, ids.NextFunc(), clock.NowFunc(), nil)
	return svc, accounts, meetings, leaves, engagements
}

func TestUserService_Register(t *testing.T) {
	t.Parallel()

	t.Run("creates an executive by default", func(t *testing.T) {
		t.Parallel()

		svc, accounts, _, _, _ := newUserServiceFixture(t)
		user, err := svc.Register(context.Background(), RegisterUserParams{
			Name:     " Bob ",
			Email:    "Bob@Example.com",
			Password: "password123",
		})
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if user.Name != "Bob" || user.Email != "bob@example.com" || user.Role != RoleExecutive {
			t.Fatalf("unexpected user %+v", user)
		}
		if accounts.hashes["bob@example.com"] != "hashed:password123" {
			t.Fatalf("expected the hashed password stored, got %q", accounts.hashes["bob@example.com"])
		}
	})

	t.Run("accumulates validation failures", func(t *testing.T) {
		t.Parallel()

		svc, _, _, _, _ := newUserServiceFixture(t)
		_, err := svc.Register(context.Background(), RegisterUserParams{
			Email:    "not-an-email",
			Password: "short",
			Role:     "janitor",
		})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected a validation error, got %v", err)
		}
		for _, field := range []string{"name", "email", "password", "role"} {
			if vErr.FieldErrors[field] == "" {
				t.Fatalf("expected a %s error, got %+v", field, vErr.FieldErrors)
			}
		}
	})

	t.Run("surfaces duplicate emails", func(t *testing.T) {
		t.Parallel()

		svc, _, _, _, _ := newUserServiceFixture(t)
		_, err := svc.Register(context.Background(), RegisterUserParams{
			Name:     "Another Alice",
			Email:    "alice@example.com",
			Password: "password123",
		})
		if !errors.Is(err, ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})
}

func TestUserService_ListByRole(t *testing.T) {
	t.Parallel()

	svc, accounts, _, _, _ := newUserServiceFixture(t)
	accounts.users["sec-1"] = User{ID: "sec-1", Name: "Sue", Email: "sue@example.com", Role: RoleSecretary}

	executives, err := svc.ListByRole(context.Background(), RoleExecutive)
	if err != nil {
		t.Fatalf("ListByRole failed: %v", err)
	}
	if len(executives) != 1 || executives[0].ID != "exec-1" {
		t.Fatalf("unexpected executives %+v", executives)
	}

	if _, err := svc.ListByRole(context.Background(), "janitor"); err == nil {
		t.Fatal("expected an invalid role to be rejected")
	}
}

func TestUserService_DaySchedule(t *testing.T) {
	t.Parallel()

	day := time.Date(2025, time.June, 16, 0, 0, 0, 0, time.UTC)
	svc, _, meetings, leaves, engagements := newUserServiceFixture(t)

	meetings.seed(Meeting{ID: "m-1", Title: "Planning", Start: day.Add(9 * time.Hour), End: day.Add(10 * time.Hour), CreatorID: "exec-1"})
	leaves.seed(Leave{ID: "l-1", ExecutiveID: "exec-1", Start: day.Add(13 * time.Hour), End: day.Add(14 * time.Hour), Reason: "dentist"})
	engagements.seed(Engagement{ID: "e-1", ExecutiveID: "exec-1", Start: day.Add(7 * time.Hour), End: day.Add(8 * time.Hour), Description: "gym"})

	entries, err := svc.DaySchedule(context.Background(), Principal{UserID: "exec-1", Role: RoleExecutive}, day)
	if err != nil {
		t.Fatalf("DaySchedule failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	wantKinds := []string{"engagement", "meeting", "leave"}
	for i, kind := range wantKinds {
		if entries[i].Kind != kind {
			t.Fatalf("expected %s at position %d, got %+v", kind, i, entries[i])
		}
	}
}
