package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func plainVerifier(hashedPassword, password string) error {
	if hashedPassword != password {
		return ErrInvalidCredentials
	}
	return nil
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.June, 12, 8, 0, 0, 0, time.UTC)

	t.Run("issues a session for valid credentials", func(t *testing.T) {
		t.Parallel()

		users := newUserDirectoryStub(User{ID: "user-1", Email: "alice@example.com", Role: RoleExecutive})
		users.hashes["alice@example.com"] = "secret"
		sessions := newSessionRepositoryStub()

		tokens := sequenceGenerator("session-id", "session-token")
		svc := NewAuthService(users, sessions, plainVerifier, tokens, func() time.Time { return now }, time.Hour, nil)

		result, err := svc.Login(context.Background(), LoginParams{Email: " Alice@Example.com ", Password: "secret"})
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if result.User.ID != "user-1" {
			t.Fatalf("expected user-1, got %s", result.User.ID)
		}
		if result.Session.Token != "session-token" {
			t.Fatalf("expected issued token, got %s", result.Session.Token)
		}
		if !result.Session.ExpiresAt.Equal(now.Add(time.Hour)) {
			t.Fatalf("unexpected expiry %v", result.Session.ExpiresAt)
		}
		if len(sessions.deleteCalls) != 1 || !sessions.deleteCalls[0].Equal(now) {
			t.Fatalf("expected expired sessions purged at now, got %#v", sessions.deleteCalls)
		}
	})

	t.Run("rejects an unknown email with invalid credentials", func(t *testing.T) {
		t.Parallel()

		svc := NewAuthService(newUserDirectoryStub(), newSessionRepositoryStub(), plainVerifier, nil, nil, time.Hour, nil)
		_, err := svc.Login(context.Background(), LoginParams{Email: "nobody@example.com", Password: "secret"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		t.Parallel()

		users := newUserDirectoryStub(User{ID: "user-1", Email: "alice@example.com"})
		users.hashes["alice@example.com"] = "secret"
		svc := NewAuthService(users, newSessionRepositoryStub(), plainVerifier, nil, nil, time.Hour, nil)

		_, err := svc.Login(context.Background(), LoginParams{Email: "alice@example.com", Password: "wrong"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("rejects blank credentials", func(t *testing.T) {
		t.Parallel()

		svc := NewAuthService(newUserDirectoryStub(), newSessionRepositoryStub(), plainVerifier, nil, nil, time.Hour, nil)
		_, err := svc.Login(context.Background(), LoginParams{})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("propagates session creation failures", func(t *testing.T) {
		t.Parallel()

		users := newUserDirectoryStub(User{ID: "user-1", Email: "alice@example.com"})
		users.hashes["alice@example.com"] = "secret"
		sessions := newSessionRepositoryStub()
		sessions.createErr = errors.New("boom")

		svc := NewAuthService(users, sessions, plainVerifier, nil, nil, time.Hour, nil)
		_, err := svc.Login(context.Background(), LoginParams{Email: "alice@example.com", Password: "secret"})
		if !errors.Is(err, sessions.createErr) {
			t.Fatalf("expected create error, got %v", err)
		}
	})
}

func TestAuthService_Logout(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.June, 12, 8, 0, 0, 0, time.UTC)

	t.Run("revokes the session once", func(t *testing.T) {
		t.Parallel()

		sessions := newSessionRepositoryStub()
		sessions.seed(Session{ID: "s-1", UserID: "user-1", Token: "tok", ExpiresAt: now.Add(time.Hour)})

		svc := NewAuthService(newUserDirectoryStub(), sessions, plainVerifier, nil, func() time.Time { return now }, time.Hour, nil)
		if err := svc.Logout(context.Background(), "tok"); err != nil {
			t.Fatalf("Logout failed: %v", err)
		}

		if err := svc.Logout(context.Background(), "tok"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected second logout to fail, got %v", err)
		}
	})

	t.Run("rejects a blank token", func(t *testing.T) {
		t.Parallel()

		svc := NewAuthService(newUserDirectoryStub(), newSessionRepositoryStub(), plainVerifier, nil, nil, time.Hour, nil)
		if err := svc.Logout(context.Background(), "  "); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestAuthService_ResolveToken(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.June, 12, 8, 0, 0, 0, time.UTC)
	users := newUserDirectoryStub(User{ID: "user-1", Email: "alice@example.com", Role: RoleSecretary})

	newService := func(sessions *sessionRepositoryStub) *AuthService {
		return NewAuthService(users, sessions, plainVerifier, nil, func() time.Time { return now }, time.Hour, nil)
	}

	t.Run("maps a live token to its principal", func(t *testing.T) {
		t.Parallel()

		sessions := newSessionRepositoryStub()
		sessions.seed(Session{ID: "s-1", UserID: "user-1", Token: "tok", ExpiresAt: now.Add(time.Minute)})

		principal, err := newService(sessions).ResolveToken(context.Background(), "tok")
		if err != nil {
			t.Fatalf("ResolveToken failed: %v", err)
		}
		if principal.UserID != "user-1" || principal.Role != RoleSecretary {
			t.Fatalf("unexpected principal %+v", principal)
		}
	})

	t.Run("rejects a revoked session", func(t *testing.T) {
		t.Parallel()

		revoked := now.Add(-time.Minute)
		sessions := newSessionRepositoryStub()
		sessions.seed(Session{ID: "s-1", UserID: "user-1", Token: "tok", ExpiresAt: now.Add(time.Hour), RevokedAt: &revoked})

		_, err := newService(sessions).ResolveToken(context.Background(), "tok")
		if !errors.Is(err, ErrSessionRevoked) {
			t.Fatalf("expected ErrSessionRevoked, got %v", err)
		}
	})

	t.Run("rejects an expired session", func(t *testing.T) {
		t.Parallel()

		sessions := newSessionRepositoryStub()
		sessions.seed(Session{ID: "s-1", UserID: "user-1", Token: "tok", ExpiresAt: now})

		_, err := newService(sessions).ResolveToken(context.Background(), "tok")
		if !errors.Is(err, ErrSessionExpired) {
			t.Fatalf("expected ErrSessionExpired, got %v", err)
		}
	})

	t.Run("rejects an unknown token", func(t *testing.T) {
		t.Parallel()

		_, err := newService(newSessionRepositoryStub()).ResolveToken(context.Background(), "missing")
		if !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})
}

// sequenceGenerator yields the given values in order, then numbered fallbacks.
func sequenceGenerator(values ...string) func() string {
	i := 0
	return func() string {
		if i < len(values) {
			value := values[i]
			i++
			return value
		}
		i++
		return fmt.Sprintf("generated-%d", i)
	}
}

// sessionRepositoryStub provides an in-memory SessionRepository for tests.
type sessionRepositoryStub struct {
	sessions map[string]Session

	createErr error
	getErr    error
	deleteErr error

	deleteCalls []time.Time
}

func newSessionRepositoryStub() *sessionRepositoryStub {
	return &sessionRepositoryStub{sessions: make(map[string]Session)}
}

func (s *sessionRepositoryStub) seed(session Session) {
	s.sessions[session.Token] = session
}

func (s *sessionRepositoryStub) CreateSession(ctx context.Context, session Session) (Session, error) {
	if s.createErr != nil {
		return Session{}, s.createErr
	}
	s.sessions[session.Token] = session
	return session, nil
}

func (s *sessionRepositoryStub) GetSession(ctx context.Context, token string) (Session, error) {
	if s.getErr != nil {
		return Session{}, s.getErr
	}
	session, ok := s.sessions[token]
	if !ok {
		return Session{}, ErrNotFound
	}
	return session, nil
}

func (s *sessionRepositoryStub) RevokeSession(ctx context.Context, token string, revokedAt time.Time) (Session, error) {
	session, ok := s.sessions[token]
	if !ok || session.RevokedAt != nil {
		return Session{}, ErrNotFound
	}
	session.RevokedAt = &revokedAt
	s.sessions[token] = session
	return session, nil
}

func (s *sessionRepositoryStub) DeleteExpiredSessions(ctx context.Context, reference time.Time) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleteCalls = append(s.deleteCalls, reference)
	for token, session := range s.sessions {
		if !session.ExpiresAt.After(reference) {
			delete(s.sessions, token)
		}
	}
	return nil
}
