package application

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestSecretaryService_Broadcast(t *testing.T) {
	t.Parallel()

	secretary := Principal{UserID: "sec-1", Role: RoleSecretary}
	users := newUserDirectoryStub(
		User{ID: "exec-1", Name: "Alice", Email: "alice@example.com", Role: RoleExecutive},
		User{ID: "exec-2", Name: "Bob", Email: "bob@example.com", Role: RoleExecutive},
		User{ID: "sec-1", Name: "Sue", Email: "sue@example.com", Role: RoleSecretary},
	)

	t.Run("mails every executive when no recipients are named", func(t *testing.T) {
		t.Parallel()

		mailer := newMailerStub()
		svc := NewSecretaryService(users, mailer, nil)

		sent, err := svc.Broadcast(context.Background(), BroadcastParams{
			Principal: secretary,
			Subject:   "Quarterly offsite",
			Body:      "Please hold the date.",
		})
		if err != nil {
			t.Fatalf("Broadcast failed: %v", err)
		}
		if sent != 2 {
			t.Fatalf("expected 2 recipients, got %d", sent)
		}
		want := []string{"alice@example.com", "bob@example.com"}
		if got := mailer.recipients(); !reflect.DeepEqual(got, want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
	})

	t.Run("mails only the named executives", func(t *testing.T) {
		t.Parallel()

		mailer := newMailerStub()
		svc := NewSecretaryService(users, mailer, nil)

		sent, err := svc.Broadcast(context.Background(), BroadcastParams{
			Principal:    secretary,
			ExecutiveIDs: []string{"exec-2"},
			Subject:      "Reminder",
			Body:         "Budget figures due.",
		})
		if err != nil {
			t.Fatalf("Broadcast failed: %v", err)
		}
		if sent != 1 || mailer.sent[0].To != "bob@example.com" {
			t.Fatalf("expected only Bob mailed, got %d, %v", sent, mailer.recipients())
		}
	})

	t.Run("prefixes the body with the date when given", func(t *testing.T) {
		t.Parallel()

		mailer := newMailerStub()
		svc := NewSecretaryService(users, mailer, nil)
		date := time.Date(2025, time.June, 16, 0, 0, 0, 0, time.UTC)

		_, err := svc.Broadcast(context.Background(), BroadcastParams{
			Principal:    secretary,
			ExecutiveIDs: []string{"exec-1"},
			Subject:      "Meeting coordination",
			Body:         "Please pick a slot.",
			Date:         &date,
		})
		if err != nil {
			t.Fatalf("Broadcast failed: %v", err)
		}
		if got := mailer.sent[0].Body; got != "Regarding Mon, Jun 16, 2025:\n\nPlease pick a slot." {
			t.Fatalf("unexpected body %q", got)
		}
	})

	t.Run("counts only successful deliveries", func(t *testing.T) {
		t.Parallel()

		mailer := newMailerStub()
		mailer.failTo = map[string]error{"alice@example.com": errors.New("smtp down")}
		svc := NewSecretaryService(users, mailer, nil)

		sent, err := svc.Broadcast(context.Background(), BroadcastParams{
			Principal: secretary,
			Subject:   "Offsite",
			Body:      "Hold the date.",
		})
		if err != nil {
			t.Fatalf("Broadcast failed: %v", err)
		}
		if sent != 1 {
			t.Fatalf("expected one successful delivery, got %d", sent)
		}
	})

	t.Run("rejects non-secretaries", func(t *testing.T) {
		t.Parallel()

		svc := NewSecretaryService(users, newMailerStub(), nil)
		_, err := svc.Broadcast(context.Background(), BroadcastParams{
			Principal: Principal{UserID: "exec-1", Role: RoleExecutive},
			Subject:   "Offsite",
			Body:      "Hold the date.",
		})
		if !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("requires a subject and body", func(t *testing.T) {
		t.Parallel()

		svc := NewSecretaryService(users, newMailerStub(), nil)
		_, err := svc.Broadcast(context.Background(), BroadcastParams{Principal: secretary})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected a validation error, got %v", err)
		}
		if vErr.FieldErrors["subject"] == "" || vErr.FieldErrors["body"] == "" {
			t.Fatalf("expected subject and body errors, got %+v", vErr.FieldErrors)
		}
	})

	t.Run("rejects unknown executives", func(t *testing.T) {
		t.Parallel()

		svc := NewSecretaryService(users, newMailerStub(), nil)
		_, err := svc.Broadcast(context.Background(), BroadcastParams{
			Principal:    secretary,
			ExecutiveIDs: []string{"ghost"},
			Subject:      "Offsite",
			Body:         "Hold the date.",
		})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected a validation error, got %v", err)
		}
	})
}
