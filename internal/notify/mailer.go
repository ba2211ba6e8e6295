package notify

import "context"

// Message is a single outbound notification email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers notification messages. Callers treat delivery as
// best-effort: a failed send is logged by the caller and never fails the
// operation that triggered it.
type Mailer interface {
	Send(ctx context.Context, message Message) error
}
