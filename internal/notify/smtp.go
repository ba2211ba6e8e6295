package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPConfig holds the SMTP server configuration.
type SMTPConfig struct {
	Host     string
	Port     int
	From     string
	Username string // Optional for authenticated SMTP
	Password string // Optional for authenticated SMTP
}

// SMTPMailer implements Mailer over plain SMTP.
type SMTPMailer struct {
	config SMTPConfig
	send   func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPMailer creates a mailer that delivers through the configured server.
func NewSMTPMailer(config SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		config: config,
		send:   smtp.SendMail,
	}
}

// Send builds an RFC 5322 message and hands it to the SMTP server.
func (m *SMTPMailer) Send(_ context.Context, message Message) error {
	if message.To == "" {
		return fmt.Errorf("notify: message has no recipient")
	}

	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)

	var auth smtp.Auth
	if m.config.Username != "" && m.config.Password != "" {
		auth = smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	}

	payload := buildMessage(message, m.config.From)
	if err := m.send(addr, auth, m.config.From, []string{message.To}, []byte(payload)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// buildMessage assembles the headers and plain-text body.
func buildMessage(message Message, from string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("From: %s\r\n", from))
	b.WriteString(fmt.Sprintf("To: %s\r\n", message.To))
	b.WriteString(fmt.Sprintf("Subject: %s\r\n", message.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(message.Body)
	b.WriteString("\r\n")

	return b.String()
}
