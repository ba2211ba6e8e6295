package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures environment driven configuration values for the scheduler service.
type Config struct {
	HTTPPort      int
	SQLiteDSN     string
	SessionSecret string
	SessionTTL    time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	SecretaryEmail   string
	ReminderSchedule string
}

// SMTPEnabled reports whether outbound email delivery is configured. When it
// is not, notifications are logged instead of sent.
func (c Config) SMTPEnabled() bool {
	return c.SMTPHost != "" && c.SMTPFrom != ""
}

// Load parses configuration values from the current process environment.
//
// The loader applies sensible defaults for optional fields while validating
// required values and reporting every missing or malformed entry at once.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:         8080,
		SQLiteDSN:        "file:scheduler.db?_foreign_keys=on",
		SessionTTL:       24 * time.Hour,
		SMTPPort:         587,
		ReminderSchedule: "* * * * *",
	}

	missing := make([]string, 0, 1)
	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("SCHEDULER_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "SCHEDULER_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("SCHEDULER_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if secret := strings.TrimSpace(os.Getenv("SCHEDULER_SESSION_SECRET")); secret == "" {
		missing = append(missing, "SCHEDULER_SESSION_SECRET")
	} else {
		cfg.SessionSecret = secret
	}

	if ttlValue := strings.TrimSpace(os.Getenv("SCHEDULER_SESSION_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "SCHEDULER_SESSION_TTL")
		} else {
			cfg.SessionTTL = ttl
		}
	}

	cfg.SMTPHost = strings.TrimSpace(os.Getenv("SCHEDULER_SMTP_HOST"))
	if portValue := strings.TrimSpace(os.Getenv("SCHEDULER_SMTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "SCHEDULER_SMTP_PORT")
		} else {
			cfg.SMTPPort = port
		}
	}
	cfg.SMTPFrom = strings.TrimSpace(os.Getenv("SCHEDULER_SMTP_FROM"))
	cfg.SMTPUsername = strings.TrimSpace(os.Getenv("SCHEDULER_SMTP_USERNAME"))
	cfg.SMTPPassword = strings.TrimSpace(os.Getenv("SCHEDULER_SMTP_PASSWORD"))
	if cfg.SMTPHost != "" && cfg.SMTPFrom == "" {
		missing = append(missing, "SCHEDULER_SMTP_FROM")
	}

	cfg.SecretaryEmail = strings.TrimSpace(os.Getenv("SCHEDULER_SECRETARY_EMAIL"))

	if schedule := strings.TrimSpace(os.Getenv("SCHEDULER_REMINDER_SCHEDULE")); schedule != "" {
		cfg.ReminderSchedule = schedule
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variable values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
