package email

import (
	"time"

	"tfl_backend/internal/config"
)

// SMTPConfig holds the SMTP server settings
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	UseTLS    bool // implicit TLS instead of STARTTLS
	Timeout   time.Duration
}

// ConfigFromApp maps the application config onto SMTPConfig
func ConfigFromApp(cfg *config.Config) *SMTPConfig {
	from := cfg.Email.FromEmail
	if from == "" {
		from = cfg.Email.SMTPUsername
	}
	return &SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: from,
		FromName:  cfg.Email.FromName,
		UseTLS:    cfg.Email.SMTPSecure,
		Timeout:   30 * time.Second,
	}
}

// Configured reports whether credentials are present
func (c *SMTPConfig) Configured() bool {
	return c.Username != "" && c.Password != ""
}
