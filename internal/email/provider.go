package email

import (
	"context"
	"errors"

	"tfl_backend/internal/config"
	"tfl_backend/internal/logger"
)

// Provider sends the portal's account emails
type Provider interface {
	// SendVerification mails the email verification link
	SendVerification(ctx context.Context, to, verifyURL string) error

	// SendPasswordReset mails the password reset link
	SendPasswordReset(ctx context.Context, to, resetURL string) error
}

// ErrNotConfigured is returned in production when SMTP credentials are missing
var ErrNotConfigured = errors.New("email is not configured")

// NewProvider picks the SMTP provider when credentials are set. Without them,
// development logs the links and production refuses to send.
func NewProvider(cfg *config.Config) (Provider, error) {
	smtpCfg := ConfigFromApp(cfg)
	if smtpCfg.Configured() {
		templates, err := NewTemplateManager()
		if err != nil {
			return nil, err
		}
		return NewSMTPProvider(smtpCfg, templates), nil
	}
	if cfg.IsProduction() {
		logger.Warn("SMTP_USER/SMTP_PASS not set; account emails are disabled")
		return UnconfiguredProvider{}, nil
	}
	return NewLogProvider(), nil
}

// UnconfiguredProvider fails every send with ErrNotConfigured
type UnconfiguredProvider struct{}

func (UnconfiguredProvider) SendVerification(context.Context, string, string) error {
	return ErrNotConfigured
}

func (UnconfiguredProvider) SendPasswordReset(context.Context, string, string) error {
	return ErrNotConfigured
}
