package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"regexp"

	"gopkg.in/gomail.v2"

	"tfl_backend/internal/logger"
	"tfl_backend/pkg/apperrors"
)

// SMTPProvider sends mail through an SMTP relay with gomail
type SMTPProvider struct {
	config    *SMTPConfig
	templates *TemplateManager
	dialer    *gomail.Dialer
}

func NewSMTPProvider(config *SMTPConfig, templates *TemplateManager) *SMTPProvider {
	d := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	d.SSL = config.UseTLS
	d.TLSConfig = &tls.Config{ServerName: config.Host}

	return &SMTPProvider{
		config:    config,
		templates: templates,
		dialer:    d,
	}
}

func (p *SMTPProvider) SendVerification(ctx context.Context, to, verifyURL string) error {
	return p.send(ctx, KindVerification, to,
		"Verify your email – "+p.config.FromName,
		fmt.Sprintf("Welcome to %s.\n\nConfirm your email address by opening this link:\n%s\n\nThe link expires in 24 hours.\n", p.config.FromName, verifyURL),
		verifyURL,
	)
}

func (p *SMTPProvider) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	return p.send(ctx, KindPasswordReset, to,
		"Reset your password – "+p.config.FromName,
		fmt.Sprintf("Someone asked to reset the password for your %s account.\n\nChoose a new password here:\n%s\n\nThe link expires in 1 hour. If this wasn't you, ignore this email.\n", p.config.FromName, resetURL),
		resetURL,
	)
}

func (p *SMTPProvider) send(ctx context.Context, kind Kind, to, subject, text, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	html, err := p.templates.Render(string(kind), TemplateData{
		"SiteName": p.config.FromName,
		"URL":      url,
	})
	if err != nil {
		return err
	}

	msg := p.buildMessage(&Email{To: to, Subject: subject, Body: text, HTMLBody: html})
	err = p.dialer.DialAndSend(msg)
	logger.MailLog(ctx, "smtp", string(kind), to, err)
	if err != nil {
		return ClassifySendError(err)
	}
	return nil
}

func (p *SMTPProvider) buildMessage(email *Email) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.config.FromEmail, p.config.FromName)
	m.SetHeader("To", email.To)
	m.SetHeader("Subject", email.Subject)
	m.SetBody("text/plain", email.Body)
	if email.HTMLBody != "" {
		m.AddAlternative("text/html", email.HTMLBody)
	}
	return m
}

var authFailure = regexp.MustCompile(`(?i)535|authentication failed|invalid login`)

// ClassifySendError turns an SMTP failure into a user-facing error
func ClassifySendError(err error) error {
	if authFailure.MatchString(err.Error()) {
		return apperrors.NewExternalServiceError(err, "email",
			"SMTP authentication failed. Check SMTP_USER and the SMTP token in SMTP_PASS.")
	}
	return apperrors.NewExternalServiceError(err, "email", "Could not send email: "+err.Error())
}
