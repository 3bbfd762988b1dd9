// Package mail delivers password-reset notifications over SMTP.
package mail

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// Config holds the SMTP credentials for the reset-mail transport.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender sends reset mails through an SMTP server.
// Delivery is synchronous; the caller decides how a failure surfaces.
type SMTPSender struct {
	dialer  *gomail.Dialer
	from    string
	baseURL string
}

// NewSMTPSender creates a sender from the given SMTP config.
// baseURL is the public URL prefix embedded in reset links.
func NewSMTPSender(cfg Config, baseURL string) *SMTPSender {
	return &SMTPSender{
		dialer:  gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:    cfg.From,
		baseURL: baseURL,
	}
}

// SendPasswordReset mails the reset link for the given token to the user.
func (s *SMTPSender) SendPasswordReset(ctx context.Context, to, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := buildResetMessage(s.from, to, resetLink(s.baseURL, token))
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send reset mail: %w", err)
	}
	return nil
}

// resetLink builds the URL the user follows to complete the reset.
func resetLink(baseURL, token string) string {
	return fmt.Sprintf("%s/reset-password/%s", baseURL, token)
}

// buildResetMessage assembles the plain-text reset mail.
func buildResetMessage(from, to, link string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Password Reset Request")
	m.SetBody("text/plain", "Click the link to reset your password: "+link)
	return m
}
