// Package email sends transactional mail over SMTP. Send failures are
// surfaced to the caller: the enclosing operation (e.g. registration)
// decides whether to roll back.
package email

import (
	"fmt"

	"amparo/internal/config"

	"gopkg.in/gomail.v2"
)

type Service struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
}

// NewService creates an SMTP email service from MAIL_* environment config.
func NewService() (*Service, error) {
	username := config.GetEnv("MAIL_USER", "")
	password := config.GetEnv("MAIL_PASS", "")
	if username == "" || password == "" {
		return nil, fmt.Errorf("SMTP credentials not configured")
	}

	dialer := gomail.NewDialer(
		config.GetEnv("MAIL_HOST", "smtp.gmail.com"),
		config.GetIntEnv("MAIL_PORT", 587),
		username,
		password,
	)

	return &Service{
		dialer:   dialer,
		from:     config.GetEnv("MAIL_FROM", username),
		fromName: config.GetEnv("MAIL_FROM_NAME", "Amparo"),
	}, nil
}

// Send delivers an HTML email.
func (s *Service) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", s.fromName, s.from))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
