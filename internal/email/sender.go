package email

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

// SMTPSender delivers mail over SMTP via gomail.
type SMTPSender struct {
	config Config
	dialer *gomail.Dialer
}

// NewSMTPSender creates a new SMTP sender.
func NewSMTPSender(config Config) (Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid email config: %w", err)
	}

	dialer := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.Username, config.Password)

	return &SMTPSender{
		config: config,
		dialer: dialer,
	}, nil
}

func (s *SMTPSender) send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromEmail, s.config.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

// SendVerification sends the email-verification message.
func (s *SMTPSender) SendVerification(to, name, verifyURL string) error {
	body, err := renderVerification(name, verifyURL)
	if err != nil {
		return err
	}
	return s.send(to, "Verify your email address", body)
}

// SendWelcome sends the post-verification welcome message.
func (s *SMTPSender) SendWelcome(to, name, role string) error {
	body, err := renderWelcome(name, role)
	if err != nil {
		return err
	}
	return s.send(to, "Welcome to the Caregiver Certification Association", body)
}
