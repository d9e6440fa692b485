package mail

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"
)

// Mailer delivers outbound mail. The reset flow only ever needs
// recipient, subject and a plain text body.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends mail through an SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer creates a mailer for the given relay.
func NewSMTPMailer(host string, port int, user, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
	}
}

// Send delivers a plain text message.
func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

// LogMailer writes mail to the process log instead of sending it.
// Used when no SMTP credentials are configured, and in tests.
type LogMailer struct{}

// Send logs the message.
func (LogMailer) Send(to, subject, body string) error {
	log.Printf("mail (not sent) to=%s subject=%q body=%q", to, subject, body)
	return nil
}

// ResetLink builds the front-end URL a user follows to reset their password.
func ResetLink(frontendURL string, userID uint, token string) string {
	return fmt.Sprintf("%s/forgot-password?user_id=%d&token=%s", frontendURL, userID, token)
}
