package alert

import (
	"stocktrack-backend/internal/config"

	"gopkg.in/gomail.v2"
)

// Sender delivers one notification to a list of recipients.
type Sender interface {
	Send(to []string, subject, body string) error
}

// SMTPSender sends through the configured SMTP relay via gomail.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(cfg *config.Config) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:   cfg.MailSender,
	}
}

func (s *SMTPSender) Send(to []string, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	return s.dialer.DialAndSend(m)
}
