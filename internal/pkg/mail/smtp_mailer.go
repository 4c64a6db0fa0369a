package mail

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/mip-institute/mip-backend/internal/pkg/config"
)

// Mailer sends plain-text transactional mail over SMTP with STARTTLS.
type Mailer struct {
	cfg config.SMTPConfig
}

// NewMailer creates a mailer from SMTP settings.
func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// Send dispatches one message. Callers on the confirmation path treat an
// error as log-and-skip: the transaction's email_sent flag stays false and a
// redelivered webhook retries the whole flow.
func (m *Mailer) Send(to string, subject string, body string) error {
	sender := m.cfg.Sender
	if sender == "" {
		sender = m.cfg.Username
	}

	var auth smtp.Auth
	if m.cfg.Username != "" && m.cfg.Password != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	addr := fmt.Sprintf("%s:%s", m.cfg.Host, m.cfg.Port)

	msg := []byte(
		fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n", sender, to, subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/plain; charset=UTF-8\r\n\r\n" +
			body,
	)

	err := smtp.SendMail(addr, auth, sender, []string{to}, msg)
	if err != nil {
		log.Printf("SMTP send error for %s: %v", to, err)
	} else {
		log.Printf("Email sent to %s via %s", to, addr)
	}
	return err
}
