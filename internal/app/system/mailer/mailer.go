// internal/app/system/mailer/mailer.go

// Package mailer sends transactional email. Handlers call it fire-and-forget:
// a mail failure is logged and never blocks the request that triggered it.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

// Email is a single outbound message with both bodies populated.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Mailer delivers email.
type Mailer interface {
	Send(e Email) error
}

/* -------------------------------------------------------------------------- */
/* Log mailer (dev / tests)                                                   */
/* -------------------------------------------------------------------------- */

// LogMailer writes messages to the log instead of the wire. Used when no
// SMTP host is configured.
type LogMailer struct {
	Log *zap.Logger
}

func (m *LogMailer) Send(e Email) error {
	log := m.Log
	if log == nil {
		log = zap.L()
	}
	log.Info("mail (not sent, log mailer)",
		zap.String("to", e.To),
		zap.String("subject", e.Subject))
	return nil
}

/* -------------------------------------------------------------------------- */
/* SMTP mailer                                                                */
/* -------------------------------------------------------------------------- */

// SMTPMailer delivers via a plain SMTP relay with optional auth.
type SMTPMailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (m *SMTPMailer) Send(e Email) error {
	addr := fmt.Sprintf("%s:%d", m.Host, m.Port)

	var auth smtp.Auth
	if m.Username != "" {
		auth = smtp.PlainAuth("", m.Username, m.Password, m.Host)
	}

	msg := buildMIME(m.From, e)
	if err := smtp.SendMail(addr, auth, m.From, []string{e.To}, msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", e.To, err)
	}
	return nil
}

// buildMIME assembles a multipart/alternative body so clients pick HTML when
// they can and fall back to text when they cannot.
func buildMIME(from string, e Email) []byte {
	const boundary = "cityfix-mail-boundary"

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", e.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", e.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)

	fmt.Fprintf(&b, "--%s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s\r\n", boundary, e.TextBody)
	fmt.Fprintf(&b, "--%s\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s\r\n", boundary, e.HTMLBody)
	fmt.Fprintf(&b, "--%s--\r\n", boundary)

	return []byte(b.String())
}
