package mailer

import (
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"
)

const defaultPort = "25"

// Config describes the relay and the fixed sender/recipient list.
type Config struct {
	Server string   // host or host:port of an unauthenticated relay
	From   string   // envelope and header sender
	To     []string // recipients
}

// Message is a plain-text mail.
type Message struct {
	To      []string
	Subject string
	Body    string
}

// Mailer sends mail via SMTP.
type Mailer struct {
	cfg    *Config
	now    func() time.Time
	sendFn func(msg Message) error
}

// New returns a Mailer for cfg.
func New(cfg *Config) *Mailer {
	m := &Mailer{cfg: cfg, now: time.Now}
	m.sendFn = m.deliver
	return m
}

// Send mails subject and body to every configured recipient.
func (m *Mailer) Send(subject, body string) error {
	if m.cfg == nil || m.cfg.Server == "" {
		return fmt.Errorf("mailer: not configured")
	}
	if len(m.cfg.To) == 0 {
		return fmt.Errorf("mailer: no recipients")
	}
	msg := Message{To: m.cfg.To, Subject: subject, Body: body}
	if err := m.sendFn(msg); err != nil {
		return fmt.Errorf("there was an error and the email was not sent: %w", err)
	}
	return nil
}

func (m *Mailer) deliver(msg Message) error {
	return smtp.SendMail(m.addr(), nil, m.cfg.From, msg.To, []byte(m.formatMessage(msg)))
}

// addr appends the default SMTP port when the server has none.
func (m *Mailer) addr() string {
	if _, _, err := net.SplitHostPort(m.cfg.Server); err == nil {
		return m.cfg.Server
	}
	return net.JoinHostPort(m.cfg.Server, defaultPort)
}

func (m *Mailer) formatMessage(msg Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&b, "Date: %s\r\n", m.now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(normalizeNewlines(msg.Body), "\n", "\r\n"))
	return b.String()
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
