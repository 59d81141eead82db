// Package notify delivers user-facing messages. Dispatch is always
// best-effort: callers log failures and never surface them to the
// request that triggered the notification.
package notify

import (
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"
)

type Notifier interface {
	Send(to, subject, body string) error
}

// SMTP sends plain-text mail through a single relay.
type SMTP struct {
	Addr string // host:port
	From string
}

func NewSMTP(addr, from string) *SMTP { return &SMTP{Addr: addr, From: from} }

func (n *SMTP) Send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", n.From, to, subject, body)
	return smtp.SendMail(n.Addr, nil, n.From, []string{to}, []byte(msg))
}

// Log records messages instead of sending them. Used in development and
// whenever no SMTP relay is configured.
type Log struct {
	Logger zerolog.Logger
}

func (n *Log) Send(to, subject, body string) error {
	n.Logger.Info().Str("to", to).Str("subject", subject).Str("body", body).Msg("notification")
	return nil
}
