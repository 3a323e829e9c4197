package errlog

import (
	"context"
	"net/http"
)

// Sender delivers a templated message. *mailer.Mailer satisfies it.
type Sender interface {
	Send(recipient, templateFile string, data any) error
}

// MailSink emails an alert for every record at or above MinStatus.
type MailSink struct {
	Sender    Sender
	Recipient string
	MinStatus int
}

func NewMailSink(sender Sender, recipient string) *MailSink {
	return &MailSink{
		Sender:    sender,
		Recipient: recipient,
		MinStatus: http.StatusInternalServerError,
	}
}

func (s *MailSink) Send(_ context.Context, d Details) error {
	if d.Status < s.MinStatus {
		return nil
	}
	return s.Sender.Send(s.Recipient, "error_alert.tmpl", d)
}
