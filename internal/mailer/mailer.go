package mailer

import (
	"bytes"
	"embed"
	"html/template"
	"time"

	"github.com/go-mail/mail"
)

//go:embed templates
var templates embed.FS

const (
	sendAttempts = 3
	retryDelay   = 500 * time.Millisecond
)

type Mailer struct {
	dialer *mail.Dialer
	sender string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
	Timeout  time.Duration
}

func New(config SMTPConfig) *Mailer {
	dialer := mail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	dialer.Timeout = 5 * time.Second
	if config.Timeout > 0 {
		dialer.Timeout = config.Timeout
	}

	return &Mailer{
		dialer: dialer,
		sender: config.Sender,
	}
}

// Send renders templateFile with data and delivers it to recipient. The
// template must define "subject", "plainBody" and "htmlBody".
func (m *Mailer) Send(recipient, templateFile string, data any) error {
	msg, err := m.render(recipient, templateFile, data)
	if err != nil {
		return err
	}

	for i := 0; i < sendAttempts; i++ {
		err = m.dialer.DialAndSend(msg)
		if nil == err {
			return nil
		}

		if i < sendAttempts-1 {
			time.Sleep(retryDelay)
		}
	}

	return err
}

func (m *Mailer) render(recipient, templateFile string, data any) (*mail.Message, error) {
	tmpl, err := template.ParseFS(templates, "templates/"+templateFile)
	if err != nil {
		return nil, err
	}

	subject := new(bytes.Buffer)
	err = tmpl.ExecuteTemplate(subject, "subject", data)
	if err != nil {
		return nil, err
	}

	plainBody := new(bytes.Buffer)
	err = tmpl.ExecuteTemplate(plainBody, "plainBody", data)
	if err != nil {
		return nil, err
	}

	htmlBody := new(bytes.Buffer)
	err = tmpl.ExecuteTemplate(htmlBody, "htmlBody", data)
	if err != nil {
		return nil, err
	}

	msg := mail.NewMessage()
	msg.SetHeader("To", recipient)
	msg.SetHeader("From", m.sender)
	msg.SetHeader("Subject", subject.String())
	msg.SetBody("text/plain", plainBody.String())
	msg.AddAlternative("text/html", htmlBody.String())

	return msg, nil
}
