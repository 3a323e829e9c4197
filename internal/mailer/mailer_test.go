package mailer

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type alert struct {
	Message   string
	Code      string
	Status    int
	Timestamp time.Time
	RequestID string
	UserID    string
	Context   map[string]any
	Stack     string
}

func TestRender_ErrorAlert(t *testing.T) {
	m := New(SMTPConfig{Host: "localhost", Port: 2525, Sender: "Storefront <alerts@example.com>"})

	msg, err := m.render("ops@example.com", "error_alert.tmpl", alert{
		Message:   "database unreachable",
		Code:      "UNKNOWN_ERROR",
		Status:    500,
		Timestamp: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
		RequestID: "host/abc-000001",
		Context:   map[string]any{"route": "/v1/products"},
		Stack:     "main.handler\n\t/app/main.go:10",
	})
	require.NoError(t, err)

	require.Equal(t, []string{"[UNKNOWN_ERROR] database unreachable"}, msg.GetHeader("Subject"))
	require.Equal(t, []string{"ops@example.com"}, msg.GetHeader("To"))

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "host/abc-000001")
	require.Contains(t, buf.String(), "/v1/products")
}

func TestRender_UnknownTemplate(t *testing.T) {
	m := New(SMTPConfig{Host: "localhost", Port: 2525})

	_, err := m.render("ops@example.com", "missing.tmpl", nil)
	require.Error(t, err)
}
