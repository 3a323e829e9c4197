package errlog

import (
	"context"
	"log/slog"
	"time"
)

// Details is the record produced for one observed failure.
type Details struct {
	Message   string         `json:"message"`
	Code      string         `json:"code,omitempty"`
	Status    int            `json:"statusCode,omitempty"`
	Stack     string         `json:"stack,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	UserID    string         `json:"userId,omitempty"`
	RequestID string         `json:"requestId,omitempty"`
	Context   map[string]any `json:"context,omitempty"`
}

// LogValue renders the record as a single slog group.
func (d Details) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("message", d.Message),
		slog.String("code", d.Code),
		slog.Int("status", d.Status),
		slog.String("timestamp", d.Timestamp.Format(time.RFC3339Nano)),
	}
	if d.UserID != "" {
		attrs = append(attrs, slog.String("user_id", d.UserID))
	}
	if d.RequestID != "" {
		attrs = append(attrs, slog.String("request_id", d.RequestID))
	}
	if len(d.Context) > 0 {
		attrs = append(attrs, slog.Any("context", d.Context))
	}
	if d.Stack != "" {
		attrs = append(attrs, slog.String("stack", d.Stack))
	}
	return slog.GroupValue(attrs...)
}

type contextKey string

const (
	requestIDKey = contextKey("request_id")
	userIDKey    = contextKey("user_id")
)

// WithRequestID returns a copy of ctx carrying the correlation id that is
// stamped on every record logged with it.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithUserID returns a copy of ctx carrying the originating user.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

func UserIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}
