package errlog

import (
	"context"
	"net/http"

	"github.com/shadyar-bakr/storefront/internal/apperr"
)

// ClientReport is a failure observed in a browser and posted back to the
// API.
type ClientReport struct {
	Message   string         `json:"message"`
	Stack     string         `json:"stack"`
	URL       string         `json:"url"`
	UserAgent string         `json:"userAgent"`
	Context   map[string]any `json:"context"`
}

// Report logs a client-side failure through the same path as Log. Client
// failures are outside the server taxonomy and are recorded as unknown.
func (l *Logger) Report(ctx context.Context, r ClientReport) {
	userAgent, url := r.UserAgent, r.URL
	if userAgent == "" {
		userAgent = "unknown"
	}
	if url == "" {
		url = "unknown"
	}

	d := Details{
		Message:   r.Message,
		Code:      apperr.CodeUnknown,
		Status:    http.StatusInternalServerError,
		Stack:     r.Stack,
		Timestamp: l.now().UTC(),
		UserID:    UserIDFrom(ctx),
		RequestID: RequestIDFrom(ctx),
		Context: merge(r.Context, map[string]any{
			"source":    "client",
			"userAgent": userAgent,
			"url":       url,
		}),
	}
	l.emit(ctx, d)
}
