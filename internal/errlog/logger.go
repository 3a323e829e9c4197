// Package errlog is the single point through which the storefront observes
// failures. A Logger turns an error into a Details record, echoes it locally
// in development and forwards it to a Sink. Forwarding is best-effort: a
// sink failure is written locally and never reaches the caller.
package errlog

import (
	"context"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/shadyar-bakr/storefront/internal/apperr"
)

type Config struct {
	Env  apperr.Env
	Sink Sink

	// Now defaults to time.Now.
	Now func() time.Time
}

// Logger is safe for concurrent use. Records from concurrent calls may reach
// the sink in any order.
type Logger struct {
	env       apperr.Env
	sink      Sink
	logger    *slog.Logger
	now       func() time.Time
	fallbacks atomic.Uint64
}

func New(cfg Config, logger *slog.Logger) *Logger {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Sink == nil {
		cfg.Sink = Discard
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Logger{
		env:    cfg.Env,
		sink:   cfg.Sink,
		logger: logger,
		now:    cfg.Now,
	}
}

// Log records err. extra is merged under the error's own context, so the
// error's keys win on collision. Log never panics and never fails.
func (l *Logger) Log(ctx context.Context, err error, extra map[string]any) {
	if err == nil {
		return
	}
	l.emit(ctx, l.details(ctx, err, extra))
}

// Fallbacks reports how many records could not be forwarded to the sink.
func (l *Logger) Fallbacks() uint64 {
	return l.fallbacks.Load()
}

func (l *Logger) details(ctx context.Context, err error, extra map[string]any) Details {
	e := apperr.From(err)

	d := Details{
		Message:   err.Error(),
		Code:      apperr.CodeUnknown,
		Status:    http.StatusInternalServerError,
		Stack:     e.Stack(),
		Timestamp: l.now().UTC(),
		UserID:    UserIDFrom(ctx),
		RequestID: RequestIDFrom(ctx),
	}
	if e.Kind() != apperr.KindDefect {
		d.Message = e.Message()
		d.Code = e.Code()
		d.Status = e.Status()
	}

	d.Context = merge(extra, e.Context())
	return d
}

func (l *Logger) emit(ctx context.Context, d Details) {
	if l.env.IsDevelopment() {
		l.logger.ErrorContext(ctx, "error details", "error", d)
	}

	if err := safeSend(ctx, l.sink, d); err != nil {
		l.fallback(ctx, d, err)
	}
}

// fallback writes a record the sink rejected to the local logger.
func (l *Logger) fallback(ctx context.Context, d Details, sinkErr error) {
	l.fallbacks.Add(1)
	l.logger.ErrorContext(ctx, "failed to forward error to tracking sink",
		"sink_error", sinkErr.Error(),
		"error", d,
	)
}

func merge(maps ...map[string]any) map[string]any {
	n := 0
	for _, m := range maps {
		n += len(m)
	}
	if n == 0 {
		return nil
	}
	out := make(map[string]any, n)
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}
