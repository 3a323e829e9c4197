package errlog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Sink durably records error occurrences. Send may fail; the Logger never
// lets that failure reach the caller.
type Sink interface {
	Send(ctx context.Context, d Details) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, d Details) error

func (f SinkFunc) Send(ctx context.Context, d Details) error {
	return f(ctx, d)
}

// Discard accepts every record and drops it.
var Discard Sink = SinkFunc(func(context.Context, Details) error { return nil })

// Multi fans a record out to every sink. A failing or panicking sink does
// not stop the others; the failures are joined.
func Multi(sinks ...Sink) Sink {
	return multiSink(sinks)
}

type multiSink []Sink

func (m multiSink) Send(ctx context.Context, d Details) error {
	var errs []error
	for _, s := range m {
		if err := safeSend(ctx, s, d); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogSink writes records to logger. It is the sink of last resort when no
// external tracker is configured.
func LogSink(logger *slog.Logger) Sink {
	return SinkFunc(func(ctx context.Context, d Details) error {
		logger.ErrorContext(ctx, d.Message, "error", d)
		return nil
	})
}

func safeSend(ctx context.Context, s Sink, d Details) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("errlog: sink panicked: %v", r)
		}
	}()
	return s.Send(ctx, d)
}
