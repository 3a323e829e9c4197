// Package apperr defines the storefront's error taxonomy and the outward
// envelope that every failed request is rendered into.
//
// An *Error is a tagged value: its Kind selects one of a closed set of
// variants, each backed by an errdef definition with a fixed HTTP status
// and machine code. Anything that is not an *Error, or that was explicitly
// marked non-operational, is a defect and is reported to callers
// generically.
//
// Every accessor on *Error is safe to call on a nil receiver; a nil *Error
// reads as a defect.
package apperr

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"net/http"

	"github.com/shiwano/errdef"
)

// Kind tags the variant an *Error belongs to.
type Kind int

const (
	KindDefect Kind = iota
	KindGeneric
	KindValidation
	KindNotFound
	KindUnauthorized
	KindForbidden
	KindConflict
	KindRateLimit
)

var kindNames = map[Kind]string{
	KindDefect:       "defect",
	KindGeneric:      "generic",
	KindValidation:   "validation",
	KindNotFound:     "not_found",
	KindUnauthorized: "unauthorized",
	KindForbidden:    "forbidden",
	KindConflict:     "conflict",
	KindRateLimit:    "rate_limit",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is the canonical in-process failure. Status, code, context and
// stack live on the wrapped errdef instance.
type Error struct {
	kind        Kind
	message     string
	operational bool
	cause       error
	err         error
}

// Error returns "[CODE] message" or "[CODE] message: cause".
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code(), e.message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code(), e.message)
}

// Unwrap exposes the errdef instance, which in turn wraps the cause.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

func (e *Error) Kind() Kind {
	if e == nil {
		return KindDefect
	}
	return e.kind
}

func (e *Error) Message() string {
	if e == nil {
		return GenericMessage
	}
	return e.message
}

func (e *Error) Status() int {
	if e == nil {
		return http.StatusInternalServerError
	}
	if status, ok := errdef.HTTPStatusFrom(e.err); ok {
		return status
	}
	return http.StatusInternalServerError
}

func (e *Error) Code() string {
	if e == nil {
		return CodeInternal
	}
	if code, ok := errorCodeFrom(e.err); ok && code != "" {
		return code
	}
	return CodeInternal
}

func (e *Error) Operational() bool {
	return e != nil && e.operational
}

// Stack returns the stack captured when the error was constructed.
func (e *Error) Stack() string {
	if e == nil {
		return ""
	}
	return renderStack(e.err)
}

// Context returns a copy of the attached context, or nil when there is none.
func (e *Error) Context() map[string]any {
	if e == nil {
		return nil
	}
	ctx, ok := errorContextFrom(e.err)
	if !ok || len(ctx) == 0 {
		return nil
	}
	return maps.Clone(ctx)
}

// Classified reports whether e may be surfaced to a caller as-is.
func (e *Error) Classified() bool {
	return e != nil && e.kind != KindDefect && e.operational
}

type config struct {
	status      int
	code        string
	operational bool
	context     map[string]any
	cause       error
}

// Option configures an Error built with New.
type Option func(*config)

func WithStatus(status int) Option {
	return func(c *config) { c.status = status }
}

func WithCode(code string) Option {
	return func(c *config) { c.code = code }
}

// WithOperational marks the error as expected (true) or as a programming
// defect (false). Non-operational errors are never echoed to callers.
func WithOperational(operational bool) Option {
	return func(c *config) { c.operational = operational }
}

// WithContext merges ctx into the error's context. Later keys win.
func WithContext(ctx map[string]any) Option {
	return func(c *config) { c.context = mergeContext(c.context, ctx) }
}

func WithCause(err error) Option {
	return func(c *config) { c.cause = err }
}

// build instantiates def with the per-error overrides in c.
func build(kind Kind, def *errdef.Definition, message string, c config) *Error {
	opts := []errdef.Option{errorContext(mergeContext(nil, c.context))}
	if c.status != 0 {
		opts = append(opts, errdef.HTTPStatus(c.status))
	}
	if c.code != "" {
		opts = append(opts, errorCode(c.code))
	}

	d := def.With(context.Background(), opts...)

	var err error
	if c.cause != nil {
		err = d.Wrapf(c.cause, "%s", message)
	} else {
		err = d.New(message)
	}

	return &Error{
		kind:        kind,
		message:     message,
		operational: c.operational,
		cause:       c.cause,
		err:         err,
	}
}

// New builds a generic failure. Without options it is a 500
// INTERNAL_ERROR that is still considered operational.
func New(message string, opts ...Option) *Error {
	c := config{operational: true}
	for _, opt := range opts {
		opt(&c)
	}

	def := errGeneric
	if !c.operational {
		def = errGenericInternal
	}
	return build(KindGeneric, def, message, c)
}

// Defect wraps err as an unexpected failure. It returns nil for a nil err
// and err itself when it already is a defect.
func Defect(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) && e != nil && e.kind == KindDefect {
		return e
	}
	return build(KindDefect, errDefect, err.Error(), config{cause: err})
}

// From returns the first *Error in err's chain, or wraps err as a defect.
// A typed-nil *Error comes back as nil.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Defect(err)
}

// KindOf reports the variant of err. Unclassified errors are KindDefect.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind()
	}
	return KindDefect
}

// IsOperational reports whether err is an expected failure that is safe to
// surface.
func IsOperational(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Classified()
}

func mergeContext(dst, src map[string]any) map[string]any {
	if len(src) == 0 {
		return dst
	}
	m := make(map[string]any, len(dst)+len(src))
	maps.Copy(m, dst)
	maps.Copy(m, src)
	return m
}
