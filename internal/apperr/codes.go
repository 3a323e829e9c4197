package apperr

import (
	"fmt"
)

// Machine-readable error codes
const (
	CodeInternal     = "INTERNAL_ERROR"
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeConflict     = "CONFLICT"
	CodeRateLimit    = "RATE_LIMIT_EXCEEDED"

	// CodeUnknown is used only in log records for errors outside the taxonomy.
	CodeUnknown = "UNKNOWN_ERROR"
)

func newVariant(k Kind, message string, ctx map[string]any) *Error {
	v := variants[k]
	if message == "" {
		message = v.defaultMessage
	}
	return build(k, v.def, message, config{context: ctx, operational: true})
}

// Validation reports input that failed a check. ctx usually carries the
// offending fields.
func Validation(message string, ctx map[string]any) *Error {
	return newVariant(KindValidation, message, ctx)
}

// NotFound reports a missing resource as "{resource} not found".
func NotFound(resource string) *Error {
	if resource == "" {
		resource = "Resource"
	}
	return newVariant(KindNotFound, fmt.Sprintf("%s not found", resource), nil)
}

func Unauthorized(message string) *Error {
	return newVariant(KindUnauthorized, message, nil)
}

func Forbidden(message string) *Error {
	return newVariant(KindForbidden, message, nil)
}

func Conflict(message string, ctx map[string]any) *Error {
	return newVariant(KindConflict, message, ctx)
}

func RateLimit(message string) *Error {
	return newVariant(KindRateLimit, message, nil)
}
