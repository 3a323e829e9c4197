package apperr

import (
	"net/http"

	"github.com/shiwano/errdef"
)

// Every variant is an errdef definition. Public marks the operational ones;
// the defect definition is the only one without it.
var (
	errDefect = errdef.Define("defect",
		errdef.HTTPStatus(http.StatusInternalServerError),
		errorCode(CodeInternal),
	)

	errGeneric = errdef.Define("generic",
		errdef.HTTPStatus(http.StatusInternalServerError),
		errorCode(CodeInternal),
		errdef.Public(),
	)

	// errGenericInternal backs New(..., WithOperational(false)).
	errGenericInternal = errdef.Define("generic_internal",
		errdef.HTTPStatus(http.StatusInternalServerError),
		errorCode(CodeInternal),
	)

	errValidation = errdef.Define("validation",
		errdef.HTTPStatus(http.StatusBadRequest),
		errorCode(CodeValidation),
		errdef.Public(),
	)

	errNotFound = errdef.Define("not_found",
		errdef.HTTPStatus(http.StatusNotFound),
		errorCode(CodeNotFound),
		errdef.Public(),
	)

	errUnauthorized = errdef.Define("unauthorized",
		errdef.HTTPStatus(http.StatusUnauthorized),
		errorCode(CodeUnauthorized),
		errdef.Public(),
	)

	errForbidden = errdef.Define("forbidden",
		errdef.HTTPStatus(http.StatusForbidden),
		errorCode(CodeForbidden),
		errdef.Public(),
	)

	errConflict = errdef.Define("conflict",
		errdef.HTTPStatus(http.StatusConflict),
		errorCode(CodeConflict),
		errdef.Public(),
	)

	errRateLimited = errdef.Define("rate_limited",
		errdef.HTTPStatus(http.StatusTooManyRequests),
		errorCode(CodeRateLimit),
		errdef.Public(),
		errdef.Retryable(),
	)
)

// Fields carried by every instance.
var (
	errorCode, errorCodeFrom       = errdef.DefineField[string]("code")
	errorContext, errorContextFrom = errdef.DefineField[map[string]any]("context")
)

type variant struct {
	def            *errdef.Definition
	defaultMessage string
}

var variants = map[Kind]variant{
	KindValidation:   {errValidation, "Validation failed"},
	KindNotFound:     {errNotFound, "Resource not found"},
	KindUnauthorized: {errUnauthorized, "Unauthorized access"},
	KindForbidden:    {errForbidden, "Forbidden access"},
	KindConflict:     {errConflict, "Conflict"},
	KindRateLimit:    {errRateLimited, "Rate limit exceeded"},
}
