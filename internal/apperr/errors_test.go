package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/shiwano/errdef"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariants(t *testing.T) {
	tests := []struct {
		name       string
		err        *Error
		wantKind   Kind
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "validation",
			err:        Validation("bad input", nil),
			wantKind:   KindValidation,
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
			wantMsg:    "bad input",
		},
		{
			name:       "not found",
			err:        NotFound("Product"),
			wantKind:   KindNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
			wantMsg:    "Product not found",
		},
		{
			name:       "not found default resource",
			err:        NotFound(""),
			wantKind:   KindNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
			wantMsg:    "Resource not found",
		},
		{
			name:       "unauthorized",
			err:        Unauthorized("x"),
			wantKind:   KindUnauthorized,
			wantStatus: http.StatusUnauthorized,
			wantCode:   "UNAUTHORIZED",
			wantMsg:    "x",
		},
		{
			name:       "unauthorized default message",
			err:        Unauthorized(""),
			wantKind:   KindUnauthorized,
			wantStatus: http.StatusUnauthorized,
			wantCode:   "UNAUTHORIZED",
			wantMsg:    "Unauthorized access",
		},
		{
			name:       "forbidden",
			err:        Forbidden("x"),
			wantKind:   KindForbidden,
			wantStatus: http.StatusForbidden,
			wantCode:   "FORBIDDEN",
			wantMsg:    "x",
		},
		{
			name:       "forbidden default message",
			err:        Forbidden(""),
			wantKind:   KindForbidden,
			wantStatus: http.StatusForbidden,
			wantCode:   "FORBIDDEN",
			wantMsg:    "Forbidden access",
		},
		{
			name:       "conflict",
			err:        Conflict("x", nil),
			wantKind:   KindConflict,
			wantStatus: http.StatusConflict,
			wantCode:   "CONFLICT",
			wantMsg:    "x",
		},
		{
			name:       "rate limit",
			err:        RateLimit(""),
			wantKind:   KindRateLimit,
			wantStatus: http.StatusTooManyRequests,
			wantCode:   "RATE_LIMIT_EXCEEDED",
			wantMsg:    "Rate limit exceeded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.wantKind, tt.err.Kind())
			require.Equal(t, tt.wantStatus, tt.err.Status())
			require.Equal(t, tt.wantCode, tt.err.Code())
			require.Equal(t, tt.wantMsg, tt.err.Message())
			require.True(t, tt.err.Operational())
			require.True(t, tt.err.Classified())
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	err := New("boom")

	require.Equal(t, KindGeneric, err.Kind())
	require.Equal(t, http.StatusInternalServerError, err.Status())
	require.Equal(t, CodeInternal, err.Code())
	require.True(t, err.Operational())
	require.Nil(t, err.Context())
}

func TestNew_Options(t *testing.T) {
	cause := errors.New("disk full")
	err := New("cannot save",
		WithStatus(http.StatusServiceUnavailable),
		WithCode("STORAGE_UNAVAILABLE"),
		WithOperational(false),
		WithContext(map[string]any{"volume": "/data"}),
		WithCause(cause),
	)

	require.Equal(t, http.StatusServiceUnavailable, err.Status())
	require.Equal(t, "STORAGE_UNAVAILABLE", err.Code())
	require.False(t, err.Operational())
	require.False(t, err.Classified())
	require.Equal(t, map[string]any{"volume": "/data"}, err.Context())
	require.ErrorIs(t, err, cause)
	require.Equal(t, "[STORAGE_UNAVAILABLE] cannot save: disk full", err.Error())
}

func TestContext_IsCopied(t *testing.T) {
	ctx := map[string]any{"field": "email"}
	err := Validation("bad", ctx)

	ctx["field"] = "changed"
	got := err.Context()
	got["extra"] = true

	require.Equal(t, map[string]any{"field": "email"}, err.Context())
}

func TestDefect(t *testing.T) {
	require.Nil(t, Defect(nil))

	raw := errors.New("nil pointer")
	d := Defect(raw)
	require.Equal(t, KindDefect, d.Kind())
	require.Equal(t, http.StatusInternalServerError, d.Status())
	require.Equal(t, CodeInternal, d.Code())
	require.False(t, d.Operational())
	require.False(t, d.Classified())
	require.ErrorIs(t, d, raw)
	require.Same(t, d, Defect(d))
}

func TestFromAndKindOf(t *testing.T) {
	nf := NotFound("Product")
	wrapped := fmt.Errorf("loading product: %w", nf)

	require.Same(t, nf, From(wrapped))
	require.Equal(t, KindNotFound, KindOf(wrapped))
	require.True(t, IsOperational(wrapped))

	plain := errors.New("oops")
	require.Equal(t, KindDefect, From(plain).Kind())
	require.Equal(t, KindDefect, KindOf(plain))
	require.False(t, IsOperational(plain))
	require.Nil(t, From(nil))
}

func TestStackIsCaptured(t *testing.T) {
	err := Forbidden("nope")
	assert.Contains(t, err.Stack(), "TestStackIsCaptured")
	assert.NotContains(t, err.Stack(), "newVariant")
}

func TestKindString(t *testing.T) {
	require.Equal(t, "rate_limit", KindRateLimit.String())
	require.Equal(t, "kind(99)", Kind(99).String())
}

func TestNilError_IsSafe(t *testing.T) {
	var e *Error

	require.NotPanics(t, func() {
		require.Equal(t, KindDefect, e.Kind())
		require.Equal(t, http.StatusInternalServerError, e.Status())
		require.Equal(t, CodeInternal, e.Code())
		require.Equal(t, GenericMessage, e.Message())
		require.Empty(t, e.Stack())
		require.Nil(t, e.Context())
		require.Nil(t, e.Unwrap())
		require.False(t, e.Operational())
		require.False(t, e.Classified())
		require.Equal(t, "<nil>", e.Error())
	})

	var err error = e
	require.Nil(t, From(err))
	require.Equal(t, KindDefect, KindOf(err))
	require.False(t, IsOperational(err))
}

func TestVariants_CarryErrdefMetadata(t *testing.T) {
	err := fmt.Errorf("handler: %w", NotFound("Product"))

	status, ok := errdef.HTTPStatusFrom(err)
	require.True(t, ok)
	require.Equal(t, http.StatusNotFound, status)

	var de errdef.Error
	require.ErrorAs(t, err, &de)
	require.NotEmpty(t, de.Stack().Frames())
}
