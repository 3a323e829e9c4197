package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shadyar-bakr/storefront/internal/apperr"
	"github.com/stretchr/testify/require"
)

func TestAuthentication(t *testing.T) {
	app, _ := newTestApplication(t, apperr.EnvProduction)
	h := app.routes()

	tests := []struct {
		name    string
		body    any
		status  int
		code    string
		message string
	}{
		{"wrong password", map[string]string{"email": "admin@example.com", "password": "nope"}, http.StatusUnauthorized, apperr.CodeUnauthorized, msgInvalidCredentials},
		{"unknown email", map[string]string{"email": "ghost@example.com", "password": "admin123"}, http.StatusUnauthorized, apperr.CodeUnauthorized, msgInvalidCredentials},
		{"invalid email", map[string]string{"email": "admin", "password": "admin123"}, http.StatusBadRequest, apperr.CodeValidation, "Invalid email format"},
		{"missing email", map[string]string{"password": "admin123"}, http.StatusBadRequest, apperr.CodeValidation, "Email is required"},
		{"missing password", map[string]string{"email": "admin@example.com"}, http.StatusBadRequest, apperr.CodeValidation, "Password is required"},
		{"unknown key", map[string]string{"email": "admin@example.com", "password": "admin123", "remember": "yes"}, http.StatusBadRequest, apperr.CodeValidation, `body contains unknown key "remember"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := send(t, h, testRequest{method: http.MethodPost, target: "/v1/tokens/authentication", body: tt.body})
			requireErrorEnvelope(t, res, tt.status, tt.code, tt.message)

			if tt.status == http.StatusUnauthorized {
				require.Equal(t, "Bearer", res.header.Get("WWW-Authenticate"))
			}
		})
	}

	t.Run("success", func(t *testing.T) {
		res := send(t, h, testRequest{
			method: http.MethodPost,
			target: "/v1/tokens/authentication",
			body:   map[string]string{"email": "user@example.com", "password": "user123"},
		})

		require.Equal(t, http.StatusCreated, res.status)
		require.Equal(t, "Login successful", res.body["message"])

		user := res.body["data"].(map[string]any)["user"].(map[string]any)
		require.Equal(t, "user@example.com", user["email"])
		require.NotContains(t, user, "password")
	})
}

func TestDashboard(t *testing.T) {
	app, _ := newTestApplication(t, apperr.EnvProduction)
	h := app.routes()

	t.Run("anonymous", func(t *testing.T) {
		res := send(t, h, testRequest{method: http.MethodGet, target: "/v1/dashboard"})
		requireErrorEnvelope(t, res, http.StatusUnauthorized, apperr.CodeUnauthorized, msgAuthRequired)
	})

	t.Run("malformed token", func(t *testing.T) {
		res := send(t, h, testRequest{method: http.MethodGet, target: "/v1/dashboard", token: "short"})
		requireErrorEnvelope(t, res, http.StatusUnauthorized, apperr.CodeUnauthorized, msgInvalidToken)
	})

	t.Run("unknown token", func(t *testing.T) {
		res := send(t, h, testRequest{method: http.MethodGet, target: "/v1/dashboard", token: "ABCDEFGHIJKLMNOPQRSTUVWXYZ"})
		requireErrorEnvelope(t, res, http.StatusUnauthorized, apperr.CodeUnauthorized, msgInvalidToken)
	})

	t.Run("regular user", func(t *testing.T) {
		token := login(t, h, "user@example.com", "user123")
		res := send(t, h, testRequest{method: http.MethodGet, target: "/v1/dashboard", token: token})

		require.Equal(t, http.StatusOK, res.status)
		payload := res.body["data"].(map[string]any)
		require.Contains(t, payload, "analytics")
		require.NotContains(t, payload, "admin")
	})

	t.Run("admin", func(t *testing.T) {
		token := login(t, h, "admin@example.com", "admin123")
		res := send(t, h, testRequest{method: http.MethodGet, target: "/v1/dashboard", token: token})

		require.Equal(t, http.StatusOK, res.status)
		admin := res.body["data"].(map[string]any)["admin"].(map[string]any)
		require.Equal(t, float64(0), admin["errorFallbacks"])
	})
}

func TestLogout(t *testing.T) {
	app, _ := newTestApplication(t, apperr.EnvProduction)
	h := app.routes()

	token := login(t, h, "user@example.com", "user123")

	res := send(t, h, testRequest{method: http.MethodDelete, target: "/v1/tokens/authentication", token: token})
	require.Equal(t, http.StatusOK, res.status)

	res = send(t, h, testRequest{method: http.MethodGet, target: "/v1/dashboard", token: token})
	requireErrorEnvelope(t, res, http.StatusUnauthorized, apperr.CodeUnauthorized, msgInvalidToken)
}

func TestRateLimit(t *testing.T) {
	app, _ := newTestApplication(t, apperr.EnvProduction)
	app.config.limiter.enabled = true
	app.config.limiter.rps = 0.001
	app.config.limiter.burst = 1
	h := app.routes()

	res := send(t, h, testRequest{method: http.MethodGet, target: "/v1/healthcheck"})
	require.Equal(t, http.StatusOK, res.status)

	res = send(t, h, testRequest{method: http.MethodGet, target: "/v1/healthcheck"})
	requireErrorEnvelope(t, res, http.StatusTooManyRequests, apperr.CodeRateLimit, "Rate limit exceeded")
}

func TestRateLimit_IgnoresForwardingHeadersByDefault(t *testing.T) {
	app, _ := newTestApplication(t, apperr.EnvProduction)
	app.config.limiter.enabled = true
	app.config.limiter.rps = 0.001
	app.config.limiter.burst = 1
	h := app.routes()

	res := send(t, h, testRequest{
		method: http.MethodGet,
		target: "/v1/healthcheck",
		header: map[string]string{"X-Forwarded-For": "203.0.113.1"},
	})
	require.Equal(t, http.StatusOK, res.status)

	res = send(t, h, testRequest{
		method: http.MethodGet,
		target: "/v1/healthcheck",
		header: map[string]string{"X-Forwarded-For": "203.0.113.2"},
	})
	requireErrorEnvelope(t, res, http.StatusTooManyRequests, apperr.CodeRateLimit, "Rate limit exceeded")
}

func TestClientIP(t *testing.T) {
	app, _ := newTestApplication(t, apperr.EnvProduction)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.10:51234"
	r.Header.Set("X-Forwarded-For", "203.0.113.7")

	require.Equal(t, "192.0.2.10", app.clientIP(r))

	app.config.limiter.trustProxy = true
	require.Equal(t, "203.0.113.7", app.clientIP(r))
}

func TestRecoverPanic(t *testing.T) {
	app, sink := newTestApplication(t, apperr.EnvProduction)

	h := app.recoverPanic(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("database exploded")
	}))

	res := send(t, h, testRequest{method: http.MethodGet, target: "/v1/products"})
	requireErrorEnvelope(t, res, http.StatusInternalServerError, apperr.CodeInternal, apperr.GenericMessage)
	require.Equal(t, "close", res.header.Get("Connection"))
	require.NotContains(t, res.body, "details")

	app.wg.Wait()

	records := sink.all()
	require.Len(t, records, 1)
	require.Equal(t, apperr.CodeUnknown, records[0].Code)
	require.Equal(t, http.StatusInternalServerError, records[0].Status)
	require.Contains(t, records[0].Message, "database exploded")
}

func TestRecoverPanic_AbortHandler(t *testing.T) {
	app, _ := newTestApplication(t, apperr.EnvProduction)

	h := app.recoverPanic(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	require.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}
