package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/shadyar-bakr/storefront/internal/apperr"
	"github.com/shadyar-bakr/storefront/internal/data"
	"github.com/shadyar-bakr/storefront/internal/errlog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type recordingSink struct {
	mu      sync.Mutex
	records []errlog.Details
}

func (s *recordingSink) Send(_ context.Context, d errlog.Details) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, d)
	return nil
}

func (s *recordingSink) all() []errlog.Details {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]errlog.Details(nil), s.records...)
}

func newTestApplication(t *testing.T, env apperr.Env) (*application, *recordingSink) {
	t.Helper()

	users, err := data.NewUserModel(bcrypt.MinCost, data.DemoAccounts...)
	require.NoError(t, err)

	var cfg config
	cfg.env = string(env)
	cfg.sessionTTL = time.Hour

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sink := &recordingSink{}

	app := &application{
		config: cfg,
		env:    env,
		logger: logger,
		errors: errlog.New(errlog.Config{Env: env, Sink: sink}, logger),
		models: data.NewModels(users),
	}

	return app, sink
}

type testResponse struct {
	status int
	header http.Header
	body   map[string]any
}

type testRequest struct {
	method string
	target string
	body   any
	token  string
	header map[string]string
}

func send(t *testing.T, h http.Handler, tr testRequest) testResponse {
	t.Helper()

	var body io.Reader
	switch b := tr.body.(type) {
	case nil:
	case string:
		body = bytes.NewBufferString(b)
	default:
		js, err := json.Marshal(b)
		require.NoError(t, err)
		body = bytes.NewReader(js)
	}

	req := httptest.NewRequest(tr.method, tr.target, body)
	if tr.token != "" {
		req.Header.Set("Authorization", "Bearer "+tr.token)
	}
	for k, v := range tr.header {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	res := testResponse{status: rr.Code, header: rr.Header()}
	if rr.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res.body))
	}

	return res
}

func login(t *testing.T, h http.Handler, email, password string) string {
	t.Helper()

	res := send(t, h, testRequest{
		method: http.MethodPost,
		target: "/v1/tokens/authentication",
		body:   map[string]string{"email": email, "password": password},
	})
	require.Equal(t, http.StatusCreated, res.status)

	token := res.body["data"].(map[string]any)["authentication_token"].(map[string]any)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func requireErrorEnvelope(t *testing.T, res testResponse, status int, code, message string) {
	t.Helper()

	require.Equal(t, status, res.status)
	require.Equal(t, false, res.body["success"])
	require.Equal(t, code, res.body["code"])
	require.Equal(t, code, res.body["error"])
	require.Equal(t, message, res.body["message"])
	require.NotEmpty(t, res.body["timestamp"])
}
