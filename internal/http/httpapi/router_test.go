package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"donorbook/internal/adapter/memory"
	"donorbook/internal/export"
	"donorbook/internal/http/handlers"
	"donorbook/internal/service"
)

func newTestServer(t *testing.T) (*httptest.Server, *handlers.App) {
	t.Helper()
	store := memory.NewStore()
	now := func() time.Time { return time.Date(2024, time.May, 15, 10, 0, 0, 0, time.UTC) }
	deps := service.Deps{
		Donors:   store.Donors(),
		Payments: store.Payments(),
		Expenses: store.Expenses(),
		Users:    store.Users(),
		Now:      now,
		Logger:   zerolog.Nop(),
	}
	payments := service.NewPaymentService(deps)
	expenses := service.NewExpenseService(deps, service.NewCategories(nil))
	app := &handlers.App{
		Donors:     service.NewDonorService(deps),
		Payments:   payments,
		Expenses:   expenses,
		Stats:      service.NewStatsService(deps),
		Auth:       service.NewAuthService(deps),
		Exports:    export.NewBuilder(payments, expenses, now),
		Logger:     zerolog.Nop(),
		JWTSecret:  "router-secret",
		SessionTTL: time.Hour,
		Now:        now,
	}
	srv := httptest.NewServer(NewRouter(app, Options{CORSOrigins: []string{"*"}, LoginRatePerMin: 2}))
	t.Cleanup(srv.Close)
	return srv, app
}

func send(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func login(t *testing.T, srv *httptest.Server, app *handlers.App) string {
	t.Helper()
	_, err := app.Auth.CreateUser(context.Background(), "treasurer", "Treasurer", "", "correct-horse")
	require.NoError(t, err)
	resp := send(t, http.MethodPost, srv.URL+"/v1/auth/login", "", map[string]string{
		"username": "treasurer",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body.Token)
	return body.Token
}

func TestHealthHeaders(t *testing.T) {
	srv, _ := newTestServer(t)
	resp := send(t, http.MethodGet, srv.URL+"/v1/healthz", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Cache-Control"), "no-store")
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestWritesRequireToken(t *testing.T) {
	srv, app := newTestServer(t)

	resp := send(t, http.MethodPost, srv.URL+"/v1/donors", "", map[string]any{"name": "Alice", "monthlyAmount": 100})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = send(t, http.MethodGet, srv.URL+"/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token := login(t, srv, app)

	resp = send(t, http.MethodPost, srv.URL+"/v1/donors", token, map[string]any{"name": "Alice", "monthlyAmount": 100})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = send(t, http.MethodPost, srv.URL+"/v1/payments/generate", token, map[string]string{"month": "2024-05"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var gen struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&gen))
	assert.Equal(t, 1, gen.Count)

	resp = send(t, http.MethodGet, srv.URL+"/v1/stats/monthly?month=2024-05", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stats struct {
		Month             string `json:"month"`
		UnpaidDonorsCount int    `json:"unpaidDonorsCount"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, "2024-05", stats.Month)
	assert.Equal(t, 1, stats.UnpaidDonorsCount)

	resp = send(t, http.MethodGet, srv.URL+"/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLoginIsRateLimited(t *testing.T) {
	srv, _ := newTestServer(t)
	creds := map[string]string{"username": "nobody", "password": "whatever-pass"}
	for i := 0; i < 2; i++ {
		resp := send(t, http.MethodPost, srv.URL+"/v1/auth/login", "", creds)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}
	resp := send(t, http.MethodPost, srv.URL+"/v1/auth/login", "", creds)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))
}

func TestUnknownDonorIs404(t *testing.T) {
	srv, _ := newTestServer(t)
	resp := send(t, http.MethodGet, srv.URL+"/v1/donors/does-not-exist", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
