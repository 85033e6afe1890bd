//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/coaching-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/coaching-backend/internal/app"
	authpkg "github.com/heartmarshall/coaching-backend/internal/auth"
	"github.com/heartmarshall/coaching-backend/internal/config"
	"github.com/heartmarshall/coaching-backend/internal/domain"
	"github.com/heartmarshall/coaching-backend/internal/transport/middleware"
)

const testJWTSecret = "e2e-secret-e2e-secret-e2e-secret-e2e"

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	jwt    *authpkg.JWTManager
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the application handler backed by a real
// PostgreSQL container (shared via testhelper). Redis and the generator
// are left unconfigured.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	cfg := &config.Config{
		Server: config.ServerConfig{MetricsEnabled: true},
		Auth: config.AuthConfig{
			JWTSecret:      testJWTSecret,
			JWTIssuer:      "coaching",
			AccessTokenTTL: time.Hour,
		},
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,PATCH,DELETE,OPTIONS",
			AllowedHeaders: "Authorization,Content-Type,X-Request-Id",
		},
		RateLimit: config.RateLimitConfig{GeneratePerMinute: 100, CleanupInterval: time.Minute},
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	t.Cleanup(limiter.Stop)

	srv := httptest.NewServer(app.NewHandler(cfg, logger, pool, nil, limiter))
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
		jwt:    authpkg.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL),
	}
}

// coachToken issues a token for a fresh coach id.
func (ts *testServer) coachToken(t *testing.T) (string, uuid.UUID) {
	t.Helper()
	id := uuid.New()
	token, err := ts.jwt.GenerateAccessToken(id, domain.UserRoleCoach)
	require.NoError(t, err)
	return token, id
}

// do sends a JSON request and decodes a JSON response into out (if non-nil).
func (ts *testServer) do(t *testing.T, method, path, token string, body any, out any) int {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// createClient creates an active client owned by the token's coach.
func (ts *testServer) createClient(t *testing.T, token string) string {
	t.Helper()
	var c map[string]any
	status := ts.do(t, http.MethodPost, "/api/clients", token, map[string]any{"name": "Test Client"}, &c)
	require.Equal(t, http.StatusCreated, status)
	id, ok := c["id"].(string)
	require.True(t, ok)
	return id
}

// appendLog records a generation log and returns its id.
func (ts *testServer) appendLog(t *testing.T, token, clientID string, body map[string]any) string {
	t.Helper()
	var log map[string]any
	status := ts.do(t, http.MethodPost, "/api/clients/"+clientID+"/generation-logs", token, body, &log)
	require.Equal(t, http.StatusCreated, status, "append log: %v", log)
	id, ok := log["id"].(string)
	require.True(t, ok)
	return id
}

func (ts *testServer) countRows(t *testing.T, table, clientID string) int {
	t.Helper()
	var n int
	err := ts.Pool.QueryRow(context.Background(),
		"SELECT count(*) FROM "+table+" WHERE client_id = $1", clientID,
	).Scan(&n)
	require.NoError(t, err)
	return n
}

type listBody struct {
	Items []map[string]any `json:"items"`
}
