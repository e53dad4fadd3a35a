package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phrazzld/genops-api/internal/config"
	"github.com/phrazzld/genops-api/internal/mocks"
)

const testJWTSecret = "test-secret-that-is-long-enough-for-testing"

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:                   0,
			LogLevel:               "error",
			CORSAllowedOrigins:     []string{"*"},
			ShutdownTimeoutSeconds: 1,
		},
		Auth: config.AuthConfig{
			JWTSecret:            testJWTSecret,
			TokenLifetimeMinutes: 24 * 60,
			BcryptCost:           4,
		},
	}
}

type testApp struct {
	*application
	tasks *mocks.MemTaskStore
	users *mocks.MemUserStore
}

// newTestApp wires the application on top of in-memory stores.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	users := mocks.NewMemUserStore()
	tasks := mocks.NewMemTaskStore()
	app, err := buildApplication(testConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)), appStores{
		users: users,
		tasks: tasks,
		tx:    mocks.PassthroughTransactor{},
	})
	require.NoError(t, err)
	return &testApp{application: app, tasks: tasks, users: users}
}

func doRequest(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v), rec.Body.String())
}
