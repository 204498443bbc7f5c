package api

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/gatherline/server/internal/config"
)

func testConfig() config.Config {
	cfg, _ := config.Load()
	cfg.Environment = "test"
	return cfg
}

func TestNewAppServesHealthAndMetrics(t *testing.T) {
	app, err := NewApp(testConfig(), zerolog.Nop())
	require.NoError(t, err)
	defer app.Bus.Close()

	rec := httptest.NewRecorder()
	app.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "ok")

	rec = httptest.NewRecorder()
	app.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	app.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestNewAppRejectsUnknownFamily(t *testing.T) {
	cfg := testConfig()
	cfg.Subscriptions.Family = "both"
	_, err := NewApp(cfg, zerolog.Nop())
	require.Error(t, err)
}

func TestNewAppSeedsStore(t *testing.T) {
	seed := `accounts:
  - id: 01hvxk3s7m9qzj4w8y2b6n0dc1
    username: seeded
    email: seeded@example.com
`
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o644))

	cfg := testConfig()
	cfg.Seed.Path = path

	app, err := NewApp(cfg, zerolog.Nop())
	require.NoError(t, err)
	defer app.Bus.Close()

	body := strings.NewReader(`{"type":"query","operation":"getAccount","id":"01HVXK3S7M9QZJ4W8Y2B6N0DC1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/operations", body)
	rec := httptest.NewRecorder()
	app.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "seeded@example.com")
}

func TestOperationsMethodNotAllowed(t *testing.T) {
	app, err := NewApp(testConfig(), zerolog.Nop())
	require.NoError(t, err)
	defer app.Bus.Close()

	rec := httptest.NewRecorder()
	app.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/operations", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, "GET, POST", rec.Header().Get("Allow"))
}
