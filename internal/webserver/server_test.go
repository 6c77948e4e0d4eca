package webserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openparley/parley/internal/debate"
	"github.com/openparley/parley/internal/gateway"
	"github.com/openparley/parley/internal/notebook"
	"github.com/openparley/parley/internal/persona"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	store := notebook.NewFileStore(t.TempDir(), t.TempDir())
	registry := persona.NewRegistry()
	srv, err := New(Config{
		Port:     0,
		Engine:   debate.NewEngine(&gateway.ScriptedCompleter{}, store, registry),
		Registry: registry,
		Store:    store,
	})
	require.NoError(t, err)
	return srv.Handler()
}

func TestNewRequiresDependencies(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
}

func TestHealthEndpoint(t *testing.T) {
	handler := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	err := json.Unmarshal(rec.Body.Bytes(), &body)
	require.NoError(t, err)
	assert.Equal(t, "ok", body["status"])
}

func TestIndexListsEndpoints(t *testing.T) {
	handler := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/debate/start")
}

func TestUnknownPathIs404(t *testing.T) {
	handler := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSAppliedWhenConfigured(t *testing.T) {
	store := notebook.NewFileStore(t.TempDir(), t.TempDir())
	registry := persona.NewRegistry()
	srv, err := New(Config{
		AllowedOrigins: []string{"http://localhost:5173"},
		Engine:         debate.NewEngine(&gateway.ScriptedCompleter{}, store, registry),
		Registry:       registry,
		Store:          store,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}
