package webserver

import (
	"encoding/json"
	"net/http"

	"github.com/openparley/parley/internal/webapi"
)

// registerRoutes sets up the API routes on the given mux.
func registerRoutes(mux *http.ServeMux, cfg Config) {
	webapi.RegisterRoutes(mux, cfg.Engine, cfg.Registry, cfg.Store)
	mux.HandleFunc("GET /", handleIndex)
}

// handleIndex lists the available endpoints, so hitting the root with a
// browser or curl is self-describing.
func handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
		"service": "parley",
		"endpoints": []string{
			"GET /api/health",
			"POST /api/debate/start",
			"POST /api/debate/continue",
			"GET /api/personas",
			"GET /api/notebooks",
			"GET /api/notebooks/{key}",
			"DELETE /api/notebooks/{key}",
		},
	})
}
