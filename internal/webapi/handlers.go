// Package webapi exposes the debate engine over a small JSON REST API.
// The API is stateless: sessions travel in request and response bodies and
// only notebooks touch disk.
package webapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-viper/mapstructure/v2"
	"github.com/yuin/goldmark"

	"github.com/openparley/parley/internal/debate"
	"github.com/openparley/parley/internal/notebook"
	"github.com/openparley/parley/internal/persona"
)

// Version is set at build time or defaults to dev.
var Version = "0.1.0-dev"

// maxBodyBytes caps request bodies; sessions grow with the transcript but
// stay well under this.
const maxBodyBytes = 4 << 20

// Handlers holds the HTTP handler methods for the web API.
type Handlers struct {
	engine   *debate.Engine
	registry *persona.Registry
	store    notebook.Store
}

// NewHandlers creates a new Handlers.
func NewHandlers(engine *debate.Engine, registry *persona.Registry, store notebook.Store) *Handlers {
	return &Handlers{engine: engine, registry: registry, store: store}
}

// HandleHealth returns a simple health check response.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// HandleStart bootstraps a new debate and returns the opening session.
func (h *Handlers) HandleStart(w http.ResponseWriter, r *http.Request) {
	var req StartRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var settings StartSettings
	if len(req.Options) > 0 {
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:      &settings,
			ErrorUnused: true,
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if err := dec.Decode(req.Options); err != nil {
			writeError(w, http.StatusBadRequest, "invalid options: "+err.Error())
			return
		}
	}

	s, err := h.engine.Start(r.Context(), debate.StartOptions{
		Topic:       req.Topic,
		DebaterA:    req.DebaterA,
		DebaterB:    req.DebaterB,
		WithReferee: settings.Referee,
		RoundLimit:  settings.RoundLimit,
	})
	if err != nil {
		switch {
		case errors.Is(err, debate.ErrInvalidSession):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, persona.ErrUnknownPersona):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			writeError(w, http.StatusBadGateway, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, DebateResponse{Session: s})
}

// HandleContinue advances a debate by one step. With ?ack=true a pending
// notebook confirmation is cleared first; an optional directive in the body
// is injected before the turn.
func (h *Handlers) HandleContinue(w http.ResponseWriter, r *http.Request) {
	var req ContinueRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s := req.Session
	if r.URL.Query().Get("ack") == "true" {
		s = debate.Acknowledge(s)
	}
	if req.Directive != "" {
		s = debate.InjectDirective(s, req.Directive)
	}

	s, err := h.engine.Advance(r.Context(), s)
	if err != nil {
		if errors.Is(err, debate.ErrInvalidSession) {
			writeError(w, http.StatusBadRequest, err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, DebateResponse{Session: s})
}

// HandlePersonas lists the available debate personas.
func (h *Handlers) HandlePersonas(w http.ResponseWriter, _ *http.Request) {
	personas := h.registry.List()
	out := make([]PersonaSummary, 0, len(personas))
	for _, p := range personas {
		out = append(out, PersonaSummary{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Stance:      p.Stance.Summary(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// HandlePersonaDetail returns one persona in full.
func (h *Handlers) HandlePersonaDetail(w http.ResponseWriter, r *http.Request) {
	p, err := h.registry.Resolve(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleNotebooks lists stored notebooks, newest first.
func (h *Handlers) HandleNotebooks(w http.ResponseWriter, _ *http.Request) {
	infos, err := h.store.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, NotebookList{Notebooks: infos})
}

// HandleNotebookDetail returns one notebook's content, as JSON by default
// or rendered markdown with ?format=html.
func (h *Handlers) HandleNotebookDetail(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	content, err := h.store.ReadKey(key)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "html" {
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(content), &buf); err != nil {
			writeError(w, http.StatusInternalServerError, "rendering notebook: "+err.Error())
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		buf.WriteTo(w) //nolint:errcheck
		return
	}
	writeJSON(w, http.StatusOK, NotebookDetail{Key: key, Content: content})
}

// HandleNotebookDelete removes one notebook.
func (h *Handlers) HandleNotebookDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteKey(r.PathValue("key")); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RegisterRoutes registers all web API routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, engine *debate.Engine, registry *persona.Registry, store notebook.Store) {
	h := NewHandlers(engine, registry, store)
	mux.HandleFunc("GET /api/health", h.HandleHealth)
	mux.HandleFunc("POST /api/debate/start", h.HandleStart)
	mux.HandleFunc("POST /api/debate/continue", h.HandleContinue)
	mux.HandleFunc("GET /api/personas", h.HandlePersonas)
	mux.HandleFunc("GET /api/personas/{id}", h.HandlePersonaDetail)
	mux.HandleFunc("GET /api/notebooks", h.HandleNotebooks)
	mux.HandleFunc("GET /api/notebooks/{key}", h.HandleNotebookDetail)
	mux.HandleFunc("DELETE /api/notebooks/{key}", h.HandleNotebookDelete)
}

// CORSMiddleware wraps a handler with CORS headers.
// If allowedOrigins is empty, no CORS header is set (same-origin only).
// Otherwise, the request Origin is checked against the allowed list.
func CORSMiddleware(next http.Handler, allowedOrigins ...string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if len(allowedOrigins) > 0 && origin != "" && allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return errors.New("invalid request body: " + err.Error())
	}
	return nil
}

func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, notebook.ErrNotFound):
		writeError(w, http.StatusNotFound, "notebook not found")
	case errors.Is(err, notebook.ErrInvalidKey):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg, Code: code})
}
