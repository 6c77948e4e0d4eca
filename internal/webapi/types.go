package webapi

import (
	"github.com/openparley/parley/internal/debate"
	"github.com/openparley/parley/internal/notebook"
)

// StartRequest begins a new debate.
type StartRequest struct {
	Topic    string `json:"topic"`
	DebaterA string `json:"debaterA"`
	DebaterB string `json:"debaterB"`

	// Options carries optional tuning knobs; unknown keys are rejected.
	Options map[string]any `json:"options,omitempty"`
}

// StartSettings are the recognized StartRequest options.
type StartSettings struct {
	Referee    bool `mapstructure:"referee"`
	RoundLimit int  `mapstructure:"roundLimit"`
}

// ContinueRequest advances an existing debate. The session is the client's
// to keep between calls; the server holds no debate state.
type ContinueRequest struct {
	Session debate.Session `json:"session"`

	// Directive is an optional steering instruction injected into the
	// transcript before the next turn.
	Directive string `json:"directive,omitempty"`
}

// DebateResponse wraps the updated session returned by start and continue.
type DebateResponse struct {
	Session debate.Session `json:"session"`
}

// PersonaSummary is one entry in the persona listing.
type PersonaSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Stance      string `json:"stance,omitempty"`
}

// NotebookDetail is the content response for a single notebook.
type NotebookDetail struct {
	Key     string `json:"key"`
	Content string `json:"content"`
}

// NotebookList is the listing response.
type NotebookList struct {
	Notebooks []notebook.Info `json:"notebooks"`
}

// HealthResponse is the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is returned for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
