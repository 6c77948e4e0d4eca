package debate

import (
	"github.com/openparley/parley/internal/gateway"
	"github.com/openparley/parley/internal/notebook"
	"github.com/openparley/parley/internal/persona"
)

// Engine orchestrates debates: bootstrapping sessions, advancing turns,
// and refreshing notebooks. It holds no per-session state; sessions flow
// in and out of every call.
type Engine struct {
	completer gateway.Completer
	store     notebook.Store
	registry  *persona.Registry

	threshold int
	retries   int
}

// Option configures an Engine.
type Option func(*Engine)

// WithThreshold sets how many unprocessed persona turns make a notebook
// refresh due.
func WithThreshold(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.threshold = n
		}
	}
}

// WithRetries sets how many times a failed notebook refresh is retried
// per participant (attempts = 1 + retries).
func WithRetries(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.retries = n
		}
	}
}

// Defaults match the values in projectconfig; they are duplicated here so
// the package stands alone in tests.
const (
	defaultThreshold = 4
	defaultRetries   = 2
)

// NewEngine creates an Engine.
func NewEngine(completer gateway.Completer, store notebook.Store, registry *persona.Registry, opts ...Option) *Engine {
	e := &Engine{
		completer: completer,
		store:     store,
		registry:  registry,
		threshold: defaultThreshold,
		retries:   defaultRetries,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}
