package debate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/openparley/parley/internal/gateway"
	"github.com/openparley/parley/internal/persona"
)

// StartOptions describes a new debate.
type StartOptions struct {
	Topic    string
	DebaterA string
	DebaterB string

	// WithReferee adds a neutral referee who keeps an evaluative notebook
	// but never takes a turn.
	WithReferee bool

	// RoundLimit of zero leaves the debate open-ended.
	RoundLimit int
}

// Start validates the request, resolves both personas, asks the
// chairperson for opening remarks, and returns the bootstrapped session.
// All validation happens before the first model call, so a bad request
// never spends tokens.
func (e *Engine) Start(ctx context.Context, opts StartOptions) (Session, error) {
	topic := strings.TrimSpace(opts.Topic)
	if topic == "" {
		return Session{}, fmt.Errorf("%w: topic is required", ErrInvalidSession)
	}
	if opts.DebaterA == opts.DebaterB {
		return Session{}, fmt.Errorf("%w: debaters must be distinct personas", ErrInvalidSession)
	}
	a, err := e.registry.Resolve(opts.DebaterA)
	if err != nil {
		return Session{}, err
	}
	b, err := e.registry.Resolve(opts.DebaterB)
	if err != nil {
		return Session{}, err
	}

	var referee *persona.Persona
	if opts.WithReferee {
		ref := persona.Referee()
		referee = &ref
	}

	chair := persona.Chairperson()
	metaA := e.store.Metadata(a.ID, topic)
	metaB := e.store.Metadata(b.ID, topic)

	opening, err := e.completer.Complete(ctx,
		buildOpeningMessages(chair, topic, a, b, referee, opts.RoundLimit, metaA, metaB),
		gateway.ClassTurn)
	if err != nil {
		return Session{}, fmt.Errorf("generating opening remarks: %w", err)
	}

	s := Session{
		ID:         uuid.NewString(),
		Topic:      topic,
		DebaterA:   a,
		DebaterB:   b,
		Referee:    referee,
		RoundLimit: opts.RoundLimit,
		Entries: []Entry{
			{Role: RoleModerator, Content: opening, Speaker: chair.Name},
		},
		NotebookA: e.store.Read(a.ID, topic),
		NotebookB: e.store.Read(b.ID, topic),
		// The opening remarks carry no arguments worth reflecting on.
		LastSyncCount: 1,
	}
	if referee != nil {
		s.NotebookReferee = e.store.Read(referee.ID, topic)
	}

	slog.Info("debate started",
		"session", s.ID, "topic", topic,
		"debaterA", a.ID, "debaterB", b.ID,
		"referee", opts.WithReferee, "roundLimit", opts.RoundLimit)
	return s, nil
}
