package debate

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/openparley/parley/internal/gateway"
	"github.com/openparley/parley/internal/persona"
)

// refreshTarget pairs one participant with the slot its rewritten notebook
// lands in.
type refreshTarget struct {
	p          persona.Persona
	evaluative bool
	assign     func(*Session, string)
}

func (s Session) refreshTargets() []refreshTarget {
	targets := []refreshTarget{
		{p: s.DebaterA, assign: func(out *Session, nb string) { out.NotebookA = nb }},
		{p: s.DebaterB, assign: func(out *Session, nb string) { out.NotebookB = nb }},
	}
	if s.Referee != nil {
		targets = append(targets, refreshTarget{
			p:          *s.Referee,
			evaluative: true,
			assign:     func(out *Session, nb string) { out.NotebookReferee = nb },
		})
	}
	return targets
}

// RefreshDue reports whether the unprocessed window has accumulated enough
// persona turns to trigger a notebook refresh.
func (e *Engine) RefreshDue(s Session) bool {
	return s.unprocessedSpeakerCount() >= e.threshold
}

// RefreshIfDue rewrites every participant's notebook from the unprocessed
// transcript window when the window is large enough, and returns the
// updated session. Participants refresh concurrently and independently:
// one failing does not stop the others. If at least one succeeded, the
// sync marker advances past the window and the session is parked awaiting
// operator confirmation. If every participant failed, the session comes
// back unchanged and the same window is retried on the next advance.
func (e *Engine) RefreshIfDue(ctx context.Context, s Session) Session {
	if !e.RefreshDue(s) {
		return s
	}

	out := s.clone()
	window := s.unprocessed()
	targets := s.refreshTargets()
	results := make([]string, len(targets))
	oks := make([]bool, len(targets))

	var g errgroup.Group
	for i, t := range targets {
		g.Go(func() error {
			nb, err := e.reflect(ctx, t.p, s, window, t.evaluative)
			if err != nil {
				slog.Warn("notebook refresh failed",
					"session", s.ID, "persona", t.p.ID, "error", err)
				return nil
			}
			results[i] = nb
			oks[i] = true
			return nil
		})
	}
	_ = g.Wait()

	anyOK := false
	for i, t := range targets {
		if !oks[i] {
			continue
		}
		anyOK = true
		t.assign(&out, results[i])
		e.store.Write(t.p.ID, s.Topic, results[i])
	}
	if !anyOK {
		slog.Error("all notebook refreshes failed; window will be retried", "session", s.ID)
		return out
	}

	out.LastSyncCount = len(out.Entries)
	out.UserConfirmationNeeded = true
	slog.Info("notebooks refreshed",
		"session", s.ID, "windowEntries", len(window), "participants", len(targets))
	return out
}

// reflect runs one participant's notebook rewrite with retries.
func (e *Engine) reflect(ctx context.Context, p persona.Persona, s Session, window []Entry, evaluative bool) (string, error) {
	msgs := buildReflectionMessages(p, s.Topic, s.notebookFor(p.ID), window, evaluative)

	var lastErr error
	for attempt := 0; attempt <= e.retries; attempt++ {
		nb, err := e.completer.Complete(ctx, msgs, gateway.ClassReflection)
		if err == nil {
			return nb, nil
		}
		lastErr = err
		slog.Debug("notebook reflection attempt failed",
			"persona", p.ID, "attempt", attempt+1, "error", err)
	}
	return "", lastErr
}
