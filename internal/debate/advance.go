package debate

import (
	"context"
	"log/slog"

	"github.com/openparley/parley/internal/gateway"
)

// Advance moves the debate forward by at most one step and returns the
// updated session. The step is one of:
//
//   - nothing, when the session is already complete;
//   - a notebook refresh, when enough unprocessed turns have accumulated —
//     the session then parks with UserConfirmationNeeded set and no turn
//     is generated until the operator acknowledges;
//   - one speaker turn, in strict A/B alternation.
//
// A failed turn still advances the debate: the transcript records a fixed
// apology line for the speaker, so the floor passes to the opponent and a
// wedged model cannot stall the alternation. Completing the second turn of
// a round increments the round counter and, at the configured limit, closes
// the debate.
func (e *Engine) Advance(ctx context.Context, s Session) (Session, error) {
	if err := s.Validate(); err != nil {
		return s, err
	}
	if s.Complete {
		return s, nil
	}

	out := e.RefreshIfDue(ctx, s)
	if out.UserConfirmationNeeded {
		return out, nil
	}
	out = out.clone()

	speaker, opponent, isA := out.nextSpeaker()
	text, err := e.completer.Complete(ctx,
		buildTurnMessages(out, speaker, opponent,
			out.notebookFor(speaker.ID), e.store.Knowledge(speaker.ID)),
		gateway.ClassTurn)
	if err != nil {
		slog.Warn("turn generation failed",
			"session", out.ID, "persona", speaker.ID, "error", err)
		text = gateway.FailureMessage
	}
	out.Entries = append(out.Entries, Entry{Role: RoleSpeaker, Content: text, Speaker: speaker.Name})

	if !isA {
		out.Round++
		if out.RoundLimit > 0 && out.Round >= out.RoundLimit {
			out.Complete = true
			slog.Info("debate complete", "session", out.ID, "rounds", out.Round)
		}
	}
	return out, nil
}
