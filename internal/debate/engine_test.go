package debate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/openparley/parley/internal/gateway"
	"github.com/openparley/parley/internal/notebook"
	"github.com/openparley/parley/internal/persona"
)

// completerFunc adapts a function to gateway.Completer for tests that need
// reply logic keyed off the prompt.
type completerFunc func(ctx context.Context, msgs []gateway.Message, class gateway.RequestClass) (string, error)

func (f completerFunc) Complete(ctx context.Context, msgs []gateway.Message, class gateway.RequestClass) (string, error) {
	return f(ctx, msgs, class)
}

func newTestEngine(t *testing.T, c gateway.Completer, opts ...Option) (*Engine, *notebook.FileStore) {
	t.Helper()
	store := notebook.NewFileStore(t.TempDir(), t.TempDir())
	return NewEngine(c, store, persona.NewRegistry(), opts...), store
}

func TestStartBootstrapsSession(t *testing.T) {
	sc := &gateway.ScriptedCompleter{Replies: []string{"Welcome, everyone."}}
	e, _ := newTestEngine(t, sc)

	s, err := e.Start(context.Background(), StartOptions{
		Topic:    "Should cities ban private cars?",
		DebaterA: "scientist",
		DebaterB: "philosopher",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, s.ID)
	assert.False(t, s.Complete)
	assert.Zero(t, s.Round)
	require.Len(t, s.Entries, 1)
	assert.Equal(t, RoleModerator, s.Entries[0].Role)
	assert.Equal(t, "Welcome, everyone.", s.Entries[0].Content)
	assert.Equal(t, 1, s.LastSyncCount, "the opening remarks start out processed")
	assert.Nil(t, s.Referee)

	calls := sc.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, gateway.ClassTurn, calls[0].Class)
}

func TestStartWithReferee(t *testing.T) {
	sc := &gateway.ScriptedCompleter{}
	e, _ := newTestEngine(t, sc)

	s, err := e.Start(context.Background(), StartOptions{
		Topic:       "Universal basic income",
		DebaterA:    "politician",
		DebaterB:    "entrepreneur",
		WithReferee: true,
		RoundLimit:  3,
	})
	require.NoError(t, err)
	require.NotNil(t, s.Referee)
	assert.Equal(t, "referee", s.Referee.ID)
	assert.Equal(t, 3, s.RoundLimit)
}

func TestStartValidatesBeforeCallingModel(t *testing.T) {
	tests := []struct {
		name string
		opts StartOptions
		want error
	}{
		{
			name: "empty topic",
			opts: StartOptions{DebaterA: "scientist", DebaterB: "philosopher"},
			want: ErrInvalidSession,
		},
		{
			name: "same persona on both sides",
			opts: StartOptions{Topic: "t", DebaterA: "scientist", DebaterB: "scientist"},
			want: ErrInvalidSession,
		},
		{
			name: "unknown persona",
			opts: StartOptions{Topic: "t", DebaterA: "scientist", DebaterB: "astronaut"},
			want: persona.ErrUnknownPersona,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := &gateway.ScriptedCompleter{}
			e, _ := newTestEngine(t, sc)

			_, err := e.Start(context.Background(), tt.opts)
			require.ErrorIs(t, err, tt.want)
			assert.Zero(t, sc.CallCount(), "no model call may happen for an invalid request")
		})
	}
}

func TestStartMentionsPriorNotes(t *testing.T) {
	sc := &gateway.ScriptedCompleter{}
	e, store := newTestEngine(t, sc)
	store.Write("scientist", "Universal basic income", "# My Position\nPilot programs first.")

	s, err := e.Start(context.Background(), StartOptions{
		Topic:    "Universal basic income",
		DebaterA: "scientist",
		DebaterB: "philosopher",
	})
	require.NoError(t, err)
	assert.Contains(t, s.NotebookA, "Pilot programs first")

	calls := sc.Calls()
	require.Len(t, calls, 1)
	prompt := calls[0].Messages[len(calls[0].Messages)-1].Content
	assert.Contains(t, prompt, "earlier discussion")
}

func TestAdvanceAlternatesAndCountsRounds(t *testing.T) {
	sc := &gateway.ScriptedCompleter{Replies: []string{
		"Welcome.", "A opens.", "B responds.", "A rebuts.",
	}}
	// Threshold high enough that no refresh interrupts the alternation.
	e, _ := newTestEngine(t, sc, WithThreshold(10))

	s, err := e.Start(context.Background(), StartOptions{
		Topic:    "Should cities ban private cars?",
		DebaterA: "scientist",
		DebaterB: "philosopher",
	})
	require.NoError(t, err)

	s, err = e.Advance(context.Background(), s)
	require.NoError(t, err)
	require.Len(t, s.Entries, 2)
	assert.Equal(t, s.DebaterA.Name, s.Entries[1].Speaker)
	assert.Equal(t, "A opens.", s.Entries[1].Content)
	assert.Zero(t, s.Round)

	s, err = e.Advance(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, s.DebaterB.Name, s.Entries[2].Speaker)
	assert.Equal(t, 1, s.Round, "the round closes after the second speaker")

	s, err = e.Advance(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, s.DebaterA.Name, s.Entries[3].Speaker)
	assert.Equal(t, 1, s.Round)
}

func TestAdvanceRoundLimitCompletes(t *testing.T) {
	sc := &gateway.ScriptedCompleter{}
	e, _ := newTestEngine(t, sc, WithThreshold(10))

	s, err := e.Start(context.Background(), StartOptions{
		Topic:      "One-round topic",
		DebaterA:   "scientist",
		DebaterB:   "philosopher",
		RoundLimit: 1,
	})
	require.NoError(t, err)

	s, err = e.Advance(context.Background(), s)
	require.NoError(t, err)
	assert.False(t, s.Complete)

	s, err = e.Advance(context.Background(), s)
	require.NoError(t, err)
	assert.True(t, s.Complete)

	// Advancing a complete session is a no-op.
	calls := sc.CallCount()
	s2, err := e.Advance(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, s, s2)
	assert.Equal(t, calls, sc.CallCount())
}

func TestAdvanceRejectsInvalidSession(t *testing.T) {
	sc := &gateway.ScriptedCompleter{}
	e, _ := newTestEngine(t, sc)

	_, err := e.Advance(context.Background(), Session{})
	require.ErrorIs(t, err, ErrInvalidSession)
	assert.Zero(t, sc.CallCount())
}

func TestAdvanceTurnFailureRecordsApology(t *testing.T) {
	boom := errors.New("upstream down")
	e, _ := newTestEngine(t, &gateway.ScriptedCompleter{Err: boom}, WithThreshold(10))

	s := testSession(t, 1)
	s, err := e.Advance(context.Background(), s)
	require.NoError(t, err, "a failed turn degrades, it does not error")

	last := s.Entries[len(s.Entries)-1]
	assert.Equal(t, RoleSpeaker, last.Role)
	assert.Equal(t, s.DebaterB.Name, last.Speaker)
	assert.Equal(t, gateway.FailureMessage, last.Content)

	// The floor still passed: A is up next.
	speaker, _, isA := s.nextSpeaker()
	assert.True(t, isA)
	assert.Equal(t, s.DebaterA.ID, speaker.ID)
}

func TestRefreshDueThreshold(t *testing.T) {
	e, _ := newTestEngine(t, &gateway.ScriptedCompleter{}, WithThreshold(4))

	assert.False(t, e.RefreshDue(testSession(t, 3)))
	assert.True(t, e.RefreshDue(testSession(t, 4)))

	// Directives widen the window without making a refresh due.
	s := InjectDirective(testSession(t, 3), "steer")
	assert.False(t, e.RefreshDue(s))
}

func TestRefreshIfDueRewritesNotebooksAndParks(t *testing.T) {
	sc := &gateway.ScriptedCompleter{}
	e, store := newTestEngine(t, sc, WithThreshold(4))

	s := testSession(t, 4)
	out := e.RefreshIfDue(context.Background(), s)

	assert.True(t, out.UserConfirmationNeeded)
	assert.Equal(t, len(out.Entries), out.LastSyncCount)
	assert.NotEmpty(t, out.NotebookA)
	assert.NotEmpty(t, out.NotebookB)

	// Both notebooks were persisted under the derived keys.
	assert.Equal(t, out.NotebookA, store.Read(s.DebaterA.ID, s.Topic))
	assert.Equal(t, out.NotebookB, store.Read(s.DebaterB.ID, s.Topic))

	for _, c := range sc.Calls() {
		assert.Equal(t, gateway.ClassReflection, c.Class)
	}
	assert.Equal(t, 2, sc.CallCount())

	// Not due again until new turns accumulate.
	assert.False(t, e.RefreshDue(out))
}

func TestRefreshIncludesReferee(t *testing.T) {
	sc := &gateway.ScriptedCompleter{}
	e, _ := newTestEngine(t, sc, WithThreshold(4))

	s := testSession(t, 4)
	ref := persona.Referee()
	s.Referee = &ref

	out := e.RefreshIfDue(context.Background(), s)
	assert.Equal(t, 3, sc.CallCount())
	assert.NotEmpty(t, out.NotebookReferee)
}

func TestRefreshRetriesThenGivesUp(t *testing.T) {
	sc := &gateway.ScriptedCompleter{Err: errors.New("boom")}
	e, _ := newTestEngine(t, sc, WithThreshold(4), WithRetries(2))

	s := testSession(t, 4)
	out := e.RefreshIfDue(context.Background(), s)

	// Two participants, three attempts each.
	assert.Equal(t, 6, sc.CallCount())

	assert.False(t, out.UserConfirmationNeeded)
	assert.Equal(t, s.LastSyncCount, out.LastSyncCount, "a fully failed refresh keeps the window for retry")
	assert.Empty(t, out.NotebookA)
	assert.Empty(t, out.NotebookB)
}

func TestRefreshPartialSuccessStillAdvancesMarker(t *testing.T) {
	s := testSession(t, 4)
	s.NotebookB = "old B notes"

	// Reflections for debater B always fail; everything else succeeds.
	c := completerFunc(func(_ context.Context, msgs []gateway.Message, class gateway.RequestClass) (string, error) {
		if class == gateway.ClassReflection && strings.Contains(msgs[0].Content, "as "+s.DebaterB.Name) {
			return "", errors.New("boom")
		}
		return "fresh A notes", nil
	})
	e, store := newTestEngine(t, c, WithThreshold(4), WithRetries(0))

	out := e.RefreshIfDue(context.Background(), s)

	assert.True(t, out.UserConfirmationNeeded, "one success is enough to park for confirmation")
	assert.Equal(t, len(out.Entries), out.LastSyncCount)
	assert.Equal(t, "fresh A notes", out.NotebookA)
	assert.Equal(t, "old B notes", out.NotebookB, "the failed participant keeps its prior notebook")
	assert.Empty(t, store.Read(s.DebaterB.ID, s.Topic), "nothing is persisted for a failed participant")
}

func TestAdvanceParksForConfirmation(t *testing.T) {
	sc := &gateway.ScriptedCompleter{}
	e, _ := newTestEngine(t, sc, WithThreshold(4))

	s := testSession(t, 4)
	out, err := e.Advance(context.Background(), s)
	require.NoError(t, err)

	assert.True(t, out.UserConfirmationNeeded)
	assert.Equal(t, s.speakerCount(), out.speakerCount(), "no turn is generated while parked")

	// A second advance without acknowledgement stays parked.
	calls := sc.CallCount()
	again, err := e.Advance(context.Background(), out)
	require.NoError(t, err)
	assert.True(t, again.UserConfirmationNeeded)
	assert.Equal(t, calls, sc.CallCount())

	// Acknowledging resumes the alternation.
	resumed, err := e.Advance(context.Background(), Acknowledge(out))
	require.NoError(t, err)
	assert.False(t, resumed.UserConfirmationNeeded)
	assert.Equal(t, s.speakerCount()+1, resumed.speakerCount())
	assert.Equal(t, s.DebaterA.Name, resumed.Entries[len(resumed.Entries)-1].Speaker)
}

func TestStartUsesTurnClassForOpening(t *testing.T) {
	ctrl := gomock.NewController(t)
	completer := gateway.NewMockCompleter(ctrl)
	completer.EXPECT().
		Complete(gomock.Any(), gomock.Any(), gateway.ClassTurn).
		Return("Welcome to tonight's debate.", nil)

	e, _ := newTestEngine(t, completer)
	s, err := e.Start(context.Background(), StartOptions{
		Topic:    "Space settlement",
		DebaterA: "scientist",
		DebaterB: "entrepreneur",
	})
	require.NoError(t, err)
	assert.Equal(t, "Welcome to tonight's debate.", s.Entries[0].Content)
}

func TestTurnPromptCarriesNotebookAndKnowledge(t *testing.T) {
	sc := &gateway.ScriptedCompleter{}
	store := notebook.NewFileStore(t.TempDir(), t.TempDir())
	e := NewEngine(sc, store, persona.NewRegistry(), WithThreshold(10))

	s := testSession(t, 0)
	s.NotebookA = "# My Position\nEvidence first."

	s, err := e.Advance(context.Background(), s)
	require.NoError(t, err)

	calls := sc.Calls()
	require.Len(t, calls, 1)
	sys := calls[0].Messages[0].Content
	assert.Contains(t, sys, "Evidence first.")
	assert.Contains(t, sys, s.DebaterA.Directive)
	assert.Contains(t, sys, s.Topic)
}
