// Package debate holds the session model and the turn/round/notebook
// orchestration around it.
package debate

import (
	"errors"
	"fmt"

	"github.com/openparley/parley/internal/persona"
)

// EntryRole tags who (or what) authored a transcript entry.
type EntryRole string

const (
	// RoleModerator marks the chairperson's remarks.
	RoleModerator EntryRole = "moderator"
	// RoleSpeaker marks a debating persona's turn.
	RoleSpeaker EntryRole = "speaker"
	// RoleDirective marks a synthetic steering instruction injected by the
	// operator; it conditions the next response but is never spoken.
	RoleDirective EntryRole = "directive"
)

// Entry is one transcript contribution. Position in the session's entry
// sequence is meaningful: speaker parity decides whose turn is next.
type Entry struct {
	Role    EntryRole `json:"role"`
	Content string    `json:"content"`
	// Speaker is the display name used for attribution; set only on
	// persona-authored entries.
	Speaker string `json:"speaker,omitempty"`
}

// Session is the aggregate debate state. It is the client's to keep:
// every operation takes a session in and returns a new one; the input is
// never mutated.
type Session struct {
	ID      string  `json:"id"`
	Topic   string  `json:"topic"`
	Entries []Entry `json:"entries"`

	DebaterA persona.Persona  `json:"debaterA"`
	DebaterB persona.Persona  `json:"debaterB"`
	Referee  *persona.Persona `json:"referee,omitempty"`

	// Round counts completed (A, B) alternations. RoundLimit zero means
	// the debate is unbounded and only the operator ends it.
	Round      int  `json:"round"`
	RoundLimit int  `json:"roundLimit,omitempty"`
	Complete   bool `json:"complete"`

	NotebookA       string `json:"notebookA,omitempty"`
	NotebookB       string `json:"notebookB,omitempty"`
	NotebookReferee string `json:"notebookReferee,omitempty"`

	// LastSyncCount is the transcript length at the last successful
	// notebook refresh; entries past it are the unprocessed window.
	LastSyncCount int `json:"lastSyncCount"`

	// UserConfirmationNeeded is set after a successful refresh and holds
	// the debate until the operator (or an auto-continue policy)
	// acknowledges the new notebooks.
	UserConfirmationNeeded bool `json:"userConfirmationNeeded"`
}

// ErrInvalidSession is returned when a continue request carries a session
// missing required fields or violating an invariant.
var ErrInvalidSession = errors.New("invalid debate session")

// Validate checks the fields Advance depends on.
func (s Session) Validate() error {
	if s.Topic == "" {
		return fmt.Errorf("%w: topic is required", ErrInvalidSession)
	}
	if s.DebaterA.ID == "" || s.DebaterB.ID == "" {
		return fmt.Errorf("%w: both debaters are required", ErrInvalidSession)
	}
	if s.DebaterA.ID == s.DebaterB.ID {
		return fmt.Errorf("%w: debaters must be distinct personas", ErrInvalidSession)
	}
	if s.LastSyncCount < 0 || s.LastSyncCount > len(s.Entries) {
		return fmt.Errorf("%w: sync marker %d out of range for %d entries", ErrInvalidSession, s.LastSyncCount, len(s.Entries))
	}
	return nil
}

// clone returns a deep copy so updates never alias the caller's session.
func (s Session) clone() Session {
	out := s
	out.Entries = make([]Entry, len(s.Entries))
	copy(out.Entries, s.Entries)
	if s.Referee != nil {
		ref := *s.Referee
		out.Referee = &ref
	}
	return out
}

// speakerCount counts persona-authored entries. Moderator and directive
// entries never count toward turn parity.
func (s Session) speakerCount() int {
	n := 0
	for _, e := range s.Entries {
		if e.Role == RoleSpeaker {
			n++
		}
	}
	return n
}

// nextSpeaker returns the persona due to speak and whether it is debater A.
// The debaters alternate strictly after the moderator's opening: an even
// count of spoken turns puts A up next, odd puts B.
func (s Session) nextSpeaker() (speaker, opponent persona.Persona, isA bool) {
	if s.speakerCount()%2 == 0 {
		return s.DebaterA, s.DebaterB, true
	}
	return s.DebaterB, s.DebaterA, false
}

// unprocessedSpeakerCount counts persona-authored entries past the sync
// marker. Moderator and directive entries do not bring a refresh closer.
func (s Session) unprocessedSpeakerCount() int {
	n := 0
	for _, e := range s.unprocessed() {
		if e.Role == RoleSpeaker {
			n++
		}
	}
	return n
}

// unprocessed returns the entries past the sync marker.
func (s Session) unprocessed() []Entry {
	if s.LastSyncCount >= len(s.Entries) {
		return nil
	}
	return s.Entries[s.LastSyncCount:]
}

// notebookFor returns the stored-in-session notebook for a participant.
func (s Session) notebookFor(id string) string {
	switch id {
	case s.DebaterA.ID:
		return s.NotebookA
	case s.DebaterB.ID:
		return s.NotebookB
	default:
		return s.NotebookReferee
	}
}

// InjectDirective returns a copy of the session with an operator steering
// instruction appended. Directives condition upcoming turns but are never
// attributed to a speaker and never count toward parity.
func InjectDirective(s Session, text string) Session {
	out := s.clone()
	out.Entries = append(out.Entries, Entry{Role: RoleDirective, Content: text})
	return out
}

// Acknowledge returns a copy of the session with the pending confirmation
// cleared, allowing the next Advance to generate a turn.
func Acknowledge(s Session) Session {
	out := s.clone()
	out.UserConfirmationNeeded = false
	return out
}
