package gateway

import (
	"context"
	"fmt"
	"sync"
)

// Call records one Complete invocation made against a ScriptedCompleter.
type Call struct {
	Messages []Message
	Class    RequestClass
}

// ScriptedCompleter is a simple in-memory Completer for tests and offline
// runs. Replies are consumed in order; when the queue is exhausted it
// echoes the final user message. FailFirst makes the first N calls return
// Err (defaulting to a generic failure) before the script resumes.
type ScriptedCompleter struct {
	mu        sync.Mutex
	Replies   []string
	Err       error
	FailFirst int

	calls []Call
}

// Complete implements Completer.
func (s *ScriptedCompleter) Complete(_ context.Context, msgs []Message, class RequestClass) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, Call{Messages: msgs, Class: class})

	if s.FailFirst > 0 {
		s.FailFirst--
		if s.Err != nil {
			return "", s.Err
		}
		return "", fmt.Errorf("scripted failure")
	}
	if s.Err != nil {
		return "", s.Err
	}

	if len(s.Replies) > 0 {
		reply := s.Replies[0]
		if len(s.Replies) > 1 {
			s.Replies = s.Replies[1:]
		}
		return reply, nil
	}

	// Echo mode: repeat the last user message back.
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == RoleUser {
			return "Scripted response for: " + msgs[i].Content, nil
		}
	}
	return "Scripted response", nil
}

// Calls returns a copy of the recorded invocations.
func (s *ScriptedCompleter) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// CallCount returns how many times Complete has been invoked.
func (s *ScriptedCompleter) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

var _ Completer = (*ScriptedCompleter)(nil)
