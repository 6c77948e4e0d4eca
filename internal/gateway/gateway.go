// Package gateway wraps the external text-generation capability behind a
// narrow interface. The rest of the system only ever sees Completer.
package gateway

import (
	"context"
	"errors"
)

//go:generate mockgen -source=gateway.go -destination=mock_completer.go -package=gateway

// Role is a chat message role understood by the provider.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one (role, content) pair in the conversation a completion
// is conditioned on.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// RequestClass selects the output-length budget for a completion.
type RequestClass string

const (
	// ClassTurn is a short-form debate turn.
	ClassTurn RequestClass = "turn"
	// ClassReflection is a long-form notebook rewrite.
	ClassReflection RequestClass = "reflection"
)

// ErrEmptyCompletion is returned when the provider answers with no text.
var ErrEmptyCompletion = errors.New("provider returned an empty completion")

// FailureMessage is the operator-visible text appended to the transcript
// when a debate turn cannot be generated. It is presentation only; callers
// branch on the returned error, never on this string.
const FailureMessage = "Sorry, a response could not be generated. Please try again."

// Completer asks the model for a single completion. Implementations do not
// retry; retry policy belongs to the caller.
type Completer interface {
	Complete(ctx context.Context, msgs []Message, class RequestClass) (string, error)
}
