package llm

import (
	"context"
	"errors"
)

// Completer sends one prompt to a chat-completion provider.
type Completer interface {
	Complete(ctx context.Context, prompt string) (Completion, error)
}

// CompletionKind tags the shape of a provider reply.
type CompletionKind int

const (
	// CompletionEmpty means the reply decoded but carried no usable text
	// (no choices, or an empty first message).
	CompletionEmpty CompletionKind = iota
	// CompletionText means the first choice carried non-empty message content.
	CompletionText
)

func (k CompletionKind) String() string {
	switch k {
	case CompletionText:
		return "text"
	default:
		return "empty"
	}
}

// Completion is the decoded provider reply.
type Completion struct {
	Kind CompletionKind
	Text string
}

// TextCompletion builds a CompletionText value.
func TextCompletion(text string) Completion {
	return Completion{Kind: CompletionText, Text: text}
}

// EmptyCompletion builds a CompletionEmpty value.
func EmptyCompletion() Completion {
	return Completion{Kind: CompletionEmpty}
}

// ErrNotConfigured is returned when no provider credential is set.
var ErrNotConfigured = errors.New("llm provider not configured")
