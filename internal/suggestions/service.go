package suggestions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"resume-builder/internal/llm"
	"resume-builder/internal/shared/metrics"
)

// Replies used when the provider gives nothing to relay.
const (
	NotConfiguredText = "AI key not set"
	NoSuggestionText  = "No suggestion"
)

// ErrMalformedRequest marks a request body that is not valid JSON.
var ErrMalformedRequest = errors.New("malformed request body")

// Outcome labels how a suggestion was produced.
type Outcome string

const (
	OutcomeSkipped Outcome = "skipped"
	OutcomeText    Outcome = "text"
	OutcomeEmpty   Outcome = "empty"
	OutcomeFailed  Outcome = "failed"
)

// Result is the text relayed to the caller.
type Result struct {
	Suggestion string
	Outcome    Outcome
}

// Service asks the completion provider for resume improvements.
// A nil LLM means no credential is configured.
type Service struct {
	LLM llm.Completer
	Now func() time.Time
}

// NewService constructs a Service.
func NewService(completer llm.Completer) *Service {
	return &Service{LLM: completer, Now: time.Now}
}

// Suggest forwards payload to the provider and decodes its reply.
func (s *Service) Suggest(ctx context.Context, payload json.RawMessage) (Result, error) {
	if s.LLM == nil {
		metrics.IncSuggestionSkipped()
		return Result{Suggestion: NotConfiguredText, Outcome: OutcomeSkipped}, nil
	}

	prompt, err := llm.ImprovementPrompt(payload)
	if err != nil {
		return Result{Outcome: OutcomeFailed}, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}

	start := s.now()
	completion, err := s.LLM.Complete(ctx, prompt)
	metrics.ObserveSuggestionDurationMs(float64(s.now().Sub(start).Microseconds()) / 1000.0)
	if err != nil {
		metrics.IncSuggestionFailed()
		return Result{Outcome: OutcomeFailed}, err
	}

	switch completion.Kind {
	case llm.CompletionText:
		metrics.IncSuggestion()
		return Result{Suggestion: completion.Text, Outcome: OutcomeText}, nil
	default:
		metrics.IncSuggestionFallback()
		return Result{Suggestion: NoSuggestionText, Outcome: OutcomeEmpty}, nil
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
