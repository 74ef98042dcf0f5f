package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"resume-builder/internal/llm"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/shared/util"
)

const (
	defaultModel     = goopenai.GPT3Dot5Turbo
	defaultMaxTokens = 300
)

// Options configures a Client. Zero Timeout means no client-side deadline.
type Options struct {
	APIKey     string
	Model      string
	BaseURL    string
	MaxTokens  int
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client implements llm.Completer using OpenAI Chat Completions.
type Client struct {
	api       *goopenai.Client
	model     string
	maxTokens int
}

// NewClient constructs a new OpenAI client.
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required: %w", llm.ErrNotConfigured)
	}
	cfg := goopenai.DefaultConfig(opts.APIKey)
	if base := strings.TrimSpace(opts.BaseURL); base != "" {
		cfg.BaseURL = strings.TrimRight(base, "/")
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	cfg.HTTPClient = withCaptureTransport(httpClient)

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &Client{
		api:       goopenai.NewClientWithConfig(cfg),
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

// Complete sends prompt as a single user message and decodes the reply. A 2xx
// reply that is valid JSON of an unexpected shape decodes loosely instead of
// failing.
func (c *Client) Complete(ctx context.Context, prompt string) (llm.Completion, error) {
	ctx, capture := withCapture(ctx)
	resp, err := c.api.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: c.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: c.maxTokens,
	})
	if err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && json.Valid(capture.buf.Bytes()) {
			telemetry.Warn("llm.unexpected_shape", map[string]any{"model": c.model, "error": err})
			return looseCompletion(capture.buf.Bytes()), nil
		}
		return llm.Completion{}, describeError(err)
	}
	logUsage(c.model, util.Fingerprint(prompt), resp.Usage)
	return decodeCompletion(resp), nil
}

// decodeCompletion maps a reply onto the text or empty variant.
func decodeCompletion(resp goopenai.ChatCompletionResponse) llm.Completion {
	if len(resp.Choices) == 0 {
		return llm.EmptyCompletion()
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return llm.EmptyCompletion()
	}
	return llm.TextCompletion(content)
}

func describeError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
		return fmt.Errorf("openai request timeout: %w", err)
	}
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("openai http status %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("openai http status %d: %w", reqErr.HTTPStatusCode, reqErr.Err)
	}
	return err
}

func logUsage(model, promptHash string, usage goopenai.Usage) {
	telemetry.Info("llm.response", map[string]any{
		"model":             model,
		"prompt_sha256":     promptHash,
		"prompt_tokens":     usage.PromptTokens,
		"completion_tokens": usage.CompletionTokens,
		"total_tokens":      usage.TotalTokens,
	})
}

var _ llm.Completer = (*Client)(nil)
