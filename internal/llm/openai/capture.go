package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"resume-builder/internal/llm"
)

type captureKey struct{}

// bodyCapture holds the raw 2xx reply of one call.
type bodyCapture struct {
	buf bytes.Buffer
}

func withCapture(ctx context.Context) (context.Context, *bodyCapture) {
	capture := &bodyCapture{}
	return context.WithValue(ctx, captureKey{}, capture), capture
}

// captureTransport copies successful reply bodies into the bodyCapture carried
// by the request context, so a reply the typed decoder rejects can still be read.
type captureTransport struct {
	next http.RoundTripper
}

func (t captureTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return resp, err
	}
	capture, ok := req.Context().Value(captureKey{}).(*bodyCapture)
	if ok && resp.StatusCode >= 200 && resp.StatusCode < 300 {
		resp.Body = struct {
			io.Reader
			io.Closer
		}{io.TeeReader(resp.Body, &capture.buf), resp.Body}
	}
	return resp, nil
}

func withCaptureTransport(client *http.Client) *http.Client {
	next := client.Transport
	if next == nil {
		next = http.DefaultTransport
	}
	wrapped := *client
	wrapped.Transport = captureTransport{next: next}
	return &wrapped
}

// looseCompletion reads choices[0].message.content from any JSON shape.
// Only a non-empty string counts as text.
func looseCompletion(raw []byte) llm.Completion {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return llm.EmptyCompletion()
	}
	choices, _ := doc["choices"].([]any)
	if len(choices) == 0 {
		return llm.EmptyCompletion()
	}
	first, _ := choices[0].(map[string]any)
	message, _ := first["message"].(map[string]any)
	content, _ := message["content"].(string)
	if content == "" {
		return llm.EmptyCompletion()
	}
	return llm.TextCompletion(content)
}
