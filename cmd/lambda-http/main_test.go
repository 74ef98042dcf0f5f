package main

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestErrorResponseEnvelope(t *testing.T) {
	resp := errorResponse("bootstrap failed")

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	if resp.Headers["Content-Type"] != "application/json" {
		t.Fatalf("unexpected content type: %q", resp.Headers["Content-Type"])
	}
	var body map[string]any
	if err := json.Unmarshal([]byte(resp.Body), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["ok"] != false || body["error"] != "bootstrap failed" {
		t.Fatalf("unexpected body: %v", body)
	}
}
