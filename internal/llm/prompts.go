package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const improvementPrefix = "Give resume improvements for: "

// ImprovementPrompt renders the single user message asking for resume
// improvements. The payload is embedded as compact JSON, keys in request order.
func ImprovementPrompt(payload json.RawMessage) (string, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, payload); err != nil {
		return "", fmt.Errorf("compact payload: %w", err)
	}
	return improvementPrefix + buf.String(), nil
}
