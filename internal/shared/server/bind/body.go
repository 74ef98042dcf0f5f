package bind

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	// ErrBodyTooLarge is returned when the body exceeds the BodyLimit cap.
	ErrBodyTooLarge = errors.New("request entity too large")
	// ErrMalformedJSON is returned when the body is not a JSON document.
	ErrMalformedJSON = errors.New("malformed JSON body")
)

// JSONBody reads the request body and checks that it is well-formed JSON.
// An empty body reads as an empty object.
func JSONBody(c *gin.Context) (json.RawMessage, error) {
	if c.Request.Body == nil {
		return json.RawMessage("{}"), nil
	}
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, ErrBodyTooLarge
		}
		return nil, fmt.Errorf("read body: %w", err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, ErrMalformedJSON
	}
	return json.RawMessage(raw), nil
}

// Status maps a JSONBody error to the HTTP status that reports it.
func Status(err error) int {
	if errors.Is(err, ErrBodyTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}
