package resumes

import "errors"

var (
	// ErrInvalidPayload wraps schema validation failures.
	ErrInvalidPayload = errors.New("resume validation failed")
	// ErrStoreUnavailable is returned by inserts when no store connection exists.
	ErrStoreUnavailable = errors.New("resume store unavailable")
)
