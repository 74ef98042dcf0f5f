package resumes

import (
	"context"
	"fmt"
)

// UnavailableRepo stands in when no store connection could be made at startup.
// Every insert fails with the startup cause.
type UnavailableRepo struct {
	Cause error
}

func (u UnavailableRepo) Insert(ctx context.Context, r Resume) (Resume, error) {
	if u.Cause == nil {
		return Resume{}, ErrStoreUnavailable
	}
	return Resume{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, u.Cause)
}
