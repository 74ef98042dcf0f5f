package resumes

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data []Resume
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// Insert appends a copy of r under a fresh UUID.
func (m *MemoryRepo) Insert(ctx context.Context, r Resume) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.ID = uuid.NewString()
	r.normalize()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append(m.data, clone(r))
	return r, nil
}

// All returns copies of every stored resume in insertion order.
func (m *MemoryRepo) All() []Resume {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Resume, 0, len(m.data))
	for _, r := range m.data {
		out = append(out, clone(r))
	}
	return out
}

func clone(r Resume) Resume {
	r.Experience = append([]Experience{}, r.Experience...)
	r.Education = append([]Education{}, r.Education...)
	r.Skills = append([]string{}, r.Skills...)
	return r
}
