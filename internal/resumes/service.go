package resumes

import (
	"context"
	"time"
)

// Service validates and stores resumes.
type Service struct {
	Repo Repo
	Now  func() time.Time
}

// Save decodes raw at the schema boundary, stamps createdAt and inserts one document.
func (s *Service) Save(ctx context.Context, raw []byte) (Resume, error) {
	doc, err := Decode(raw)
	if err != nil {
		return Resume{}, err
	}
	doc.CreatedAt = s.now().UTC().Truncate(time.Millisecond)
	return s.Repo.Insert(ctx, doc)
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
