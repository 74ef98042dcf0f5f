package resumes

import "context"

// Repo persists resumes. Insert assigns the identifier and returns the stored document.
type Repo interface {
	Insert(ctx context.Context, r Resume) (Resume, error)
}
