package generations

import "context"

// Repo defines persistence operations for generation records.
type Repo interface {
	Create(ctx context.Context, gen Generation) error
	GetByID(ctx context.Context, id string) (Generation, error)
	// Latest returns the most recently created generation.
	Latest(ctx context.Context) (Generation, error)
}
