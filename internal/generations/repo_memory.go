package generations

import (
	"context"
	"sync"
)

// MemoryRepo stores generations in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu     sync.RWMutex
	byID   map[string]Generation
	latest string
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Generation)}
}

// Create stores the generation and marks it as the latest.
func (r *MemoryRepo) Create(ctx context.Context, gen Generation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[gen.ID] = gen
	if cur, ok := r.byID[r.latest]; !ok || !gen.CreatedAt.Before(cur.CreatedAt) {
		r.latest = gen.ID
	}
	return nil
}

// GetByID returns a generation by id.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Generation, error) {
	if err := ctx.Err(); err != nil {
		return Generation{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	gen, ok := r.byID[id]
	if !ok {
		return Generation{}, ErrNotFound
	}
	return gen, nil
}

// Latest returns the newest generation.
func (r *MemoryRepo) Latest(ctx context.Context) (Generation, error) {
	if err := ctx.Err(); err != nil {
		return Generation{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	gen, ok := r.byID[r.latest]
	if !ok {
		return Generation{}, ErrNotFound
	}
	return gen, nil
}

var _ Repo = (*MemoryRepo)(nil)
