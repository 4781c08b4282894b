package memory

import (
	"context"
	"sync"

	"github.com/alorle/iptv-catalog/internal/catalog"
)

// SourceRepository is an in-memory implementation of the
// SourceRepository port, used in tests and for ephemeral deployments.
type SourceRepository struct {
	mu      sync.RWMutex
	sources []catalog.Source
}

// NewSourceRepository creates an empty in-memory source repository.
func NewSourceRepository() *SourceRepository {
	return &SourceRepository{}
}

// Save persists a playlist source in memory.
func (r *SourceRepository) Save(ctx context.Context, src catalog.Source) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.sources {
		if s.ID == src.ID {
			r.sources[i] = src
			return nil
		}
	}
	r.sources = append(r.sources, src)
	return nil
}

// FindByID retrieves a source by its id.
func (r *SourceRepository) FindByID(ctx context.Context, id string) (catalog.Source, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Source{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.sources {
		if s.ID == id {
			return s, nil
		}
	}
	return catalog.Source{}, catalog.ErrSourceNotFound
}

// FindAll retrieves all sources in insertion order.
func (r *SourceRepository) FindAll(ctx context.Context) ([]catalog.Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]catalog.Source, len(r.sources))
	copy(out, r.sources)
	return out, nil
}

// Rename changes a source's display name.
func (r *SourceRepository) Rename(ctx context.Context, id, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.sources {
		if s.ID == id {
			r.sources[i].Name = name
			return nil
		}
	}
	return catalog.ErrSourceNotFound
}

// Delete removes a source by its id.
func (r *SourceRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.sources {
		if s.ID == id {
			r.sources = append(r.sources[:i], r.sources[i+1:]...)
			return nil
		}
	}
	return catalog.ErrSourceNotFound
}

// Ping always succeeds for the in-memory repository.
func (r *SourceRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}
