package memory

import (
	"context"
	"sync"

	"github.com/alorle/iptv-catalog/internal/catalog"
)

// FavoriteRepository is an in-memory implementation of the
// FavoriteRepository port.
type FavoriteRepository struct {
	mu      sync.RWMutex
	entries []catalog.Entry
}

// NewFavoriteRepository creates an empty in-memory favorites repository.
func NewFavoriteRepository() *FavoriteRepository {
	return &FavoriteRepository{}
}

// Add appends an entry to the favorites; duplicates are a no-op.
func (r *FavoriteRepository) Add(ctx context.Context, entry catalog.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entries {
		if e.ID == entry.ID {
			return nil
		}
	}
	r.entries = append(r.entries, entry)
	return nil
}

// Remove deletes a favorite by entry id.
func (r *FavoriteRepository) Remove(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.entries {
		if e.ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

// FindAll retrieves all favorites in insertion order.
func (r *FavoriteRepository) FindAll(ctx context.Context) ([]catalog.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]catalog.Entry, len(r.entries))
	copy(out, r.entries)
	return out, nil
}

// HistoryRepository is an in-memory implementation of the
// HistoryRepository port.
type HistoryRepository struct {
	mu      sync.RWMutex
	entries []catalog.Entry
}

// NewHistoryRepository creates an empty in-memory history repository.
func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{}
}

// Touch moves the entry to the front, dropping earlier occurrences and
// trimming to catalog.HistoryLimit.
func (r *HistoryRepository) Touch(ctx context.Context, entry catalog.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	updated := make([]catalog.Entry, 0, len(r.entries)+1)
	updated = append(updated, entry)
	for _, e := range r.entries {
		if e.ID != entry.ID {
			updated = append(updated, e)
		}
	}

	if len(updated) > catalog.HistoryLimit {
		updated = updated[:catalog.HistoryLimit]
	}

	r.entries = updated
	return nil
}

// FindAll retrieves the history, most recently watched first.
func (r *HistoryRepository) FindAll(ctx context.Context) ([]catalog.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]catalog.Entry, len(r.entries))
	copy(out, r.entries)
	return out, nil
}

// Clear removes the whole history.
func (r *HistoryRepository) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = nil
	return nil
}
