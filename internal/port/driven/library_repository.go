package driven

import (
	"context"

	"github.com/alorle/iptv-catalog/internal/catalog"
)

// FavoriteRepository persists the user's favorite entries in the
// order they were added.
type FavoriteRepository interface {
	// Add appends an entry to the favorites. Adding an entry that is
	// already a favorite is a no-op.
	Add(ctx context.Context, entry catalog.Entry) error

	// Remove deletes a favorite by entry id. Removing an unknown id
	// is a no-op.
	Remove(ctx context.Context, id string) error

	// FindAll retrieves all favorites in insertion order.
	FindAll(ctx context.Context) ([]catalog.Entry, error)
}

// HistoryRepository persists the watch history, most recent first.
type HistoryRepository interface {
	// Touch moves the entry to the front of the history, removing any
	// earlier occurrence, and trims the history to catalog.HistoryLimit.
	Touch(ctx context.Context, entry catalog.Entry) error

	// FindAll retrieves the history, most recently watched first.
	FindAll(ctx context.Context) ([]catalog.Entry, error)

	// Clear removes the whole history.
	Clear(ctx context.Context) error
}
