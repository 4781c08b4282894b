package driven

import (
	"context"

	"github.com/alorle/iptv-catalog/internal/catalog"
)

// SourceRepository defines the interface for playlist source
// persistence. This is a driven port implemented by concrete adapters
// (BoltDB in production, in-memory for tests).
type SourceRepository interface {
	// Save persists a playlist source.
	Save(ctx context.Context, src catalog.Source) error

	// FindByID retrieves a source by its id. Returns
	// catalog.ErrSourceNotFound if the source does not exist.
	FindByID(ctx context.Context, id string) (catalog.Source, error)

	// FindAll retrieves all sources ordered by creation time.
	FindAll(ctx context.Context) ([]catalog.Source, error)

	// Rename changes a source's display name. Returns
	// catalog.ErrSourceNotFound if the source does not exist.
	Rename(ctx context.Context, id, name string) error

	// Delete removes a source by its id. Returns
	// catalog.ErrSourceNotFound if the source does not exist.
	Delete(ctx context.Context, id string) error

	// Ping checks if the repository is accessible and operational.
	Ping(ctx context.Context) error
}
