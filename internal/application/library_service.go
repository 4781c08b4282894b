package application

import (
	"context"

	"github.com/alorle/iptv-catalog/internal/catalog"
	"github.com/alorle/iptv-catalog/internal/port/driven"
)

// LibraryService provides the user collection use cases: favorites
// and watch history.
type LibraryService struct {
	favorites driven.FavoriteRepository
	history   driven.HistoryRepository
}

// NewLibraryService creates a LibraryService with the given
// repositories.
func NewLibraryService(favorites driven.FavoriteRepository, history driven.HistoryRepository) *LibraryService {
	return &LibraryService{
		favorites: favorites,
		history:   history,
	}
}

// AddFavorite marks an entry as a favorite. Adding an entry twice is
// a no-op. Returns catalog.ErrInvalidEntry for entries missing id,
// name or url.
func (s *LibraryService) AddFavorite(ctx context.Context, entry catalog.Entry) error {
	if entry.ID == "" || entry.Name == "" || entry.URL == "" {
		return catalog.ErrInvalidEntry
	}
	return s.favorites.Add(ctx, entry)
}

// RemoveFavorite unmarks a favorite by entry id.
func (s *LibraryService) RemoveFavorite(ctx context.Context, id string) error {
	return s.favorites.Remove(ctx, id)
}

// Favorites retrieves all favorites in the order they were added.
func (s *LibraryService) Favorites(ctx context.Context) ([]catalog.Entry, error) {
	return s.favorites.FindAll(ctx)
}

// TouchHistory records that an entry was watched, moving it to the
// front of the history. Returns catalog.ErrInvalidEntry for entries
// missing id, name or url.
func (s *LibraryService) TouchHistory(ctx context.Context, entry catalog.Entry) error {
	if entry.ID == "" || entry.Name == "" || entry.URL == "" {
		return catalog.ErrInvalidEntry
	}
	return s.history.Touch(ctx, entry)
}

// History retrieves the watch history, most recently watched first.
func (s *LibraryService) History(ctx context.Context) ([]catalog.Entry, error) {
	return s.history.FindAll(ctx)
}

// ClearHistory removes the whole watch history.
func (s *LibraryService) ClearHistory(ctx context.Context) error {
	return s.history.Clear(ctx)
}
