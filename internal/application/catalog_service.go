package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alorle/iptv-catalog/internal/catalog"
	"github.com/alorle/iptv-catalog/internal/port/driven"
	"github.com/alorle/iptv-catalog/metrics"
)

// defaultURLSourceName names sources whose URL path yields nothing usable.
const defaultURLSourceName = "URL Playlist"

// ErrFetchFailed marks ingestion failures caused by the upstream
// playlist fetch, so transport errors can be reported distinctly from
// parse and store errors.
var ErrFetchFailed = errors.New("failed to fetch playlist")

// CatalogService provides the ingestion, export and source management
// use cases. It depends only on port interfaces.
type CatalogService struct {
	sources driven.SourceRepository
	fetcher driven.PlaylistFetcher
	logger  *slog.Logger
}

// NewCatalogService creates a CatalogService with the given source
// repository and playlist fetcher.
func NewCatalogService(sources driven.SourceRepository, fetcher driven.PlaylistFetcher, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		sources: sources,
		fetcher: fetcher,
		logger:  logger,
	}
}

// IngestText parses a playlist document and stores the result as a new
// named source. Returns catalog.ErrNoEntries when the document yields
// no playable entries, so the caller can report failure instead of
// silently adding an empty playlist.
func (s *CatalogService) IngestText(ctx context.Context, name, text string, origin catalog.OriginKind, locator string) (catalog.Source, error) {
	entries := catalog.Parse(text)
	if len(entries) == 0 {
		metrics.RecordIngestFailure("no_entries")
		return catalog.Source{}, catalog.ErrNoEntries
	}

	src := catalog.Source{
		ID:            uuid.New().String(),
		Name:          name,
		CreatedAt:     time.Now(),
		OriginKind:    origin,
		OriginLocator: locator,
		Entries:       entries,
	}

	if err := s.sources.Save(ctx, src); err != nil {
		metrics.RecordIngestFailure("store")
		return catalog.Source{}, fmt.Errorf("failed to store playlist source: %w", err)
	}

	metrics.RecordIngest(string(origin))
	for contentType, count := range countByContentType(entries) {
		metrics.RecordEntries(contentType, count)
	}
	s.updateStoredGauge(ctx)

	s.logger.Info("playlist ingested",
		"source", src.Name,
		"origin", src.OriginKind,
		"entries", len(entries),
	)

	return src, nil
}

// IngestURL fetches a remote playlist document and ingests it. The
// source name is derived from the URL path's last segment with the
// extension stripped.
func (s *CatalogService) IngestURL(ctx context.Context, rawURL string) (catalog.Source, error) {
	content, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		metrics.RecordIngestFailure("fetch")
		return catalog.Source{}, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	return s.IngestText(ctx, sourceNameFromURL(rawURL), string(content), catalog.OriginURL, rawURL)
}

// Export renders a stored source back into the playlist document
// format, returning a download filename alongside the document.
func (s *CatalogService) Export(ctx context.Context, id string) (string, string, error) {
	src, err := s.sources.FindByID(ctx, id)
	if err != nil {
		return "", "", err
	}

	metrics.RecordExport()
	return src.Name + ".m3u", catalog.ExportSource(src), nil
}

// ListSources retrieves all stored sources in ingestion order.
func (s *CatalogService) ListSources(ctx context.Context) ([]catalog.Source, error) {
	return s.sources.FindAll(ctx)
}

// GetSource retrieves a single source by id.
func (s *CatalogService) GetSource(ctx context.Context, id string) (catalog.Source, error) {
	return s.sources.FindByID(ctx, id)
}

// RenameSource changes a source's display name.
func (s *CatalogService) RenameSource(ctx context.Context, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return catalog.ErrEmptySourceName
	}
	return s.sources.Rename(ctx, id, name)
}

// DeleteSource removes a source and its entries.
func (s *CatalogService) DeleteSource(ctx context.Context, id string) error {
	if err := s.sources.Delete(ctx, id); err != nil {
		return err
	}
	s.updateStoredGauge(ctx)
	return nil
}

func (s *CatalogService) updateStoredGauge(ctx context.Context) {
	all, err := s.sources.FindAll(ctx)
	if err != nil {
		return
	}
	metrics.SetSourcesStored(len(all))
}

func countByContentType(entries []catalog.Entry) map[string]int {
	counts := make(map[string]int)
	for _, e := range entries {
		counts[string(e.ContentType)]++
	}
	return counts
}

// SourceNameFromFilename derives a source name from an uploaded file
// name by stripping the suffix after the last dot.
func SourceNameFromFilename(filename string) string {
	base := path.Base(filename)
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	if base == "" || base == "." || base == "/" {
		return defaultURLSourceName
	}
	return base
}

// sourceNameFromURL derives a source name from the last segment of the
// URL path, with the extension stripped.
func sourceNameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return defaultURLSourceName
	}
	return SourceNameFromFilename(u.Path)
}
