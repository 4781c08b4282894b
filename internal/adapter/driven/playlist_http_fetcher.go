package driven

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/alorle/iptv-catalog/cache"
)

// PlaylistHTTPFetcher retrieves remote playlist documents over HTTP
// with a cache-first strategy: fresh cache is served immediately, an
// expired cache triggers a refetch, and stale cache is the fallback
// when the upstream is unreachable.
type PlaylistHTTPFetcher struct {
	client  *http.Client
	storage cache.Storage
	ttl     time.Duration
	logger  *slog.Logger
}

// NewPlaylistHTTPFetcher creates a fetcher with the given timeout and
// cache configuration.
func NewPlaylistHTTPFetcher(timeout time.Duration, storage cache.Storage, ttl time.Duration, logger *slog.Logger) *PlaylistHTTPFetcher {
	return &PlaylistHTTPFetcher{
		client:  &http.Client{Timeout: timeout},
		storage: storage,
		ttl:     ttl,
		logger:  logger,
	}
}

// Fetch downloads the playlist document at url, serving from cache
// when fresh and falling back to stale cache on upstream failure.
func (f *PlaylistHTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	entry, cacheErr := f.storage.Get(url)
	if cacheErr == nil {
		expired, expErr := f.storage.IsExpired(url, f.ttl)
		if expErr != nil {
			f.logger.Warn("cache expiration check failed", "url", url, "error", expErr)
			// Treat as expired and refetch.
		} else if !expired {
			f.logger.Info("serving fresh cache", "url", url, "cached_at", entry.Timestamp)
			return entry.Content, nil
		}
	}

	content, fetchErr := f.fetchFromURL(ctx, url)
	if fetchErr == nil {
		if setErr := f.storage.Set(url, content); setErr != nil {
			f.logger.Warn("failed to update cache", "url", url, "error", setErr)
		}
		return content, nil
	}

	if cacheErr != nil {
		return nil, fmt.Errorf("upstream fetch failed and no cache available: %w", fetchErr)
	}

	f.logger.Warn("serving stale cache after fetch failure",
		"url", url, "cached_at", entry.Timestamp, "error", fetchErr)
	return entry.Content, nil
}

func (f *PlaylistHTTPFetcher) fetchFromURL(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			f.logger.Warn("failed to close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP request returned status %d: %s", resp.StatusCode, resp.Status)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return content, nil
}
