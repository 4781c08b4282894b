package driven

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alorle/iptv-catalog/cache"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const playlistDoc = "#EXTM3U\n#EXTINF:-1,Channel\nhttp://example.com/channel\n"

func TestPlaylistHTTPFetcher_Fetch(t *testing.T) {
	t.Run("fetches from upstream and caches on miss", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := w.Write([]byte(playlistDoc)); err != nil {
				t.Errorf("failed to write response: %v", err)
			}
		}))
		defer server.Close()

		var cached []byte
		storage := &cache.MockStorage{
			GetFunc: func(key string) (*cache.Entry, error) {
				return nil, errors.New("cache entry not found")
			},
			SetFunc: func(key string, content []byte) error {
				cached = content
				return nil
			},
		}

		fetcher := NewPlaylistHTTPFetcher(5*time.Second, storage, time.Hour, testLogger())

		content, err := fetcher.Fetch(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(content) != playlistDoc {
			t.Errorf("unexpected content %q", content)
		}
		if !bytes.Equal(cached, content) {
			t.Error("expected the fetched document to be cached")
		}
	})

	t.Run("serves fresh cache without hitting upstream", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("upstream should not be contacted when cache is fresh")
		}))
		defer server.Close()

		storage := &cache.MockStorage{
			GetFunc: func(key string) (*cache.Entry, error) {
				return &cache.Entry{Content: []byte(playlistDoc), Timestamp: time.Now()}, nil
			},
			IsExpiredFunc: func(key string, ttl time.Duration) (bool, error) {
				return false, nil
			},
		}

		fetcher := NewPlaylistHTTPFetcher(5*time.Second, storage, time.Hour, testLogger())

		content, err := fetcher.Fetch(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(content) != playlistDoc {
			t.Errorf("unexpected content %q", content)
		}
	})

	t.Run("refetches when cache is expired", func(t *testing.T) {
		fresh := "#EXTM3U\n#EXTINF:-1,Fresh\nhttp://example.com/fresh\n"
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := w.Write([]byte(fresh)); err != nil {
				t.Errorf("failed to write response: %v", err)
			}
		}))
		defer server.Close()

		storage := &cache.MockStorage{
			GetFunc: func(key string) (*cache.Entry, error) {
				return &cache.Entry{Content: []byte(playlistDoc), Timestamp: time.Now().Add(-2 * time.Hour)}, nil
			},
			IsExpiredFunc: func(key string, ttl time.Duration) (bool, error) {
				return true, nil
			},
		}

		fetcher := NewPlaylistHTTPFetcher(5*time.Second, storage, time.Hour, testLogger())

		content, err := fetcher.Fetch(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(content) != fresh {
			t.Errorf("expected refetched content, got %q", content)
		}
	})

	t.Run("serves stale cache when upstream fails", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		storage := &cache.MockStorage{
			GetFunc: func(key string) (*cache.Entry, error) {
				return &cache.Entry{Content: []byte(playlistDoc), Timestamp: time.Now().Add(-2 * time.Hour)}, nil
			},
			IsExpiredFunc: func(key string, ttl time.Duration) (bool, error) {
				return true, nil
			},
		}

		fetcher := NewPlaylistHTTPFetcher(5*time.Second, storage, time.Hour, testLogger())

		content, err := fetcher.Fetch(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("expected stale cache fallback, got error: %v", err)
		}
		if string(content) != playlistDoc {
			t.Errorf("unexpected content %q", content)
		}
	})

	t.Run("fails when upstream fails and no cache exists", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		storage := &cache.MockStorage{
			GetFunc: func(key string) (*cache.Entry, error) {
				return nil, errors.New("cache entry not found")
			},
		}

		fetcher := NewPlaylistHTTPFetcher(5*time.Second, storage, time.Hour, testLogger())

		if _, err := fetcher.Fetch(context.Background(), server.URL); err == nil {
			t.Error("expected an error when upstream fails with an empty cache")
		}
	})

	t.Run("non-200 upstream status is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		storage := &cache.MockStorage{
			GetFunc: func(key string) (*cache.Entry, error) {
				return nil, errors.New("cache entry not found")
			},
		}

		fetcher := NewPlaylistHTTPFetcher(5*time.Second, storage, time.Hour, testLogger())

		if _, err := fetcher.Fetch(context.Background(), server.URL); err == nil {
			t.Error("expected an error for a 403 response")
		}
	})
}
