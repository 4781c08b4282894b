package driven

import "context"

// PlaylistFetcher retrieves a remote playlist document. The engine
// itself never touches the network; fetching is the ingestion
// caller's responsibility, including timeout and fallback policy.
type PlaylistFetcher interface {
	// Fetch downloads the document at url and returns its raw text.
	// A non-success upstream response is returned as an error carrying
	// the underlying status.
	Fetch(ctx context.Context, url string) ([]byte, error)
}
