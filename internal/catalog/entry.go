package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

// Domain errors
var (
	// ErrNoEntries is returned when a non-empty document yields zero
	// playable entries.
	ErrNoEntries = errors.New("no valid entries found in playlist")
	// ErrSourceNotFound is returned when a playlist source does not exist.
	ErrSourceNotFound = errors.New("playlist source not found")
	// ErrEmptySourceName is returned when renaming a source to an empty name.
	ErrEmptySourceName = errors.New("source name cannot be empty")
	// ErrInvalidEntry is returned for entries missing id, name or url.
	ErrInvalidEntry = errors.New("entry must have id, name and url")
)

// HistoryLimit caps the watch history at the most recent entries.
const HistoryLimit = 50

// ContentType classifies what kind of content an entry is.
type ContentType string

// Content type constants cover the three kinds of playable content
const (
	ContentLive   ContentType = "live"
	ContentMovie  ContentType = "movie"
	ContentSeries ContentType = "series"
)

// Quality tier constants, from highest to lowest. QualityAuto is the
// fallback when no tier token is found in the entry name or URL.
const (
	Quality4K    = "4K"
	Quality1080p = "1080p"
	Quality720p  = "720p"
	Quality480p  = "480p"
	Quality360p  = "360p"
	Quality240p  = "240p"
	QualityAuto  = "Auto"
)

// OriginKind identifies how a playlist source entered the catalog.
type OriginKind string

// Origin kind constants
const (
	OriginFile OriginKind = "file"
	OriginURL  OriginKind = "url"
)

// Entry is one classified, playable unit produced by ingestion.
// Name and URL are always non-empty; Category, ContentType and Quality
// are always populated because every classifier has a fallback value.
type Entry struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	URL         string      `json:"url"`
	Category    string      `json:"category"`
	ContentType ContentType `json:"type"`
	IsLive      bool        `json:"is_live"`
	Quality     string      `json:"quality"`
	Logo        string      `json:"logo,omitempty"`
	Poster      string      `json:"poster,omitempty"`
	TVGID       string      `json:"tvg_id,omitempty"`
	TVGName     string      `json:"tvg_name,omitempty"`
	Country     string      `json:"country,omitempty"`
	Language    string      `json:"language,omitempty"`
	IsRadio     bool        `json:"is_radio,omitempty"`
	Duration    float64     `json:"duration"`
}

// Source is a named, timestamped collection of entries from one
// ingestion event (file upload or remote URL).
type Source struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	CreatedAt     time.Time  `json:"created_at"`
	OriginKind    OriginKind `json:"origin_kind"`
	OriginLocator string     `json:"origin_locator,omitempty"`
	Entries       []Entry    `json:"entries"`
}

// entryID derives a stable identifier from the entry's name, URL and
// position within the document. Identical input always produces the
// same ids, so downstream layers can compare entries across parses.
func entryID(name, url string, position int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s\x00%s\x00%d", name, url, position)))
	return hex.EncodeToString(sum[:8])
}
