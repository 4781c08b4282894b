package catalog

import (
	"fmt"
	"io"
	"strings"
)

// Encoder renders catalog entries back into the playlist document
// format. The round trip is approximate: only name, category, url and
// logo survive re-import, carrier-assigned attributes (tvg-id,
// tvg-name, country, language, radio) are not re-emitted.
type Encoder struct {
	entries []Entry
}

// NewEncoder creates an empty Encoder.
func NewEncoder() *Encoder {
	return &Encoder{entries: []Entry{}}
}

// AddEntry appends an entry to the document being built.
func (e *Encoder) AddEntry(entry Entry) {
	e.entries = append(e.entries, entry)
}

// Encode writes the playlist document: a header line followed by one
// metadata directive and one URL line per entry.
func (e *Encoder) Encode(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s\n", headerPrefix); err != nil {
		return err
	}

	for _, entry := range e.entries {
		if err := encodeEntry(w, entry); err != nil {
			return err
		}
	}

	return nil
}

func encodeEntry(w io.Writer, entry Entry) error {
	if _, err := fmt.Fprintf(w, "%s%0.0f", extinfPrefix, entry.Duration); err != nil {
		return err
	}

	if entry.Logo != "" {
		if _, err := fmt.Fprintf(w, " tvg-logo=%q", entry.Logo); err != nil {
			return err
		}
	}

	if entry.Category != "" {
		if _, err := fmt.Fprintf(w, " group-title=%q", entry.Category); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, ",%s\n%s\n", entry.Name, entry.URL); err != nil {
		return err
	}

	return nil
}

// ExportSource renders a playlist source as a document string suitable
// for a file download.
func ExportSource(source Source) string {
	enc := NewEncoder()
	for _, entry := range source.Entries {
		enc.AddEntry(entry)
	}

	var sb strings.Builder
	// strings.Builder never returns a write error.
	_ = enc.Encode(&sb)
	return sb.String()
}
