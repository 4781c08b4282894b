package catalog

import (
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	t.Run("parses a live channel with attributes", func(t *testing.T) {
		input := "#EXTM3U\n" +
			"#EXTINF:-1 tvg-logo=\"http://x/logo.png\" group-title=\"News\",CNN International\n" +
			"https://cnn.example/live/master.m3u8\n"

		entries := Parse(input)
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(entries))
		}

		e := entries[0]
		if e.Name != "CNN International" {
			t.Errorf("expected name 'CNN International', got %q", e.Name)
		}
		if e.URL != "https://cnn.example/live/master.m3u8" {
			t.Errorf("unexpected url %q", e.URL)
		}
		if e.Category != "News" {
			t.Errorf("expected category 'News', got %q", e.Category)
		}
		if e.Logo != "http://x/logo.png" {
			t.Errorf("unexpected logo %q", e.Logo)
		}
		if e.Poster != "http://x/logo.png" {
			t.Errorf("expected poster to mirror logo, got %q", e.Poster)
		}
		if e.ContentType != ContentLive {
			t.Errorf("expected content type live, got %q", e.ContentType)
		}
		if !e.IsLive {
			t.Error("expected IsLive=true for an HLS url")
		}
		if e.Quality != QualityAuto {
			t.Errorf("expected quality Auto, got %q", e.Quality)
		}
		if e.Duration != -1 {
			t.Errorf("expected duration -1, got %v", e.Duration)
		}
		if e.ID == "" {
			t.Error("expected a non-empty id")
		}
	})

	t.Run("classifies a movie by year pattern", func(t *testing.T) {
		input := "#EXTM3U\n" +
			"#EXTINF:-1,Inception (2010)\n" +
			"https://cdn/video.mp4\n"

		entries := Parse(input)
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(entries))
		}

		e := entries[0]
		if e.ContentType != ContentMovie {
			t.Errorf("expected content type movie, got %q", e.ContentType)
		}
		if e.IsLive {
			t.Error("expected IsLive=false for a plain mp4 url")
		}
		if e.Category != DefaultCategory {
			t.Errorf("expected fallback category %q, got %q", DefaultCategory, e.Category)
		}
	})

	t.Run("keeps commas inside the display name", func(t *testing.T) {
		input := "#EXTINF:-1,News, Weather & More\nhttp://example.com/feed\n"

		entries := Parse(input)
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(entries))
		}
		if entries[0].Name != "News, Weather & More" {
			t.Errorf("unexpected name %q", entries[0].Name)
		}
	})

	t.Run("drops metadata not followed by a URL before end of input", func(t *testing.T) {
		input := "#EXTM3U\n#EXTINF:-1,Trailing Channel\n"

		if entries := Parse(input); len(entries) != 0 {
			t.Fatalf("expected 0 entries, got %d", len(entries))
		}
	})

	t.Run("a new directive discards pending metadata", func(t *testing.T) {
		input := "#EXTINF:-1,First\n" +
			"#EXTINF:-1,Second\n" +
			"http://example.com/second\n"

		entries := Parse(input)
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(entries))
		}
		if entries[0].Name != "Second" {
			t.Errorf("expected the second directive to win, got %q", entries[0].Name)
		}
	})

	t.Run("ignores directives with too few comma-separated parts", func(t *testing.T) {
		input := "#EXTINF:-1 tvg-id=\"x\"\nhttp://example.com/orphan\n"

		if entries := Parse(input); len(entries) != 0 {
			t.Fatalf("expected 0 entries, got %d", len(entries))
		}
	})

	t.Run("ignores comment lines between metadata and URL", func(t *testing.T) {
		input := "#EXTINF:-1,Channel\n" +
			"#EXTVLCOPT:network-caching=1000\n" +
			"http://example.com/channel\n"

		entries := Parse(input)
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(entries))
		}
		if entries[0].URL != "http://example.com/channel" {
			t.Errorf("unexpected url %q", entries[0].URL)
		}
	})

	t.Run("handles CRLF line endings and blank lines", func(t *testing.T) {
		input := "#EXTM3U\r\n\r\n#EXTINF:-1,Channel\r\nhttp://example.com/channel\r\n"

		entries := Parse(input)
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(entries))
		}
		if entries[0].URL != "http://example.com/channel" {
			t.Errorf("unexpected url %q", entries[0].URL)
		}
	})

	t.Run("empty input yields no entries", func(t *testing.T) {
		if entries := Parse(""); len(entries) != 0 {
			t.Fatalf("expected 0 entries, got %d", len(entries))
		}
	})

	t.Run("parses a VOD duration", func(t *testing.T) {
		input := "#EXTINF:5400 group-title=\"Movies\",Some Film (1999)\nhttps://cdn/film.mp4\n"

		entries := Parse(input)
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(entries))
		}
		if entries[0].Duration != 5400 {
			t.Errorf("expected duration 5400, got %v", entries[0].Duration)
		}
	})

	t.Run("is deterministic including ids", func(t *testing.T) {
		input := "#EXTM3U\n" +
			"#EXTINF:-1 group-title=\"Sports\",ESPN HD\nhttp://example.com/espn.m3u8\n" +
			"#EXTINF:-1,Inception (2010)\nhttps://cdn/video.mp4\n"

		first := Parse(input)
		second := Parse(input)
		if !reflect.DeepEqual(first, second) {
			t.Error("expected identical results for identical input")
		}
	})

	t.Run("identical name and url at different positions get distinct ids", func(t *testing.T) {
		block := "#EXTINF:-1,Dup\nhttp://example.com/dup.ts\n"
		entries := Parse(block + block)
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
		if entries[0].ID == entries[1].ID {
			t.Error("expected distinct ids for distinct positions")
		}
	})

	t.Run("preserves textual order", func(t *testing.T) {
		input := "#EXTINF:-1,A\nhttp://x/a\n#EXTINF:-1,B\nhttp://x/b\n#EXTINF:-1,C\nhttp://x/c\n"

		entries := Parse(input)
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name
		}
		if strings.Join(names, "") != "ABC" {
			t.Errorf("unexpected order %v", names)
		}
	})
}

func TestParseAttributes(t *testing.T) {
	t.Run("extracts hyphenated identifiers", func(t *testing.T) {
		attrs := parseAttributes(`-1 tvg-id="cnn.us" tvg-name="CNN" group-title="News"`)

		want := map[string]string{
			"tvg-id":      "cnn.us",
			"tvg-name":    "CNN",
			"group-title": "News",
		}
		if !reflect.DeepEqual(attrs, want) {
			t.Errorf("got %v, want %v", attrs, want)
		}
	})

	t.Run("allows empty values", func(t *testing.T) {
		attrs := parseAttributes(`-1 tvg-logo=""`)
		if v, ok := attrs["tvg-logo"]; !ok || v != "" {
			t.Errorf("expected empty tvg-logo, got %v", attrs)
		}
	})

	t.Run("drops unquoted values", func(t *testing.T) {
		attrs := parseAttributes(`-1 radio=true tvg-id="x"`)
		if _, ok := attrs["radio"]; ok {
			t.Error("expected unquoted value to be dropped")
		}
		if attrs["tvg-id"] != "x" {
			t.Errorf("expected tvg-id to survive, got %v", attrs)
		}
	})

	t.Run("drops an unterminated value", func(t *testing.T) {
		attrs := parseAttributes(`-1 tvg-id="x" tvg-name="unterminated`)
		if _, ok := attrs["tvg-name"]; ok {
			t.Error("expected unterminated value to be dropped")
		}
		if attrs["tvg-id"] != "x" {
			t.Errorf("expected tvg-id to survive, got %v", attrs)
		}
	})

	t.Run("no attributes is valid", func(t *testing.T) {
		if attrs := parseAttributes("-1"); len(attrs) != 0 {
			t.Errorf("expected no attributes, got %v", attrs)
		}
	})
}

func TestParseRecognizedAttributes(t *testing.T) {
	input := `#EXTINF:-1 tvg-id="id1" tvg-name="Radio One" tvg-logo="http://x/l.png" group-title="Music" radio="true" tvg-country="UK" tvg-language="English" x-unknown="dropped",Radio One
http://example.com/radio1`

	entries := Parse(input)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	e := entries[0]
	if e.TVGID != "id1" {
		t.Errorf("unexpected tvg id %q", e.TVGID)
	}
	if e.TVGName != "Radio One" {
		t.Errorf("unexpected tvg name %q", e.TVGName)
	}
	if e.Logo != "http://x/l.png" || e.Poster != "http://x/l.png" {
		t.Errorf("unexpected logo %q poster %q", e.Logo, e.Poster)
	}
	if e.Category != "Music" {
		t.Errorf("unexpected category %q", e.Category)
	}
	if !e.IsRadio {
		t.Error("expected IsRadio=true")
	}
	if e.Country != "UK" {
		t.Errorf("unexpected country %q", e.Country)
	}
	if e.Language != "English" {
		t.Errorf("unexpected language %q", e.Language)
	}
}
