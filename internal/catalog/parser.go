package catalog

import (
	"strconv"
	"strings"
)

const (
	headerPrefix  = "#EXTM3U"
	extinfPrefix  = "#EXTINF:"
	commentPrefix = "#"
)

// Parse turns the raw contents of an M3U playlist document into an
// ordered list of catalog entries. Playlists in the wild are rarely
// well-formed, so malformed directives and metadata blocks without a
// URL are silently skipped instead of failing the whole parse. The
// result may be empty; Parse itself never errors.
func Parse(content string) []Entry {
	var entries []Entry
	var pending *Entry

	for _, line := range scanLines(content) {
		if strings.HasPrefix(line, extinfPrefix) {
			// A new directive discards any unterminated metadata.
			pending = parseExtinf(strings.TrimPrefix(line, extinfPrefix))
			continue
		}
		if strings.HasPrefix(line, commentPrefix) {
			// Header, #EXTVLCOPT and friends.
			continue
		}
		if pending == nil {
			continue
		}

		pending.URL = line
		pending.IsLive = IsLiveURL(line)
		pending.Quality = ExtractQuality(pending.Name, line)
		pending.ID = entryID(pending.Name, line, len(entries))
		entries = append(entries, *pending)
		pending = nil
	}

	return entries
}

// scanLines normalizes raw text into trimmed, non-empty lines.
// Handles both \n and \r\n endings.
func scanLines(content string) []string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// parseExtinf parses the content of an #EXTINF directive after the
// prefix: an attribute segment up to the first comma, then the display
// name (which may itself contain commas). Returns nil for directives
// that carry no usable name.
func parseExtinf(info string) *Entry {
	attrSegment, name, ok := strings.Cut(info, ",")
	if !ok {
		return nil
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	entry := &Entry{
		Name:     name,
		Duration: parseDuration(attrSegment),
	}

	for key, value := range parseAttributes(attrSegment) {
		switch key {
		case "tvg-logo":
			entry.Logo = value
			entry.Poster = value
		case "group-title":
			entry.Category = value
		case "tvg-name":
			entry.TVGName = value
		case "tvg-id":
			entry.TVGID = value
		case "radio":
			entry.IsRadio = value == "true"
		case "tvg-country":
			entry.Country = value
		case "tvg-language":
			entry.Language = value
		}
	}

	entry.ContentType = ClassifyContent(entry.Name, entry.Category)
	if entry.Category == "" {
		entry.Category = InferCategory(entry.Name)
	}

	return entry
}

// parseDuration reads the duration field that leads the attribute
// segment. Live entries conventionally carry -1; anything unparseable
// is treated the same way.
func parseDuration(attrSegment string) float64 {
	fields := strings.Fields(attrSegment)
	if len(fields) == 0 {
		return -1
	}
	d, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return -1
	}
	return d
}

// parseAttributes tokenizes identifier="value" pairs out of the
// attribute segment. Identifiers may contain internal hyphens; keys
// are lowercased. The format has no escape syntax, so a quote always
// terminates the value. Unterminated values are dropped.
func parseAttributes(segment string) map[string]string {
	attrs := make(map[string]string)

	for i := 0; i < len(segment); {
		if !isWordByte(segment[i]) {
			i++
			continue
		}

		start := i
		for i < len(segment) && (isWordByte(segment[i]) || segment[i] == '-') {
			i++
		}
		ident := segment[start:i]

		// The identifier must be followed directly by ="..." to count.
		if i+1 >= len(segment) || segment[i] != '=' || segment[i+1] != '"' {
			continue
		}
		i += 2

		valueStart := i
		for i < len(segment) && segment[i] != '"' {
			i++
		}
		if i >= len(segment) {
			break
		}
		attrs[strings.ToLower(ident)] = segment[valueStart:i]
		i++
	}

	return attrs
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '_'
}
