package catalog

import (
	"regexp"
	"strings"
)

var (
	yearPattern          = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	seasonEpisodePattern = regexp.MustCompile(`s\d+e\d+`)
	seasonTokenPattern   = regexp.MustCompile(`\bs\d+\b`)
)

// contentRule pairs a predicate with the content type it yields.
type contentRule struct {
	matches func(name, category string) bool
	result  ContentType
}

// contentRules are evaluated in order and the first match wins. Movie
// rules come before series rules, so a name carrying both a year and a
// season token resolves to movie. The order must not change: it is
// what makes classification reproducible.
var contentRules = []contentRule{
	{
		matches: func(name, category string) bool {
			return containsAny(category, "movie", "film", "cinema", "vod") ||
				strings.Contains(name, "movie") ||
				yearPattern.MatchString(name) ||
				containsAny(name, "bluray", "dvdrip")
		},
		result: ContentMovie,
	},
	{
		matches: func(name, category string) bool {
			return containsAny(category, "series", "show", "drama", "episode") ||
				containsAny(name, "season", "episode", "s0", "ep.") ||
				seasonEpisodePattern.MatchString(name) ||
				seasonTokenPattern.MatchString(name)
		},
		result: ContentSeries,
	},
}

// ClassifyContent determines whether an entry is a movie, a series
// episode or a live channel from its name and its explicit category
// (empty when the playlist carried no group-title).
func ClassifyContent(name, category string) ContentType {
	name = strings.ToLower(name)
	category = strings.ToLower(category)

	for _, rule := range contentRules {
		if rule.matches(name, category) {
			return rule.result
		}
	}
	return ContentLive
}

// categoryBucket pairs a taxonomy label with the tokens that map to it.
type categoryBucket struct {
	label  string
	tokens []string
}

// categoryBuckets are tested in order; a name matching several buckets
// resolves to the first one. Token lists mix genre words with
// well-known broadcaster names.
var categoryBuckets = []categoryBucket{
	{"News", []string{"news", "cnn", "bbc", "fox", "msnbc", "sky news", "al jazeera"}},
	{"Sports", []string{"sport", "espn", "football", "soccer", "basketball", "tennis", "golf", "baseball", "hockey", "olympics"}},
	{"Kids", []string{"kids", "cartoon", "disney", "nick", "children", "baby", "junior"}},
	{"Movies", []string{"movie", "cinema", "film", "hollywood", "bollywood"}},
	{"Music", []string{"music", "mtv", "radio", "hits", "top 40", "rock", "pop", "jazz"}},
	{"Documentary", []string{"discovery", "national geographic", "history", "documentary", "nature", "science", "animal planet"}},
	{"Adult", []string{"xxx", "adult", "18+"}},
}

// DefaultCategory is the bucket for names that match no keyword list.
const DefaultCategory = "Entertainment"

// InferCategory maps an entry name to a taxonomy bucket. It is only
// consulted when the playlist carries no explicit group-title.
func InferCategory(name string) string {
	name = strings.ToLower(name)

	for _, bucket := range categoryBuckets {
		if containsAny(name, bucket.tokens...) {
			return bucket.label
		}
	}
	return DefaultCategory
}

// liveMarkers are URL fragments that indicate a live stream: playlist
// and transport-segment extensions plus streaming protocol schemes.
var liveMarkers = []string{".m3u8", ".ts", "live", "stream", "rtmp", "rtsp", "udp://", "rtp://"}

// IsLiveURL reports whether the URL looks like a live stream locator.
// Evaluated purely on the URL: a movie-classified entry served over
// HLS still gets IsLive=true.
func IsLiveURL(url string) bool {
	return containsAny(url, liveMarkers...)
}

// qualityGroup pairs a quality tier with the tokens that indicate it.
type qualityGroup struct {
	tier   string
	tokens []string
}

// qualityGroups are tested from highest tier to lowest and the first
// match wins, so a name containing both "4k" and "hd" resolves to 4K.
var qualityGroups = []qualityGroup{
	{Quality4K, []string{"4k", "2160p", "uhd"}},
	{Quality1080p, []string{"1080p", "fhd", "fullhd"}},
	{Quality720p, []string{"720p", "hd"}},
	{Quality480p, []string{"480p", "sd"}},
	{Quality360p, []string{"360p"}},
	{Quality240p, []string{"240p"}},
}

// ExtractQuality finds the quality tier from tokens in the entry name
// and URL combined.
func ExtractQuality(name, url string) string {
	combined := strings.ToLower(name + " " + url)

	for _, group := range qualityGroups {
		if containsAny(combined, group.tokens...) {
			return group.tier
		}
	}
	return QualityAuto
}

func containsAny(s string, tokens ...string) bool {
	for _, token := range tokens {
		if strings.Contains(s, token) {
			return true
		}
	}
	return false
}
