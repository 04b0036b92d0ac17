package generation

import (
	"strings"
)

const (
	videoIDLength = 11
	embedPrefix   = "https://www.youtube.com/embed/"
)

func isVideoID(s string) bool {
	if len(s) != videoIDLength {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

// idMarkers are checked in order; the id runs from the marker to the first
// query, fragment or path delimiter.
var idMarkers = []string{"/embed/", "watch?v=", "youtu.be/", "/v/"}

// ExtractVideoID returns the 11-character YouTube video id carried by raw, or
// "" when raw is a playlist, a short, or not a recognizable video reference.
func ExtractVideoID(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.Contains(raw, "playlist?list=") || strings.Contains(raw, "/shorts/") {
		return ""
	}
	if isVideoID(raw) {
		return raw
	}

	for _, marker := range idMarkers {
		_, rest, ok := strings.Cut(raw, marker)
		if !ok {
			continue
		}
		if i := strings.IndexAny(rest, "?&#/"); i != -1 {
			rest = rest[:i]
		}
		if isVideoID(rest) {
			return rest
		}
	}

	// Watch pages with v= later in the query string.
	if strings.Contains(raw, "youtube.com/watch") {
		if _, rest, ok := strings.Cut(raw, "&v="); ok {
			if i := strings.IndexAny(rest, "&#"); i != -1 {
				rest = rest[:i]
			}
			if isVideoID(rest) {
				return rest
			}
		}
	}
	return ""
}

// CanonicalEmbedURL converts any recognizable video reference into its
// embeddable form, or returns "".
func CanonicalEmbedURL(raw string) string {
	id := ExtractVideoID(raw)
	if id == "" {
		return ""
	}
	return embedPrefix + id
}
