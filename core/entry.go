package core

import "strings"

// Stored entries embed their record's content hash in an HTML
// comment so a later run can decide SKIP/WRITE without re-reading
// and re-parsing the whole document semantics. Files written before
// the marker existed are compared by text with the volatile
// scrape-time lines removed.
const (
	hashMarkerPrefix = "<!-- relscribe:content-hash "
	hashMarkerSuffix = " -->"
)

// HashMarker formats the embeddable marker line for a content hash.
func HashMarker(hash string) string {
	return hashMarkerPrefix + hash + hashMarkerSuffix
}

// ExtractHash returns the content hash embedded in rendered text.
// ok is false when no marker is present.
func ExtractHash(text string) (hash string, ok bool) {
	i := strings.Index(text, hashMarkerPrefix)
	if i < 0 {
		return "", false
	}
	rest := text[i+len(hashMarkerPrefix):]
	j := strings.Index(rest, hashMarkerSuffix)
	if j < 0 {
		return "", false
	}
	hash = strings.TrimSpace(rest[:j])
	if hash == "" {
		return "", false
	}
	return hash, true
}

// StripVolatile removes the scrape-time lines and the hash marker
// from rendered text, so two renderings of identical content compare
// equal regardless of when they ran.
func StripVolatile(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "**Scraped**:"):
		case strings.HasPrefix(trimmed, "*Scraped from "):
		case strings.HasPrefix(trimmed, hashMarkerPrefix):
		default:
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
