package core

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"time"
	"unicode"
)

// Section is one heading-delimited block of release content.
// Headings are unique within a record and keep their source order.
type Section struct {
	Heading string
	Body    string
}

// DownloadLink points at a release artifact. URLs are unique within
// a record.
type DownloadLink struct {
	Label string
	URL   string
}

// ReleaseRecord is the canonical normalized release.
// (SourceKind, ProjectName, Version) uniquely identifies a record;
// the triple is both the dedup key and the file-path key.
type ReleaseRecord struct {
	SourceKind    string
	ProjectName   string
	Version       string
	ReleaseDate   *time.Time
	Sections      []Section
	DownloadLinks []DownloadLink
	Contributors  []string
	OriginURL     string
	ScrapedAt     time.Time
}

// ContentHash returns a hex sha256 over the content-bearing fields.
// ScrapedAt is excluded so re-scraping unchanged upstream content
// always produces the same hash. Links and contributors are hashed
// in sorted order; their source order carries no meaning.
func (r *ReleaseRecord) ContentHash() string {
	h := sha256.New()
	write := func(parts ...string) {
		for _, p := range parts {
			h.Write([]byte(p))
			h.Write([]byte{0})
		}
	}

	write(r.SourceKind, r.ProjectName, r.Version, r.OriginURL)
	if r.ReleaseDate != nil {
		write(r.ReleaseDate.UTC().Format("2006-01-02"))
	}
	for _, s := range r.Sections {
		write(s.Heading, s.Body)
	}

	links := append([]DownloadLink(nil), r.DownloadLinks...)
	sort.Slice(links, func(i, j int) bool { return links[i].URL < links[j].URL })
	for _, l := range links {
		write(l.Label, l.URL)
	}

	handles := append([]string(nil), r.Contributors...)
	sort.Strings(handles)
	write(handles...)

	return hex.EncodeToString(h.Sum(nil))
}

// CanonicalVersion strips adapter-specific decoration from a version
// string so the dedup key is stable across adapters that format
// differently: "v1.101.0", "V1.101.0" and " 1.101.0 " all
// canonicalize to "1.101.0".
func CanonicalVersion(raw string) string {
	v := strings.TrimSpace(raw)
	v = strings.Trim(v, "/-_")
	if len(v) >= 2 && (v[0] == 'v' || v[0] == 'V') && unicode.IsDigit(rune(v[1])) {
		v = v[1:]
	}
	return v
}
