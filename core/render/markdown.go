// Package render produces the canonical markdown for a release
// record. Rendering is deterministic: the same record always yields
// byte-identical text, which is what makes the resolver's content
// comparison meaningful.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pranav-iyer/relscribe/core"
)

const (
	timeLayout = "2006-01-02 15:04:05"
	dateLayout = "2006-01-02"
)

// Document renders a record. Fixed order: title line, metadata
// block, content-hash marker, sections in source order, downloads,
// contributors, provenance footer. Absent optional fields are
// omitted entirely.
func Document(rec *core.ReleaseRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s - %s\n\n", rec.ProjectName, rec.Version)

	if rec.ReleaseDate != nil {
		fmt.Fprintf(&b, "**Release Date**: %s\n", rec.ReleaseDate.UTC().Format(dateLayout))
	}
	fmt.Fprintf(&b, "**Source**: %s\n", rec.OriginURL)
	fmt.Fprintf(&b, "**Scraped**: %s\n\n", rec.ScrapedAt.UTC().Format(timeLayout))

	fmt.Fprintf(&b, "%s\n\n", core.HashMarker(rec.ContentHash()))

	for _, s := range rec.Sections {
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", s.Heading, strings.TrimSpace(s.Body))
	}

	if len(rec.DownloadLinks) > 0 {
		b.WriteString("## Downloads\n\n")
		links := append([]core.DownloadLink(nil), rec.DownloadLinks...)
		sort.Slice(links, func(i, j int) bool { return links[i].URL < links[j].URL })
		for _, l := range links {
			fmt.Fprintf(&b, "- [%s](%s)\n", l.Label, l.URL)
		}
		b.WriteString("\n")
	}

	if len(rec.Contributors) > 0 {
		b.WriteString("## Contributors\n\n")
		handles := append([]string(nil), rec.Contributors...)
		sort.Strings(handles)
		for _, h := range handles {
			fmt.Fprintf(&b, "- @%s\n", h)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "---\n*Scraped from %s on %s*\n",
		rec.OriginURL, rec.ScrapedAt.UTC().Format(timeLayout))
	return b.String()
}
