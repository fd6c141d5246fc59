package normalize

import (
	"bytes"
	"regexp"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"

	"github.com/pranav-iyer/relscribe/core"
)

const vscodeProjectName = "Visual Studio Code"

var (
	// Update pages title themselves like "May 2025 (version 1.101)".
	versionInHeading = regexp.MustCompile(`(?i)version (\d+\.\d+)`)
	releaseDateLine  = regexp.MustCompile(`(?i)release date:\s*(.+)`)
	plainVersion     = regexp.MustCompile(`^\d+\.\d+$`)
)

// fromVSCodePage normalizes one code.visualstudio.com/updates page.
// Sections follow the page's h2 boundaries; each section body is
// converted to markdown.
func fromVSCodePage(raw *core.RawDocument) (*core.ReleaseRecord, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw.HTML))
	if err != nil {
		return nil, &core.MalformedSourceError{Reason: "unparsable html: " + err.Error()}
	}

	version := versionFromHeadings(doc)
	if version == "" {
		if v := core.CanonicalVersion(raw.Identifier); plainVersion.MatchString(v) {
			version = v
		}
	}
	if version == "" {
		return nil, &core.MalformedSourceError{Reason: "cannot determine version from page"}
	}

	rec := &core.ReleaseRecord{
		ProjectName: vscodeProjectName,
		Version:     version,
		ReleaseDate: releaseDateFromPage(doc),
		Sections:    htmlSections(doc),
	}
	rec.DownloadLinks = downloadLinksFromDoc(doc)

	bodies := make([]string, 0, len(rec.Sections))
	for _, s := range rec.Sections {
		bodies = append(bodies, s.Body)
	}
	rec.Contributors = contributorSet("", bodies...)
	return rec, nil
}

// versionFromHeadings scans the page headings for a version number.
func versionFromHeadings(doc *goquery.Document) string {
	var version string
	doc.Find("h1, h2, h3").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if m := versionInHeading.FindStringSubmatch(h.Text()); m != nil {
			version = m[1]
			return false
		}
		return true
	})
	return version
}

// releaseDateFromPage looks for a "Release date:" note in the main
// heading or a nearby paragraph.
func releaseDateFromPage(doc *goquery.Document) *time.Time {
	var text string
	if m := releaseDateLine.FindStringSubmatch(doc.Find("h1, h2").First().Text()); m != nil {
		text = m[1]
	} else {
		doc.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
			if m := releaseDateLine.FindStringSubmatch(p.Text()); m != nil {
				text = m[1]
				return false
			}
			return true
		})
	}
	return parseLooseDate(text)
}

// htmlSections partitions the page at its h2 elements. Each
// section's sibling content up to the next h2 becomes its markdown
// body; empty sections are dropped and duplicate headings merge.
func htmlSections(doc *goquery.Document) []core.Section {
	var sections []core.Section
	index := map[string]int{}

	doc.Find("h2").Each(func(_ int, h2 *goquery.Selection) {
		heading := strings.TrimSpace(h2.Text())
		if heading == "" {
			return
		}
		var parts []string
		h2.NextUntil("h2").Each(func(_ int, s *goquery.Selection) {
			if html, err := goquery.OuterHtml(s); err == nil {
				parts = append(parts, html)
			}
		})
		md, err := htmltomarkdown.ConvertString(strings.Join(parts, "\n"))
		if err != nil {
			return
		}
		md = strings.TrimSpace(md)
		if md == "" {
			return
		}
		if i, ok := index[heading]; ok {
			sections[i].Body += "\n\n" + md
			return
		}
		index[heading] = len(sections)
		sections = append(sections, core.Section{Heading: heading, Body: md})
	})
	return sections
}
