package normalize

import (
	"path"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pranav-iyer/relscribe/core"
)

// downloadExtensions marks link targets that look like release
// artifacts. Links to anything else are prose, not downloads.
var downloadExtensions = map[string]bool{
	".zip": true, ".tar": true, ".gz": true, ".tgz": true, ".xz": true,
	".dmg": true, ".pkg": true, ".exe": true, ".msi": true,
	".deb": true, ".rpm": true, ".apk": true, ".appimage": true,
	".jar": true, ".whl": true,
	".sig": true, ".asc": true, ".sha256": true,
}

// markdownLink matches [label](url).
var markdownLink = regexp.MustCompile(`\[([^\]]*)\]\(([^)\s]+)\)`)

// isDownloadURL reports whether a URL's path ends in an artifact
// extension.
func isDownloadURL(rawURL string) bool {
	p := rawURL
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	return downloadExtensions[strings.ToLower(path.Ext(p))]
}

// downloadLinksFromMarkdown collects download-looking links from a
// markdown body.
func downloadLinksFromMarkdown(md string) []core.DownloadLink {
	var links []core.DownloadLink
	for _, m := range markdownLink.FindAllStringSubmatch(md, -1) {
		label, url := strings.TrimSpace(m[1]), m[2]
		if !isDownloadURL(url) {
			continue
		}
		if label == "" {
			label = path.Base(url)
		}
		links = appendLink(links, core.DownloadLink{Label: label, URL: url})
	}
	return links
}

// downloadLinksFromDoc collects download-looking anchors from a
// parsed page.
func downloadLinksFromDoc(doc *goquery.Document) []core.DownloadLink {
	var links []core.DownloadLink
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if !isDownloadURL(href) {
			return
		}
		label := strings.TrimSpace(a.Text())
		if label == "" {
			label = path.Base(href)
		}
		links = appendLink(links, core.DownloadLink{Label: label, URL: href})
	})
	return links
}

// appendLink adds a link unless its URL is already present.
func appendLink(links []core.DownloadLink, l core.DownloadLink) []core.DownloadLink {
	if l.URL == "" {
		return links
	}
	for _, have := range links {
		if have.URL == l.URL {
			return links
		}
	}
	return append(links, l)
}
