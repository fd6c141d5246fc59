package normalize

import (
	"bytes"
	"net/url"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/pranav-iyer/relscribe/core"
)

// noiseSelectors are removed before the container-heuristic fallback
// extracts content. They contribute nothing to release notes.
var noiseSelectors = []string{
	"script", "style", "noscript",
	"nav", "footer", "header",
	"iframe", "svg", "canvas",
	"form", "button", "input", "select", "textarea",
	".sidebar", ".menu", ".navigation", ".ads", ".advertisement",
}

var slugStrip = regexp.MustCompile(`[^a-zA-Z0-9 _-]`)

// fromWebPage normalizes an arbitrary HTML page. The "version" of a
// web release is a slug of the page title; the project name is the
// caller-supplied name or the page host.
func fromWebPage(raw *core.RawDocument) (*core.ReleaseRecord, error) {
	pageURL, _ := url.Parse(raw.OriginURL)

	project := raw.ProjectHint
	if project == "" && pageURL != nil {
		project = pageURL.Host
	}
	if project == "" {
		return nil, &core.MalformedSourceError{Reason: "cannot determine project name"}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw.HTML))
	if err != nil {
		return nil, &core.MalformedSourceError{Reason: "unparsable html: " + err.Error()}
	}

	md := ""
	if content := mainContent(raw.HTML, pageURL, doc); content != "" {
		if converted, err := htmltomarkdown.ConvertString(content); err == nil {
			md = converted
		}
	}

	rec := &core.ReleaseRecord{
		ProjectName: project,
		Version:     slugify(pageTitle(doc)),
		ReleaseDate: dateFromText(doc.Text()),
		Sections:    markdownSections(md, "Changes"),
	}
	rec.DownloadLinks = downloadLinksFromDoc(doc)
	rec.Contributors = contributorSet("", md)
	return rec, nil
}

// mainContent isolates the content-bearing HTML fragment. Readability
// does the heavy lifting; pages it cannot handle fall back to a
// container heuristic (main, then article, then body) with noise
// elements removed.
func mainContent(html []byte, pageURL *url.URL, doc *goquery.Document) string {
	if article, err := readability.FromReader(bytes.NewReader(html), pageURL); err == nil {
		if content := strings.TrimSpace(article.Content); content != "" {
			return content
		}
	}

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}
	for _, tag := range []string{"main", "article", "body"} {
		container := doc.Find(tag)
		if container.Length() == 0 {
			continue
		}
		if content, err := goquery.OuterHtml(container.First()); err == nil {
			return content
		}
	}
	return ""
}

// pageTitle prefers the first h1, then the document title.
func pageTitle(doc *goquery.Document) string {
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// slugify turns a page title into a filesystem-friendly version key.
func slugify(title string) string {
	s := slugStrip.ReplaceAllString(title, "")
	s = strings.ToLower(strings.Join(strings.Fields(s), "_"))
	if s == "" {
		return "release"
	}
	return s
}
