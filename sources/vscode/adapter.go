// Package vscode adapts the VS Code release notes site to the Source
// contract. Identifiers are "major.minor" versions; each maps to a
// page at {base}/v{major}_{minor}.
package vscode

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pranav-iyer/relscribe/core"
	"github.com/pranav-iyer/relscribe/sources/fetch"
)

// DefaultBaseURL is the canonical release notes index.
const DefaultBaseURL = "https://code.visualstudio.com/updates/"

var (
	versionShape = regexp.MustCompile(`^\d+\.\d+$`)
	updateHref   = regexp.MustCompile(`/updates/v(\d+)_(\d+)`)
)

// Adapter fetches VS Code release notes pages.
type Adapter struct {
	client  *fetch.Client
	baseURL string
}

var _ core.Source = (*Adapter)(nil)

// New creates an adapter. baseURL falls back to DefaultBaseURL when
// empty.
func New(client *fetch.Client, baseURL string) *Adapter {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Adapter{client: client, baseURL: baseURL}
}

// Kind returns the source kind constant.
func (a *Adapter) Kind() string { return core.KindVSCode }

// Resolve expands a selector into "major.minor" versions. Latest, all
// and range selections scrape the update index for version links.
func (a *Adapter) Resolve(ctx context.Context, sel core.Selector) ([]string, error) {
	switch sel.Kind {
	case core.SelectExact:
		v := core.CanonicalVersion(sel.Exact)
		if !versionShape.MatchString(v) {
			return nil, fmt.Errorf("vscode: version must look like 1.101, got %q", sel.Exact)
		}
		return []string{v}, nil

	case core.SelectLatest:
		versions, err := a.indexVersions(ctx)
		if err != nil {
			return nil, err
		}
		if len(versions) == 0 {
			return nil, &core.MalformedSourceError{Reason: "no version links found on update index"}
		}
		return versions[:1], nil

	case core.SelectAll:
		return a.indexVersions(ctx)

	case core.SelectRange:
		from, err := parseVersion(sel.From)
		if err != nil {
			return nil, fmt.Errorf("vscode: invalid --from version %q: %w", sel.From, err)
		}
		to, err := parseVersion(sel.To)
		if err != nil {
			return nil, fmt.Errorf("vscode: invalid --to version %q: %w", sel.To, err)
		}
		versions, err := a.indexVersions(ctx)
		if err != nil {
			return nil, err
		}
		var out []string
		for _, v := range versions {
			n, err := parseVersion(v)
			if err != nil {
				continue
			}
			if compareVersions(n, from) >= 0 && compareVersions(n, to) <= 0 {
				out = append(out, v)
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("vscode: unsupported selector")
}

// Fetch retrieves one release notes page.
func (a *Adapter) Fetch(ctx context.Context, identifier string) (*core.RawDocument, error) {
	pageURL := a.pageURL(identifier)
	body, err := a.client.Get(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return &core.RawDocument{
		SourceKind: core.KindVSCode,
		Identifier: identifier,
		HTML:       body,
		OriginURL:  pageURL,
		FetchedAt:  time.Now().UTC(),
	}, nil
}

// pageURL maps "1.101" to {base}v1_101.
func (a *Adapter) pageURL(version string) string {
	return a.baseURL + "v" + strings.ReplaceAll(version, ".", "_")
}

// indexVersions scrapes the update index for version links, newest
// first.
func (a *Adapter) indexVersions(ctx context.Context) ([]string, error) {
	body, err := a.client.Get(ctx, a.baseURL)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &core.MalformedSourceError{Reason: "update index is not parseable HTML: " + err.Error()}
	}

	seen := map[string]bool{}
	var versions [][2]int
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		m := updateHref.FindStringSubmatch(href)
		if m == nil {
			return
		}
		major, _ := strconv.Atoi(m[1])
		minor, _ := strconv.Atoi(m[2])
		key := m[1] + "." + m[2]
		if !seen[key] {
			seen[key] = true
			versions = append(versions, [2]int{major, minor})
		}
	})

	sort.Slice(versions, func(i, j int) bool {
		return compareVersions(versions[i], versions[j]) > 0
	})

	out := make([]string, len(versions))
	for i, v := range versions {
		out[i] = fmt.Sprintf("%d.%d", v[0], v[1])
	}
	return out, nil
}

func parseVersion(s string) ([2]int, error) {
	v := core.CanonicalVersion(s)
	if !versionShape.MatchString(v) {
		return [2]int{}, fmt.Errorf("must look like 1.101")
	}
	major, minor, _ := strings.Cut(v, ".")
	a, _ := strconv.Atoi(major)
	b, _ := strconv.Atoi(minor)
	return [2]int{a, b}, nil
}

func compareVersions(a, b [2]int) int {
	if a[0] != b[0] {
		return a[0] - b[0]
	}
	return a[1] - b[1]
}
