// Package web adapts arbitrary release notes pages to the Source
// contract. The identifier is the page URL itself; only exact
// selection makes sense here.
package web

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/pranav-iyer/relscribe/core"
	"github.com/pranav-iyer/relscribe/sources/fetch"
)

// Adapter fetches a single HTML page.
type Adapter struct {
	client *fetch.Client

	// name overrides the project name derived from the URL host.
	name string
}

var _ core.Source = (*Adapter)(nil)

// New creates an adapter. name may be empty; the page host is used
// then.
func New(client *fetch.Client, name string) *Adapter {
	return &Adapter{client: client, name: name}
}

// Kind returns the source kind constant.
func (a *Adapter) Kind() string { return core.KindWeb }

// Resolve accepts exactly one URL.
func (a *Adapter) Resolve(_ context.Context, sel core.Selector) ([]string, error) {
	if sel.Kind != core.SelectExact {
		return nil, fmt.Errorf("web: only a single --url selection is supported")
	}
	u, err := url.Parse(sel.Exact)
	if err != nil {
		return nil, fmt.Errorf("web: invalid url %q: %w", sel.Exact, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("web: url must be http or https, got %q", sel.Exact)
	}
	return []string{sel.Exact}, nil
}

// Fetch retrieves the page at identifier.
func (a *Adapter) Fetch(ctx context.Context, identifier string) (*core.RawDocument, error) {
	body, err := a.client.Get(ctx, identifier)
	if err != nil {
		return nil, err
	}

	hint := a.name
	if hint == "" {
		if u, err := url.Parse(identifier); err == nil {
			hint = u.Host
		}
	}

	return &core.RawDocument{
		SourceKind:  core.KindWeb,
		Identifier:  identifier,
		HTML:        body,
		OriginURL:   identifier,
		ProjectHint: hint,
		FetchedAt:   time.Now().UTC(),
	}, nil
}
