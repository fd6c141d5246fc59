// Package core defines the data model and stage contracts for the
// relscribe ingestion pipeline. Data flows strictly downward:
// adapter → normalizer → resolver → renderer → writer, and no stage
// depends on a later one.
package core

import (
	"context"
	"time"
)

// Source kinds. The kind selects the adapter, the normalizer branch,
// and the first path segment under the store root.
const (
	KindGitHub = "github"
	KindVSCode = "vscode"
	KindWeb    = "web"
)

// SelectorKind enumerates the ways a run picks identifiers.
type SelectorKind int

const (
	SelectLatest SelectorKind = iota
	SelectExact
	SelectAll
	SelectRange
)

// Selector describes which identifiers one invocation processes.
// From/To hold dates (YYYY-MM-DD) for the GitHub source and versions
// (X.Y) for the VS Code source; the adapter interprets them.
type Selector struct {
	Kind  SelectorKind
	Exact string
	From  string
	To    string
}

// Asset is a downloadable artifact attached to an API release.
type Asset struct {
	Name string
	URL  string
}

// ReleasePayload is the source-agnostic shape of one API release.
// Adapters map their SDK types into this so the normalizer never
// touches an API client.
type ReleasePayload struct {
	TagName     string
	Name        string
	Body        string
	PublishedAt *time.Time
	Author      string
	Assets      []Asset
}

// RawDocument is one fetched document. It lives for a single
// orchestration step. Exactly one of Release or HTML is set,
// depending on the source kind.
type RawDocument struct {
	SourceKind  string
	Identifier  string
	Release     *ReleasePayload
	HTML        []byte
	OriginURL   string
	ProjectHint string
	FetchedAt   time.Time
}

// Source is the capability contract shared by the three adapters.
// Implementations perform network I/O only; they never touch the
// filesystem.
type Source interface {
	// Kind returns the source kind constant.
	Kind() string

	// Resolve expands a selector into the concrete, finite list of
	// identifiers to fetch, in processing order.
	Resolve(ctx context.Context, sel Selector) ([]string, error)

	// Fetch retrieves one identifier.
	Fetch(ctx context.Context, identifier string) (*RawDocument, error)
}
