// Package resolve decides, per normalized record, whether the store
// already holds this content. Known versions are discovered from the
// store's directory listing when the run starts; the filesystem is
// the single source of truth, so the tool stays correct across
// separate invocations with no persistent index.
package resolve

import (
	"github.com/pranav-iyer/relscribe/core"
	"github.com/pranav-iyer/relscribe/core/store"
)

// Action is the resolver's verdict for one record.
type Action int

const (
	// Skip means the stored entry already carries this content.
	Skip Action = iota
	// Write means the entry is new or its upstream content changed.
	Write
)

// Resolver is scoped to one (sourceKind, projectName) pair for the
// duration of one run.
type Resolver struct {
	store *store.Store
	known map[string]bool
}

// New lists the existing entries for the scope and returns a
// Resolver over them.
func New(st *store.Store, kind, project string) (*Resolver, error) {
	versions, err := st.List(kind, project)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(versions))
	for _, v := range versions {
		known[v] = true
	}
	return &Resolver{store: st, known: known}, nil
}

// Decide compares the record against the store. Content, not
// timestamps, drives the verdict: identical content is Skip (the
// common re-run case converges to zero writes), changed content is
// Write (an upstream edit is still captured).
func (r *Resolver) Decide(rec *core.ReleaseRecord, rendered string) (Action, string, error) {
	path, err := r.store.PathFor(rec.SourceKind, rec.ProjectName, rec.Version)
	if err != nil {
		return Skip, "", err
	}

	if !r.known[store.VersionKey(rec.Version)] {
		return Write, path, nil
	}

	existing, ok, err := r.store.Read(path)
	if err != nil {
		return Skip, "", err
	}
	if !ok {
		return Write, path, nil
	}

	if hash, ok := core.ExtractHash(existing); ok {
		if hash == rec.ContentHash() {
			return Skip, path, nil
		}
		return Write, path, nil
	}

	// Entries written before the hash marker existed: compare text
	// with the scrape-time lines removed.
	if core.StripVolatile(existing) == core.StripVolatile(rendered) {
		return Skip, path, nil
	}
	return Write, path, nil
}
