package resolve

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranav-iyer/relscribe/core"
	"github.com/pranav-iyer/relscribe/core/render"
	"github.com/pranav-iyer/relscribe/core/store"
)

func testRecord(version string) *core.ReleaseRecord {
	date := time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)
	return &core.ReleaseRecord{
		SourceKind:  core.KindGitHub,
		ProjectName: "cli/cli",
		Version:     version,
		ReleaseDate: &date,
		Sections:    []core.Section{{Heading: "Overview", Body: "Fixes."}},
		OriginURL:   "https://github.com/cli/cli/releases/tag/v" + version,
		ScrapedAt:   time.Date(2025, 6, 13, 10, 0, 0, 0, time.UTC),
	}
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.New(filepath.Join(t.TempDir(), "releases"))
	require.NoError(t, err)
	return st
}

func TestDecide_NewVersion(t *testing.T) {
	st := newTestStore(t)
	r, err := New(st, core.KindGitHub, "cli/cli")
	require.NoError(t, err)

	rec := testRecord("2.50.0")
	action, path, err := r.Decide(rec, render.Document(rec))
	require.NoError(t, err)
	assert.Equal(t, Write, action)
	assert.Equal(t, "2.50.0.md", filepath.Base(path))
}

func TestDecide_UnchangedContentSkips(t *testing.T) {
	st := newTestStore(t)

	rec := testRecord("2.50.0")
	text := render.Document(rec)
	path, err := st.PathFor(rec.SourceKind, rec.ProjectName, rec.Version)
	require.NoError(t, err)
	require.NoError(t, st.Write(path, text))

	// A later run re-scrapes the same content at a different time.
	r, err := New(st, core.KindGitHub, "cli/cli")
	require.NoError(t, err)
	rescraped := testRecord("2.50.0")
	rescraped.ScrapedAt = rescraped.ScrapedAt.Add(72 * time.Hour)

	action, _, err := r.Decide(rescraped, render.Document(rescraped))
	require.NoError(t, err)
	assert.Equal(t, Skip, action)
}

func TestDecide_EditedContentWrites(t *testing.T) {
	st := newTestStore(t)

	rec := testRecord("2.50.0")
	path, err := st.PathFor(rec.SourceKind, rec.ProjectName, rec.Version)
	require.NoError(t, err)
	require.NoError(t, st.Write(path, render.Document(rec)))

	r, err := New(st, core.KindGitHub, "cli/cli")
	require.NoError(t, err)

	edited := testRecord("2.50.0")
	edited.Sections[0].Body = "Fixes, and a retracted CVE note."

	action, _, err := r.Decide(edited, render.Document(edited))
	require.NoError(t, err)
	assert.Equal(t, Write, action)
}

func TestDecide_LegacyEntryWithoutMarker(t *testing.T) {
	st := newTestStore(t)

	rec := testRecord("2.50.0")
	path, err := st.PathFor(rec.SourceKind, rec.ProjectName, rec.Version)
	require.NoError(t, err)

	// Simulate an entry written before the hash marker existed: same
	// content, no marker line, older scrape time.
	legacy := core.StripVolatile(render.Document(rec))
	require.NoError(t, st.Write(path, legacy))

	r, err := New(st, core.KindGitHub, "cli/cli")
	require.NoError(t, err)

	action, _, err := r.Decide(rec, render.Document(rec))
	require.NoError(t, err)
	assert.Equal(t, Skip, action)
}

func TestDecide_TraversalVersionFails(t *testing.T) {
	st := newTestStore(t)
	r, err := New(st, core.KindGitHub, "cli/cli")
	require.NoError(t, err)

	rec := testRecord("../../escape")
	var pathErr *core.StorePathError
	_, _, err = r.Decide(rec, "")
	require.ErrorAs(t, err, &pathErr)
}
