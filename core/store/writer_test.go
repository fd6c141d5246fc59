package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranav-iyer/relscribe/core"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := New(filepath.Join(t.TempDir(), "releases"))
	require.NoError(t, err)
	return st
}

func TestPathFor_Layouts(t *testing.T) {
	st := newTestStore(t)

	gh, err := st.PathFor(core.KindGitHub, "cli/cli", "2.50.0")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(st.Root, "github", "cli", "cli", "2.50.0.md"), gh)

	// vscode is flat, the project segment is skipped.
	vs, err := st.PathFor(core.KindVSCode, "Visual Studio Code", "1.101")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(st.Root, "vscode", "1.101.md"), vs)

	web, err := st.PathFor(core.KindWeb, "example", "example_32_released")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(st.Root, "web", "example", "example_32_released.md"), web)
}

func TestPathFor_RejectsTraversal(t *testing.T) {
	st := newTestStore(t)

	var pathErr *core.StorePathError
	_, err := st.PathFor(core.KindGitHub, "cli/cli", "../../etc/passwd")
	require.ErrorAs(t, err, &pathErr)

	_, err = st.PathFor(core.KindGitHub, "../evil", "1.0.0")
	require.ErrorAs(t, err, &pathErr)

	_, err = st.PathFor(core.KindGitHub, "cli/cli", `..\..\evil`)
	require.ErrorAs(t, err, &pathErr)
}

func TestPathFor_SanitizesSegments(t *testing.T) {
	st := newTestStore(t)

	p, err := st.PathFor(core.KindGitHub, "cli/cli", `1.0<>:"|?*0`)
	require.NoError(t, err)
	assert.Equal(t, "1.0_0.md", filepath.Base(p))

	// Slashes in a version become underscores, not directories.
	p, err = st.PathFor(core.KindGitHub, "cli/cli", "feature/1.0")
	require.NoError(t, err)
	assert.Equal(t, "feature_1.0.md", filepath.Base(p))
	assert.Equal(t, "cli", filepath.Base(filepath.Dir(p)))
}

func TestWrite_AtomicAndReadable(t *testing.T) {
	st := newTestStore(t)

	path, err := st.PathFor(core.KindGitHub, "cli/cli", "2.50.0")
	require.NoError(t, err)
	require.NoError(t, st.Write(path, "# cli/cli - 2.50.0\n"))

	text, ok, err := st.Read(path)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "# cli/cli - 2.50.0\n", text)

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), "leftover temp file %s", e.Name())
	}
}

func TestWrite_OverwritesExisting(t *testing.T) {
	st := newTestStore(t)

	path, err := st.PathFor(core.KindVSCode, "", "1.101")
	require.NoError(t, err)
	require.NoError(t, st.Write(path, "old"))
	require.NoError(t, st.Write(path, "new"))

	text, ok, err := st.Read(path)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "new", text)
}

func TestRead_Missing(t *testing.T) {
	st := newTestStore(t)

	path, err := st.PathFor(core.KindVSCode, "", "9.99")
	require.NoError(t, err)
	_, ok, err := st.Read(path)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestList_ScopedAndIgnoresStrays(t *testing.T) {
	st := newTestStore(t)

	for _, v := range []string{"1.0.0", "1.1.0"} {
		path, err := st.PathFor(core.KindGitHub, "cli/cli", v)
		require.NoError(t, err)
		require.NoError(t, st.Write(path, "x"))
	}
	other, err := st.PathFor(core.KindGitHub, "other/repo", "2.0.0")
	require.NoError(t, err)
	require.NoError(t, st.Write(other, "x"))

	// A stray temp file from a crashed run is not an entry.
	dir := filepath.Join(st.Root, "github", "cli", "cli")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".relscribe-123.tmp"), []byte("partial"), 0o644))

	versions, err := st.List(core.KindGitHub, "cli/cli")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"1.0.0", "1.1.0"}, versions)
}

func TestList_EmptyScope(t *testing.T) {
	st := newTestStore(t)
	versions, err := st.List(core.KindGitHub, "nobody/nothing")
	require.NoError(t, err)
	assert.Empty(t, versions)
}
