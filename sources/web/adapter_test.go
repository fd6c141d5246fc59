package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranav-iyer/relscribe/core"
	"github.com/pranav-iyer/relscribe/sources/fetch"
)

func TestResolve_SingleURL(t *testing.T) {
	a := New(fetch.New(0, ""), "")

	ids, err := a.Resolve(context.Background(), core.Selector{
		Kind: core.SelectExact, Exact: "https://example.com/changelog",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/changelog"}, ids)
}

func TestResolve_RejectsNonExactSelectors(t *testing.T) {
	a := New(fetch.New(0, ""), "")

	for _, kind := range []core.SelectorKind{core.SelectLatest, core.SelectAll, core.SelectRange} {
		_, err := a.Resolve(context.Background(), core.Selector{Kind: kind})
		assert.Error(t, err)
	}
}

func TestResolve_RejectsBadSchemes(t *testing.T) {
	a := New(fetch.New(0, ""), "")

	for _, bad := range []string{"ftp://example.com", "file:///etc/passwd", "not a url at all ://"} {
		_, err := a.Resolve(context.Background(), core.Selector{Kind: core.SelectExact, Exact: bad})
		assert.Error(t, err, "url %q", bad)
	}
}

func TestFetch_HintFromNameOrHost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><h1>Changelog</h1></body></html>"))
	}))
	defer srv.Close()

	named := New(fetch.New(0, ""), "myproject")
	raw, err := named.Fetch(context.Background(), srv.URL+"/changelog")
	require.NoError(t, err)
	assert.Equal(t, core.KindWeb, raw.SourceKind)
	assert.Equal(t, "myproject", raw.ProjectHint)
	assert.Equal(t, srv.URL+"/changelog", raw.OriginURL)

	unnamed := New(fetch.New(0, ""), "")
	raw, err = unnamed.Fetch(context.Background(), srv.URL+"/changelog")
	require.NoError(t, err)
	assert.NotEmpty(t, raw.ProjectHint) // falls back to the host
}
