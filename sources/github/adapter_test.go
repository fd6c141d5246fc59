package github

import (
	"context"
	"net/http"
	"testing"
	"time"

	gh "github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranav-iyer/relscribe/core"
)

func TestNew_ValidatesRepo(t *testing.T) {
	ctx := context.Background()

	a, err := New(ctx, "cli/cli", "", 0)
	require.NoError(t, err)
	assert.Equal(t, core.KindGitHub, a.Kind())

	for _, bad := range []string{"", "cli", "cli/", "/cli", "a/b/c"} {
		_, err := New(ctx, bad, "", 0)
		assert.Error(t, err, "repo %q", bad)
	}
}

func TestResolve_ExactNeedsNoNetwork(t *testing.T) {
	a, err := New(context.Background(), "cli/cli", "", 0)
	require.NoError(t, err)

	ids, err := a.Resolve(context.Background(), core.Selector{Kind: core.SelectExact, Exact: "v2.50.0"})
	require.NoError(t, err)
	assert.Equal(t, []string{"v2.50.0"}, ids)
}

func TestTagCandidates(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"v1.2.3", []string{"v1.2.3", "1.2.3"}},
		{"1.2.3", []string{"1.2.3", "v1.2.3"}},
		{"go1.24.0", []string{"go1.24.0", "vgo1.24.0"}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tagCandidates(tc.in), "input %q", tc.in)
	}
}

func TestFilterByDateRange(t *testing.T) {
	day := func(d int) gh.Timestamp {
		return gh.Timestamp{Time: time.Date(2025, 6, d, 12, 0, 0, 0, time.UTC)}
	}
	release := func(tag string, published gh.Timestamp) *gh.RepositoryRelease {
		return &gh.RepositoryRelease{TagName: gh.Ptr(tag), PublishedAt: &published}
	}

	rels := []*gh.RepositoryRelease{
		release("v1.0.0", day(1)),
		release("v1.1.0", day(10)),
		release("v1.2.0", day(20)),
		{TagName: gh.Ptr("draft")}, // never published
	}

	from := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)
	to := endOfDay(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))

	// The --to day itself is included even though the release was
	// published midday.
	assert.Equal(t, []string{"v1.1.0"}, filterByDateRange(rels, from, to))
}

func TestFilterByDateRange_Empty(t *testing.T) {
	from := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	to := endOfDay(from)
	assert.Empty(t, filterByDateRange(nil, from, to))
}

func TestClassify(t *testing.T) {
	a, err := New(context.Background(), "cli/cli", "", 0)
	require.NoError(t, err)

	notFound := &gh.ErrorResponse{Response: httpResponse(404)}
	assert.True(t, core.IsNotFound(a.classify(notFound, "v9.9.9")))

	server := &gh.ErrorResponse{Response: httpResponse(502)}
	assert.True(t, core.IsTransient(a.classify(server, "v1.0.0")))

	rate := &gh.RateLimitError{
		Rate: gh.Rate{Reset: gh.Timestamp{Time: time.Now().Add(time.Minute)}},
	}
	err = a.classify(rate, "v1.0.0")
	require.True(t, core.IsRateLimited(err))
	assert.Positive(t, core.RetryAfterHint(err))

	after := 30 * time.Second
	abuse := &gh.AbuseRateLimitError{RetryAfter: &after}
	err = a.classify(abuse, "v1.0.0")
	require.True(t, core.IsRateLimited(err))
	assert.Equal(t, after, core.RetryAfterHint(err))
}

func httpResponse(status int) *http.Response {
	return &http.Response{StatusCode: status}
}
