// Package github adapts the GitHub releases API to the Source
// contract. Identifiers are release tags; "latest", "all" and date
// ranges resolve through the releases API before fetching.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/pranav-iyer/relscribe/core"
)

const dateLayout = "2006-01-02"

// Adapter fetches releases for one owner/repo pair.
type Adapter struct {
	gh      *gh.Client
	owner   string
	repo    string
	limiter *RateLimiter
}

// Ensure the Source contract is met.
var _ core.Source = (*Adapter)(nil)

// New creates an adapter for ownerRepo ("owner/repo"). token may be
// empty for unauthenticated access; the rate limiter adjusts to the
// smaller quota.
func New(ctx context.Context, ownerRepo, token string, timeout time.Duration) (*Adapter, error) {
	owner, repo, ok := strings.Cut(ownerRepo, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return nil, fmt.Errorf("repository must be in owner/repo form, got %q", ownerRepo)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(ctx, ts)
	} else {
		httpClient = &http.Client{}
	}
	httpClient.Timeout = timeout

	return &Adapter{
		gh:      gh.NewClient(httpClient),
		owner:   owner,
		repo:    repo,
		limiter: NewRateLimiter(token != ""),
	}, nil
}

// Kind returns the source kind constant.
func (a *Adapter) Kind() string { return core.KindGitHub }

// Resolve expands a selector into release tags.
func (a *Adapter) Resolve(ctx context.Context, sel core.Selector) ([]string, error) {
	switch sel.Kind {
	case core.SelectExact:
		return []string{sel.Exact}, nil

	case core.SelectLatest:
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		rel, resp, err := a.gh.Repositories.GetLatestRelease(ctx, a.owner, a.repo)
		a.limiter.Update(resp)
		if err != nil {
			return nil, a.classify(err, "latest")
		}
		return []string{rel.GetTagName()}, nil

	case core.SelectAll:
		rels, err := a.listReleases(ctx)
		if err != nil {
			return nil, err
		}
		tags := make([]string, 0, len(rels))
		for _, rel := range rels {
			if t := rel.GetTagName(); t != "" {
				tags = append(tags, t)
			}
		}
		return tags, nil

	case core.SelectRange:
		from, err := time.Parse(dateLayout, sel.From)
		if err != nil {
			return nil, fmt.Errorf("github: invalid --from date %q: %w", sel.From, err)
		}
		to, err := time.Parse(dateLayout, sel.To)
		if err != nil {
			return nil, fmt.Errorf("github: invalid --to date %q: %w", sel.To, err)
		}
		rels, err := a.listReleases(ctx)
		if err != nil {
			return nil, err
		}
		return filterByDateRange(rels, from, endOfDay(to)), nil
	}
	return nil, fmt.Errorf("github: unsupported selector")
}

// Fetch retrieves one release by tag. Upstream tags may or may not
// carry a leading "v", so both spellings are tried before reporting
// not-found.
func (a *Adapter) Fetch(ctx context.Context, identifier string) (*core.RawDocument, error) {
	var (
		rel     *gh.RepositoryRelease
		lastErr error
	)
	for _, tag := range tagCandidates(identifier) {
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		got, resp, err := a.gh.Repositories.GetReleaseByTag(ctx, a.owner, a.repo, tag)
		a.limiter.Update(resp)
		if err == nil {
			rel = got
			break
		}
		lastErr = a.classify(err, tag)
		if !core.IsNotFound(lastErr) {
			return nil, lastErr
		}
	}
	if rel == nil {
		return nil, lastErr
	}

	return &core.RawDocument{
		SourceKind:  core.KindGitHub,
		Identifier:  identifier,
		Release:     payload(rel),
		OriginURL:   fmt.Sprintf("https://github.com/%s/%s/releases/tag/%s", a.owner, a.repo, rel.GetTagName()),
		ProjectHint: a.owner + "/" + a.repo,
		FetchedAt:   time.Now().UTC(),
	}, nil
}

// listReleases pages through every release of the repository.
func (a *Adapter) listReleases(ctx context.Context) ([]*gh.RepositoryRelease, error) {
	var all []*gh.RepositoryRelease
	opts := &gh.ListOptions{PerPage: 100}

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if err := a.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		rels, resp, err := a.gh.Repositories.ListReleases(ctx, a.owner, a.repo, opts)
		a.limiter.Update(resp)
		if err != nil {
			return nil, a.classify(err, "releases")
		}

		all = append(all, rels...)
		if resp.NextPage == 0 {
			return all, nil
		}
		opts.Page = resp.NextPage
	}
}

// classify converts go-github errors into the pipeline taxonomy.
func (a *Adapter) classify(err error, identifier string) error {
	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return &core.RateLimitedError{RetryAfter: untilReset(rateErr.Rate.Reset.Time)}
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		var after time.Duration
		if abuseErr.RetryAfter != nil {
			after = *abuseErr.RetryAfter
		}
		return &core.RateLimitedError{RetryAfter: after}
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		switch {
		case ghErr.Response.StatusCode == http.StatusNotFound:
			return &core.NotFoundError{SourceKind: core.KindGitHub, Identifier: identifier}
		case ghErr.Response.StatusCode >= 500:
			return &core.TransientFetchError{URL: requestURL(ghErr), Err: err}
		}
		return fmt.Errorf("github: %s: %w", identifier, err)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &core.TransientFetchError{URL: urlErr.URL, Err: err}
	}
	return fmt.Errorf("github: %s: %w", identifier, err)
}

// tagCandidates returns the tag spellings to try for an identifier:
// the literal form, the canonical form, and the v-prefixed canonical
// form, deduplicated in that order.
func tagCandidates(identifier string) []string {
	candidates := []string{identifier}
	seen := map[string]bool{identifier: true}
	add := func(tag string) {
		if tag != "" && !seen[tag] {
			seen[tag] = true
			candidates = append(candidates, tag)
		}
	}
	canon := core.CanonicalVersion(identifier)
	add(canon)
	add("v" + canon)
	return candidates
}

// filterByDateRange keeps tags of releases published within
// [from, to]. Releases without a publish date cannot match a date
// range.
func filterByDateRange(rels []*gh.RepositoryRelease, from, to time.Time) []string {
	var tags []string
	for _, rel := range rels {
		published := rel.GetPublishedAt().Time
		if published.IsZero() || published.Before(from) || published.After(to) {
			continue
		}
		if t := rel.GetTagName(); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func payload(rel *gh.RepositoryRelease) *core.ReleasePayload {
	p := &core.ReleasePayload{
		TagName: rel.GetTagName(),
		Name:    rel.GetName(),
		Body:    rel.GetBody(),
		Author:  rel.GetAuthor().GetLogin(),
	}
	if t := rel.GetPublishedAt().Time; !t.IsZero() {
		u := t.UTC()
		p.PublishedAt = &u
	}
	for _, asset := range rel.Assets {
		p.Assets = append(p.Assets, core.Asset{
			Name: asset.GetName(),
			URL:  asset.GetBrowserDownloadURL(),
		})
	}
	return p
}

// endOfDay makes the --to bound inclusive of its whole day.
func endOfDay(t time.Time) time.Time {
	return t.Add(24*time.Hour - time.Nanosecond)
}

func untilReset(reset time.Time) time.Duration {
	d := time.Until(reset)
	if d < 0 {
		return 0
	}
	return d
}

func requestURL(ghErr *gh.ErrorResponse) string {
	if ghErr.Response != nil && ghErr.Response.Request != nil && ghErr.Response.Request.URL != nil {
		return ghErr.Response.Request.URL.String()
	}
	return ""
}
