// Package run sequences one invocation of the pipeline: selector
// resolution, then fetch → normalize → resolve → render → write per
// identifier, with bounded concurrency and independently
// attributable per-identifier outcomes. A failure on one identifier
// never aborts its siblings; only selector resolution itself is
// fatal for the run.
package run

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pranav-iyer/relscribe/core"
	"github.com/pranav-iyer/relscribe/core/normalize"
	"github.com/pranav-iyer/relscribe/core/render"
	"github.com/pranav-iyer/relscribe/core/resolve"
	"github.com/pranav-iyer/relscribe/core/store"
	"github.com/pranav-iyer/relscribe/logger"
)

// Status is the outcome class for one identifier.
type Status string

const (
	StatusWritten Status = "written"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Outcome is the result for one identifier.
type Outcome struct {
	Identifier string
	Status     Status
	Path       string
	Err        error
}

// Summary aggregates a run's outcomes in identifier order.
type Summary struct {
	Outcomes []Outcome
	Written  int
	Skipped  int
	Failed   int
}

const (
	defaultConcurrency = 1
	defaultMaxRetries  = 3
	defaultRetryDelay  = time.Second
)

// Runner drives one invocation against one source and one store.
type Runner struct {
	Source core.Source
	Store  *store.Store

	// Project scopes the resolver: "owner/repo" for GitHub, the
	// source name for web, empty for the flat vscode layout.
	Project string

	// Concurrency bounds in-flight fetches for --all/range runs.
	Concurrency int

	// MaxRetries and RetryDelay shape the backoff for rate-limited
	// and transient fetch failures.
	MaxRetries int
	RetryDelay time.Duration
}

// Run processes one selector. The returned error is non-nil only for
// run-level failures (selector resolution, unreadable store scope);
// per-identifier failures land in the summary instead.
func (r *Runner) Run(ctx context.Context, sel core.Selector) (*Summary, error) {
	gate := newGate()

	var ids []string
	err := r.withRetry(ctx, gate, func() error {
		var rerr error
		ids, rerr = r.Source.Resolve(ctx, sel)
		return rerr
	})
	if err != nil {
		return nil, err
	}
	logger.Info("resolved selector to %d identifier(s)", len(ids))

	resolver, err := resolve.New(r.Store, r.Source.Kind(), r.Project)
	if err != nil {
		return nil, err
	}

	outcomes := make([]Outcome, len(ids))
	g := new(errgroup.Group)
	limit := r.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}
	g.SetLimit(limit)

	for i, id := range ids {
		g.Go(func() error {
			outcomes[i] = r.processOne(ctx, resolver, gate, id)
			return nil
		})
	}
	_ = g.Wait()

	summary := &Summary{Outcomes: outcomes}
	for _, o := range outcomes {
		switch o.Status {
		case StatusWritten:
			summary.Written++
		case StatusSkipped:
			summary.Skipped++
		case StatusFailed:
			summary.Failed++
		}
	}
	return summary, nil
}

// processOne runs a single identifier through the pipeline. Every
// error is caught here and becomes a failed outcome.
func (r *Runner) processOne(ctx context.Context, resolver *resolve.Resolver, gate *gate, id string) Outcome {
	var raw *core.RawDocument
	err := r.withRetry(ctx, gate, func() error {
		var ferr error
		raw, ferr = r.Source.Fetch(ctx, id)
		return ferr
	})
	if err != nil {
		return Outcome{Identifier: id, Status: StatusFailed, Err: err}
	}

	rec, err := normalize.Normalize(raw)
	if err != nil {
		return Outcome{Identifier: id, Status: StatusFailed, Err: err}
	}

	text := render.Document(rec)

	action, path, err := resolver.Decide(rec, text)
	if err != nil {
		return Outcome{Identifier: id, Status: StatusFailed, Err: err}
	}
	if action == resolve.Skip {
		logger.Debug("content unchanged for %s, skipping", id)
		return Outcome{Identifier: id, Status: StatusSkipped, Path: path}
	}

	if err := r.Store.Write(path, text); err != nil {
		return Outcome{Identifier: id, Status: StatusFailed, Err: err}
	}
	return Outcome{Identifier: id, Status: StatusWritten, Path: path}
}

// withRetry runs op, retrying rate-limited and transient failures
// with bounded exponential backoff. A rate limit suspends the shared
// gate so no new work starts while the upstream cools down; other
// error classes return immediately.
func (r *Runner) withRetry(ctx context.Context, gate *gate, op func() error) error {
	retries := r.MaxRetries
	if retries <= 0 {
		retries = defaultMaxRetries
	}
	delay := r.RetryDelay
	if delay <= 0 {
		delay = defaultRetryDelay
	}

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if err := gate.Wait(ctx); err != nil {
			return err
		}

		err := op()
		if err == nil {
			return nil
		}
		lastErr = err

		switch {
		case core.IsRateLimited(err):
			hold := core.RetryAfterHint(err)
			if hold <= 0 {
				hold = delay << attempt
			}
			logger.Warn("rate limited, backing off %s", hold)
			gate.SuspendFor(hold)
		case core.IsTransient(err):
			backoff := delay << attempt
			logger.Debug("transient failure (%v), retrying in %s", err, backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		default:
			// Not-found, malformed and store errors are not retried.
			return err
		}
	}
	return lastErr
}
