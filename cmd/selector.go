package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/pranav-iyer/relscribe/config"
	"github.com/pranav-iyer/relscribe/core"
	"github.com/pranav-iyer/relscribe/core/run"
	"github.com/pranav-iyer/relscribe/core/store"
	"github.com/pranav-iyer/relscribe/logger"
)

// buildSelector maps the shared selection flags onto a Selector.
// Exactly one selection mode must be chosen; --from and --to must be
// given together.
func buildSelector(latest bool, version string, all bool, from, to string) (core.Selector, error) {
	if (from == "") != (to == "") {
		return core.Selector{}, fmt.Errorf("--from and --to must be given together")
	}

	modes := 0
	if latest {
		modes++
	}
	if version != "" {
		modes++
	}
	if all {
		modes++
	}
	if from != "" {
		modes++
	}
	if modes == 0 {
		return core.Selector{}, fmt.Errorf("one of --latest, --version, --all, or --from/--to is required")
	}
	if modes > 1 {
		return core.Selector{}, fmt.Errorf("--latest, --version, --all, and --from/--to are mutually exclusive")
	}

	switch {
	case latest:
		return core.Selector{Kind: core.SelectLatest}, nil
	case version != "":
		return core.Selector{Kind: core.SelectExact, Exact: version}, nil
	case all:
		return core.Selector{Kind: core.SelectAll}, nil
	default:
		return core.Selector{Kind: core.SelectRange, From: from, To: to}, nil
	}
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagStore != "" {
		cfg.StoreDir = flagStore
	}
	if flagConcurrency > 0 {
		cfg.MaxConcurrent = flagConcurrency
	}
	return cfg, nil
}

// runPipeline drives one invocation and prints per-identifier status
// lines plus a summary. The returned error is non-nil when the run
// itself failed or any identifier failed, so the process exits
// non-zero.
func runPipeline(ctx context.Context, src core.Source, project string, sel core.Selector, cfg config.Config) error {
	st, err := store.New(cfg.StoreDir)
	if err != nil {
		return fmt.Errorf("initializing store: %w", err)
	}
	logger.Debug("store root: %s", st.Root)

	runner := &run.Runner{
		Source:      src,
		Store:       st,
		Project:     project,
		Concurrency: cfg.MaxConcurrent,
		MaxRetries:  cfg.MaxRetries,
		RetryDelay:  cfg.RetryDelay(),
	}

	summary, err := runner.Run(ctx, sel)
	if err != nil {
		return err
	}

	for _, o := range summary.Outcomes {
		switch o.Status {
		case run.StatusWritten:
			fmt.Fprintf(os.Stdout, "✓ written: %s\n", o.Path)
		case run.StatusSkipped:
			fmt.Fprintf(os.Stdout, "- skipped: %s (unchanged)\n", o.Path)
		case run.StatusFailed:
			fmt.Fprintf(os.Stderr, "✗ failed:  %s: %v\n", o.Identifier, o.Err)
		}
	}
	fmt.Fprintf(os.Stdout, "%d written, %d skipped, %d failed\n",
		summary.Written, summary.Skipped, summary.Failed)

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d identifier(s) failed", summary.Failed, len(summary.Outcomes))
	}
	return nil
}
