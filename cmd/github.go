// Package cmd — github command: scrape release notes from the GitHub
// releases API for one repository.
package cmd

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/spf13/cobra"

	"github.com/pranav-iyer/relscribe/logger"
	"github.com/pranav-iyer/relscribe/sources/github"
)

var (
	flagGHRepo    string
	flagGHToken   string
	flagGHLatest  bool
	flagGHVersion string
	flagGHAll     bool
	flagGHFrom    string
	flagGHTo      string
)

var repoShape = regexp.MustCompile(`^[a-zA-Z0-9._-]+/[a-zA-Z0-9._-]+$`)

var githubCmd = &cobra.Command{
	Use:   "github",
	Short: "Scrape release notes from a GitHub repository",
	Long: `Fetch releases from the GitHub REST API and store their notes as
markdown under {store}/github/{owner}/{repo}/.

Examples:
  relscribe github --repo cli/cli --latest
  relscribe github --repo golang/go --version go1.24.0
  relscribe github --repo cli/cli --all
  relscribe github --repo cli/cli --from 2025-01-01 --to 2025-06-30`,
	Args: cobra.NoArgs,
	RunE: runGitHub,
}

func init() {
	rootCmd.AddCommand(githubCmd)

	githubCmd.Flags().StringVar(&flagGHRepo, "repo", "", "Repository as owner/repo (required)")
	githubCmd.Flags().StringVar(&flagGHToken, "token", "", "GitHub token (default: config, then GITHUB_TOKEN)")

	githubCmd.Flags().BoolVar(&flagGHLatest, "latest", false, "Scrape the latest release")
	githubCmd.Flags().StringVar(&flagGHVersion, "version", "", "Scrape one release by tag")
	githubCmd.Flags().BoolVar(&flagGHAll, "all", false, "Scrape every release")
	githubCmd.Flags().StringVar(&flagGHFrom, "from", "", "Range start date (YYYY-MM-DD)")
	githubCmd.Flags().StringVar(&flagGHTo, "to", "", "Range end date (YYYY-MM-DD), inclusive")

	_ = githubCmd.MarkFlagRequired("repo")
}

func runGitHub(cmd *cobra.Command, args []string) error {
	if !repoShape.MatchString(flagGHRepo) {
		return fmt.Errorf("invalid --repo %q: must be owner/repo", flagGHRepo)
	}

	sel, err := buildSelector(flagGHLatest, flagGHVersion, flagGHAll, flagGHFrom, flagGHTo)
	if err != nil {
		return err
	}
	if flagGHFrom != "" {
		if err := validateDates(flagGHFrom, flagGHTo); err != nil {
			return err
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	token := flagGHToken
	if token == "" {
		token = cfg.GitHub.Token
	}
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	if token == "" {
		logger.Warn("no GitHub token; the unauthenticated quota is 60 requests/hour")
	}

	ctx := cmd.Context()
	src, err := github.New(ctx, flagGHRepo, token, cfg.Timeout())
	if err != nil {
		return err
	}
	return runPipeline(ctx, src, flagGHRepo, sel, cfg)
}

func validateDates(from, to string) error {
	f, err := time.Parse("2006-01-02", from)
	if err != nil {
		return fmt.Errorf("invalid --from date %q: want YYYY-MM-DD", from)
	}
	t, err := time.Parse("2006-01-02", to)
	if err != nil {
		return fmt.Errorf("invalid --to date %q: want YYYY-MM-DD", to)
	}
	if t.Before(f) {
		return fmt.Errorf("--to %s is before --from %s", to, from)
	}
	return nil
}
