// Package cmd — web command: scrape release notes from an arbitrary
// HTML page.
package cmd

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/pranav-iyer/relscribe/core"
	"github.com/pranav-iyer/relscribe/sources/fetch"
	"github.com/pranav-iyer/relscribe/sources/web"
)

var (
	flagWebURL  string
	flagWebName string
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Scrape release notes from a web page",
	Long: `Fetch one HTML page, extract its main content, and store it as
markdown under {store}/web/{name}/.

Examples:
  relscribe web --url https://example.com/changelog
  relscribe web --url https://example.com/changelog --name example`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func init() {
	rootCmd.AddCommand(webCmd)

	webCmd.Flags().StringVar(&flagWebURL, "url", "", "Page URL (required)")
	webCmd.Flags().StringVar(&flagWebName, "name", "", "Project name (default: URL host)")

	_ = webCmd.MarkFlagRequired("url")
}

func runWeb(cmd *cobra.Command, args []string) error {
	parsed, err := url.Parse(flagWebURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid --url %q: must include scheme, e.g. https://example.com", flagWebURL)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	name := flagWebName
	if name == "" {
		name = parsed.Host
	}

	client := fetch.New(cfg.Timeout(), cfg.UserAgent)
	src := web.New(client, flagWebName)

	sel := core.Selector{Kind: core.SelectExact, Exact: flagWebURL}
	return runPipeline(cmd.Context(), src, name, sel, cfg)
}
