// Package cmd implements the CLI commands for relscribe using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pranav-iyer/relscribe/logger"
)

// Persistent flag variables shared by every subcommand.
var (
	flagStore       string
	flagConfig      string
	flagVerbose     bool
	flagConcurrency int
)

var rootCmd = &cobra.Command{
	Use:   "relscribe",
	Short: "relscribe — scrape release notes into a markdown store",
	Long: `relscribe fetches release notes from GitHub releases, the VS Code
update site, or arbitrary web pages, normalizes them into a canonical
form, and writes deterministic markdown files into a local store.

Re-running against unchanged upstream content is a no-op.

Usage:
  relscribe github --repo owner/repo --latest
  relscribe vscode --version 1.101
  relscribe web --url https://example.com/changelog`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(flagVerbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "", "Store root directory (default: ./releases)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default: ~/.relscribe/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Verbose diagnostics on stderr")
	rootCmd.PersistentFlags().IntVar(&flagConcurrency, "concurrency", 0, "Max concurrent fetches (default from config)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
