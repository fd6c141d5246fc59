// Package cmd — vscode command: scrape release notes from the VS Code
// update site.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pranav-iyer/relscribe/sources/fetch"
	"github.com/pranav-iyer/relscribe/sources/vscode"
)

var (
	flagVSLatest  bool
	flagVSVersion string
	flagVSAll     bool
	flagVSFrom    string
	flagVSTo      string
)

var vscodeCmd = &cobra.Command{
	Use:   "vscode",
	Short: "Scrape VS Code release notes",
	Long: `Fetch release notes pages from code.visualstudio.com/updates and
store them as markdown under {store}/vscode/.

Examples:
  relscribe vscode --latest
  relscribe vscode --version 1.101
  relscribe vscode --from 1.95 --to 1.101`,
	Args: cobra.NoArgs,
	RunE: runVSCode,
}

func init() {
	rootCmd.AddCommand(vscodeCmd)

	vscodeCmd.Flags().BoolVar(&flagVSLatest, "latest", false, "Scrape the latest release notes")
	vscodeCmd.Flags().StringVar(&flagVSVersion, "version", "", "Scrape one version (e.g. 1.101)")
	vscodeCmd.Flags().BoolVar(&flagVSAll, "all", false, "Scrape every version on the update index")
	vscodeCmd.Flags().StringVar(&flagVSFrom, "from", "", "Range start version (e.g. 1.95)")
	vscodeCmd.Flags().StringVar(&flagVSTo, "to", "", "Range end version, inclusive")
}

func runVSCode(cmd *cobra.Command, args []string) error {
	sel, err := buildSelector(flagVSLatest, flagVSVersion, flagVSAll, flagVSFrom, flagVSTo)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client := fetch.New(cfg.Timeout(), cfg.UserAgent)
	src := vscode.New(client, cfg.VSCode.BaseURL)

	// The vscode store layout is flat, so no project scope.
	return runPipeline(cmd.Context(), src, "", sel, cfg)
}
