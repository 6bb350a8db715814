package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sot/schedule-view/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "schedule-view",
	Short: "Build the command load schedule page",
	Long: `schedule-view builds a static HTML page of the spacecraft command load
history. It reads the command timeline archive, the command events table and
the legacy mission planning schedule pages, merges them into one list of
loads, runs that did not happen and other command events, most recent first,
and writes index.html into the output directory.

The command events table may be a local CSV file or a file in a GitHub
repository (github:owner/repo/path[@ref] or a blob URL). Set GITHUB_TOKEN to
read from a private repository.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runUpdatePage,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&start, "start", config.DefaultStart, "Earliest date to show (YYYY:DDD[:hh:mm[:ss[.fff]]])")
	flags.StringVar(&outDir, "outdir", config.DefaultOutDir, "Output directory for index.html (created if missing)")
	flags.StringVar(&configPath, "config", "", "YAML config file")
	flags.StringVar(&metricsFile, "metrics-file", "", "Write run metrics in Prometheus text format to this file")
	flags.BoolVar(&verbose, "verbose", false, "Enable verbose progress output")
	flags.BoolVar(&quiet, "quiet", false, "Suppress all progress output")
}
