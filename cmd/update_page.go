package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/sot/schedule-view/internal/cmdevents"
	"github.com/sot/schedule-view/internal/config"
	"github.com/sot/schedule-view/internal/format"
	"github.com/sot/schedule-view/internal/github"
	"github.com/sot/schedule-view/internal/input"
	"github.com/sot/schedule-view/internal/logctx"
	"github.com/sot/schedule-view/internal/metrics"
	"github.com/sot/schedule-view/internal/report"
	"github.com/sot/schedule-view/internal/schedules"
	"github.com/sot/schedule-view/internal/timeline"
)

var (
	configPath  string
	verbose     bool
	quiet       bool
	start       string
	outDir      string
	metricsFile string
)

// updatePageCmd runs the same update as the root command
var updatePageCmd = &cobra.Command{
	Use:   "update-page",
	Short: "Write the schedule page to index.html (same as running schedule-view)",
	Args:  cobra.NoArgs,
	RunE:  runUpdatePage,
}

func init() {
	rootCmd.AddCommand(updatePageCmd)
}

func runUpdatePage(cmd *cobra.Command, args []string) error {
	flags := config.Flags{
		ConfigPath:  configPath,
		MetricsFile: metricsFile,
		Verbose:     verbose,
		Quiet:       quiet,
	}
	// Only explicit flags override the config file and environment
	if cmd.Flags().Changed("start") {
		flags.Start = start
	}
	if cmd.Flags().Changed("outdir") {
		flags.OutDir = outDir
	}

	cfg, err := config.FromEnvAndFlags(flags)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg)
	ctx := logctx.With(cmd.Context(), logger)

	return updatePage(ctx, cfg, time.Now())
}

// updatePage runs one full page update. All sources are read before
// anything is written, so a failed read leaves the previous page in place.
func updatePage(ctx context.Context, cfg *config.Config, now time.Time) error {
	logger := logctx.From(ctx)
	started := time.Now()
	run := metrics.NewRun()

	logger.Info("Reading sources...", "start", cfg.Start)
	in, err := readSources(ctx, cfg, run)
	if err != nil {
		return err
	}

	logger.Info("Reconciling entries...")
	entries := report.Build(in, report.Options{StarcheckBase: cfg.StarcheckBase})
	summary := report.Summarize(entries)
	run.ObserveSummary(summary)
	logger.Debug("Entries reconciled",
		"loads", summary.Loads,
		"nominal", summary.Nominal,
		"interrupted", summary.Interrupted,
		"not_run", summary.NotRun,
		"cmd_events", summary.CmdEvents)

	path, n, err := format.WritePage(cfg.OutDir, format.NewPage(entries, cfg.Start, now))
	if err != nil {
		return err
	}
	logger.Info("Page written",
		"path", path,
		"size", humanize.Bytes(uint64(n)),
		"entries", humanize.Comma(int64(len(entries))))

	if cfg.MetricsFile != "" {
		run.ObserveSuccess(n, started, time.Now())
		if err := run.WriteTextfile(cfg.MetricsFile); err != nil {
			return err
		}
		logger.Debug("Metrics written", "path", cfg.MetricsFile)
	}
	return nil
}

// readSources loads the timeline boundaries, the command events and the
// schedule comments
func readSources(ctx context.Context, cfg *config.Config, run *metrics.Run) (report.Inputs, error) {
	logger := logctx.From(ctx)

	src, err := timeline.OpenSQLite(ctx, cfg.CmdsDB)
	if err != nil {
		return report.Inputs{}, err
	}
	defer src.Close()

	boundaries, err := timeline.LoadBoundaries(ctx, src, cfg.Start)
	if err != nil {
		return report.Inputs{}, err
	}
	run.ObserveSource("timeline", len(boundaries))
	logger.Info("Command timeline loaded", "load_events", humanize.Comma(int64(len(boundaries))))

	var fetcher input.FileFetcher
	if input.IsGitHubLocation(cfg.CmdEvents) {
		logger.Debug("Initializing GitHub client")
		fetcher = github.NewFetcher(github.New(ctx, cfg.GitHubToken))
	}
	events, err := cmdevents.Load(ctx, cfg.CmdEvents, cfg.Start, fetcher)
	if err != nil {
		return report.Inputs{}, err
	}
	run.ObserveSource("cmd_events", len(events))
	logger.Info("Command events loaded", "events", humanize.Comma(int64(len(events))))

	comments, err := schedules.Load(ctx, cfg.SchedDir, cfg.SchedPatterns)
	if err != nil {
		return report.Inputs{}, fmt.Errorf("failed to read schedule comments: %w", err)
	}
	run.ObserveSource("schedules", len(comments.Rows))
	logger.Info("Schedule comments loaded", "rows", humanize.Comma(int64(len(comments.Rows))))

	return report.Inputs{
		Boundaries: boundaries,
		CmdEvents:  events,
		Comments:   comments,
	}, nil
}
