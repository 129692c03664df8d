package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/steam-tools/steamwatch/internal/config"
	"github.com/steam-tools/steamwatch/internal/logreader"
	"github.com/steam-tools/steamwatch/internal/monitor"
	"github.com/steam-tools/steamwatch/internal/observability"
	"github.com/steam-tools/steamwatch/internal/offset"
	"github.com/steam-tools/steamwatch/internal/report"
	"github.com/steam-tools/steamwatch/internal/steam"
)

var (
	cfgPath     string
	steamPath   string
	intervalSec int
	reportCount int
	logLevel    string
	logFile     string

	rootCmd = &cobra.Command{
		Use:   "steamwatch",
		Short: "steamwatch reports Steam download activity",
		Long: `steamwatch tails Steam's content_log.txt and prints a periodic report of
downloads that are transferring or paused, with the current transfer rate.`,
		SilenceUsage: true,
		RunE:         run,
	}
)

func init() {
	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to a YAML config file")
	rootCmd.Flags().StringVar(&steamPath, "steam-path", "", "Steam install root (skips discovery)")
	rootCmd.Flags().IntVarP(&intervalSec, "interval", "i", 0, "seconds between reports")
	rootCmd.Flags().IntVarP(&reportCount, "reports", "n", 0, "number of reports to produce")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "diagnostic log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "mirror diagnostics to a file")
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if steamPath != "" {
		cfg.SteamPath = steamPath
	}
	if intervalSec > 0 {
		cfg.ReportIntervalSec = intervalSec
	}
	if reportCount > 0 {
		cfg.ReportCount = reportCount
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	observability.InitLogger(cfg.LogLevel, cfg.LogFile)

	probes := steam.DefaultProbes()
	if cfg.SteamPath != "" {
		probes = []steam.Probe{steam.FixedPath(cfg.SteamPath)}
	}
	root, err := steam.FindInstallRoot(probes)
	if err != nil {
		return fmt.Errorf("locate steam: %w", err)
	}
	logPath := steam.LogPath(root)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Steam path: %s\n", root)
	fmt.Fprintf(out, "Content log: %s\n", logPath)
	fmt.Fprintf(out, "Monitoring: %d reports, %d second interval.\n\n", cfg.ReportCount, cfg.ReportIntervalSec)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := monitor.New(
		logreader.New(logPath),
		offset.NewMemoryStore(),
		report.NewBuilder(steam.NewLabelResolver(root)),
		monitor.Options{
			SeedTailBytes: cfg.SeedTailBytes,
			TickTailBytes: cfg.TickTailBytes,
			Interval:      time.Duration(cfg.ReportIntervalSec) * time.Second,
			ReportCount:   cfg.ReportCount,
		},
	)

	if err := m.Run(ctx, report.NewWriterSink(out)); err != nil {
		if errors.Is(err, monitor.ErrLogNotFound) {
			fmt.Fprintln(out, "Content log not found. Start Steam and begin a download.")
		}
		return err
	}

	fmt.Fprintln(out, "Monitoring finished.")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
