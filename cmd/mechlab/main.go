package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/san-kum/mechlab/internal/logger"
)

var (
	dataDir    string
	debug      bool
	logLevel   string
	logFile    string
	configFile string
	preset     string
	format     string
	outPath    string
	width      int
	height     int
	fps        int
	frames     int
	workers    int
	theme      string
	sets       []string
	loop       bool
	outDir     string
	// sweep
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int

	closeLog func() error
)

// main registers the commands and runs the one selected. With no
// subcommand it lists the scripts. It exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:          "mechlab",
		Short:        "animated solid mechanics lab",
		SilenceUsage: true,
		RunE:         listScripts,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := logLevel
			if debug {
				level = "debug"
			}
			cleanup, err := logger.Setup(logger.Config{
				DataDir: dataDir,
				File:    logFile,
				Level:   level,
				Command: cmd.Name(),
			})
			if err != nil {
				return fmt.Errorf("logger: %w", err)
			}
			closeLog = cleanup
			logger.L().Debug("command.start", "args", args)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if closeLog != nil {
				return closeLog()
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".mechlab", "data directory")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "shorthand for --log-level debug")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file, - for stderr (default <data>/logs/mechlab.log)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list scripts",
		Args:  cobra.NoArgs,
		RunE:  listScripts,
	}

	renderCmd := &cobra.Command{
		Use:   "render [script]",
		Short: "render a script to gif, avi, png or svg and store the run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  renderScript,
	}
	addScriptFlags(renderCmd)
	renderCmd.Flags().StringVar(&format, "format", "gif", "output format (gif, avi, png, svg)")
	renderCmd.Flags().StringVar(&outPath, "out", "", "output file, or directory for png/svg sequences")

	playCmd := &cobra.Command{
		Use:   "play [script]",
		Short: "play a script in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  playScript,
	}
	addScriptFlags(playCmd)
	playCmd.Flags().StringVar(&theme, "theme", "cyberpunk", "color theme")
	playCmd.Flags().BoolVar(&loop, "loop", false, "restart after the last frame")
	playCmd.Flags().StringVar(&outDir, "record-dir", ".", "directory for G recordings")

	windowCmd := &cobra.Command{
		Use:   "window [script]",
		Short: "play a script in a native window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  windowScript,
	}
	addScriptFlags(windowCmd)
	windowCmd.Flags().BoolVar(&loop, "loop", false, "restart after the last frame")
	windowCmd.Flags().StringVar(&outDir, "record-dir", ".", "directory for G recordings")

	plotCmd := &cobra.Command{
		Use:   "plot [script|run_id]",
		Short: "plot the samples of a script or stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotSamples,
	}
	addScriptFlags(plotCmd)

	chartCmd := &cobra.Command{
		Use:   "chart [script|run_id]",
		Short: "draw the samples as a png or svg chart",
		Args:  cobra.ExactArgs(1),
		RunE:  chartSamples,
	}
	addScriptFlags(chartCmd)
	chartCmd.Flags().StringVar(&outPath, "out", "", "output file (.png or .svg)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [script|run_id]",
		Short: "write the samples as CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	addScriptFlags(exportCSVCmd)

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "check the mechanics against exact identities",
		Args:  cobra.NoArgs,
		RunE:  verifyModels,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [script]",
		Short: "list available presets for a script",
		Args:  cobra.ExactArgs(1),
		RunE:  listPresets,
	}

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "render every step of a scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().StringVar(&outDir, "out-dir", "", "directory for relative step outputs")
	batchCmd.Flags().IntVar(&workers, "workers", 0, "render workers (0 = one per CPU)")

	sweepCmd := &cobra.Command{
		Use:   "sweep [script]",
		Short: "tabulate final samples across a parameter range",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addScriptFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")
	_ = sweepCmd.MarkFlagRequired("param")

	configCmd := &cobra.Command{
		Use:   "config [script]",
		Short: "write the resolved configuration as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeConfig,
	}
	addScriptFlags(configCmd)
	configCmd.Flags().StringVar(&format, "format", "gif", "output format (gif, avi, png, svg)")
	configCmd.Flags().StringVar(&theme, "theme", "cyberpunk", "color theme")
	configCmd.Flags().StringVar(&outPath, "out", "", "file to write (stdout when empty)")

	rootCmd.AddCommand(listCmd, renderCmd, playCmd, windowCmd, plotCmd, chartCmd, exportCSVCmd,
		exportJSONCmd, verifyCmd, presetsCmd, runsCmd, batchCmd, sweepCmd, configCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// addScriptFlags registers the flags that shape a script's config.
func addScriptFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "override a model parameter, name=value")
	cmd.Flags().IntVar(&width, "width", 960, "frame width in pixels")
	cmd.Flags().IntVar(&height, "height", 640, "frame height in pixels")
	cmd.Flags().IntVar(&fps, "fps", 20, "frames per second")
	cmd.Flags().IntVar(&frames, "frames", 200, "frames for animated scripts")
	cmd.Flags().IntVar(&workers, "workers", 0, "render workers (0 = one per CPU)")
}
