package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"species-matrix/internal/config"
	"species-matrix/internal/logger"
	"species-matrix/internal/processor"
	"species-matrix/internal/reader"
	"species-matrix/internal/task"
	"species-matrix/internal/ui"
)

func (a *app) convertCommand() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "convert <input>",
		Short: "Convert a survey sheet into a species x plot matrix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConvert(cmd, args[0], timeout)
		},
	}

	flags := cmd.Flags()
	flags.StringP("output", "o", "", "Output file (extension is replaced per format)")
	flags.String("dir", "", "Output directory (default: next to the input)")
	flags.StringSliceP("format", "f", []string{"excel"}, "Output formats: excel, csv, html, word, json, toon")
	flags.String("policy", "sum", "Duplicate species policy: sum or keep_first")
	flags.Bool("truncate", true, "Keep only the first token of table species names")
	flags.Bool("progress", true, "Show progress bars")
	flags.Bool("pause", false, "Wait for Enter before exiting")
	flags.DurationVar(&timeout, "timeout", 0, "Cancel the conversion after this long (0 = no limit)")

	return cmd
}

func (a *app) runConvert(cmd *cobra.Command, input string, timeout time.Duration) error {
	out := cmd.OutOrStdout()

	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.EnsureOutputDir(); err != nil {
		return err
	}

	printBanner(out)

	if err := logger.Init(out, cfg.Log.File, cfg.Log.Verbose); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Close()

	if cfg.Log.Verbose {
		cfg.Print()
	}

	if _, err := os.Stat(input); err != nil {
		return fmt.Errorf("input file not found: %s", input)
	}
	if !reader.Supported(input) {
		return fmt.Errorf("%w: %s", reader.ErrUnsupportedFormat, input)
	}

	opts, err := processor.OptionsFromConfig(cfg)
	if err != nil {
		return err
	}

	pipeline := ui.NewPipelineWithOutput(ui.ConvertPhases, cmd.ErrOrStderr())
	if !cfg.UI.Progress {
		pipeline.Disable()
	}
	sink := ui.NewSink(input, pipeline)

	result, err := a.execute(cmd.Context(), input, opts, sink, timeout)
	sink.Finish()
	if err != nil {
		return err
	}

	switch {
	case result.Cancelled():
		logger.Warn("⚠ Conversion cancelled, no output was written")
		return result.Err
	case result.Err != nil:
		logger.Error("Conversion failed: %s", processor.Describe(result.Err))
		return fmt.Errorf("conversion failed")
	}

	fmt.Fprintln(out, ui.RenderSummary(input, result.Summary, result.Outputs))
	logger.Info("✅ Conversion complete in %s (task %s)", result.Duration.Round(time.Millisecond), result.ID)
	if path := logger.GetLogFilePath(); path != "" {
		logger.Info("Log written to %s", path)
	}
	return nil
}

// execute starts the background task and waits for it.
// SIGINT, SIGTERM and the timeout all request a cooperative cancel.
func (a *app) execute(ctx context.Context, input string, opts processor.Options, sink *ui.Sink, timeout time.Duration) (*task.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)

	var deadline <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	done := make(chan *task.Result, 1)
	runner := task.NewRunner()
	id, err := runner.Start(ctx, input, opts, sink, func(r *task.Result) { done <- r })
	if err != nil {
		return nil, err
	}
	logger.Debug("Started task %s", id)

	for {
		select {
		case r := <-done:
			return r, nil
		case sig := <-signals:
			logger.Warn("Received %s, cancelling...", sig)
			runner.Cancel()
		case <-deadline:
			logger.Warn("Timed out after %s, cancelling...", timeout)
			runner.Cancel()
		}
	}
}

// loadConfig reads and validates the configuration for cmd
func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(a.configPath, cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	a.pauseOnExit = cfg.UI.PauseOnExit
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
