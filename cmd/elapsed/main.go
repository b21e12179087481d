package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/getsentry/raven-go"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"scopedtimer/internal/meta"
	"scopedtimer/pkg/log"
	"scopedtimer/pkg/metrics"
	"scopedtimer/pkg/timer"
)

// exitStatusError carries the exit status of the timed command back to main.
type exitStatusError struct {
	code int
}

func (e *exitStatusError) Error() string {
	return fmt.Sprintf("elapsed: command exited: status=%d", e.code)
}

type options struct {
	configPath  string
	granularity string
	output      string
	name        string
	verbosity   string
	truncate    bool
	version     bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		var exitErr *exitStatusError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.code)
		}

		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "elapsed [flags] -- command [args...]",
		Short:         "Run a command and report how long it took",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(
		&opts.configPath,
		"config",
		os.Getenv("ELAPSED_CONFIG"),
		"path to the configuration file on disk",
	)
	flags.StringVar(
		&opts.granularity,
		"granularity",
		"",
		"timer granularity: one of ns, us, ms, s, min, h",
	)
	flags.StringVar(
		&opts.output,
		"output",
		"",
		"append the report to this file instead of standard output",
	)
	flags.BoolVar(
		&opts.truncate,
		"truncate",
		false,
		"truncate the output file instead of appending to it",
	)
	flags.StringVar(
		&opts.name,
		"name",
		"",
		"name of the timer in logs and metrics",
	)
	flags.StringVar(
		&opts.verbosity,
		"verbosity",
		"error",
		"desired logging verbosity: one of error, warn, info, debug",
	)
	flags.BoolVar(
		&opts.version,
		"version",
		false,
		"print the compiled elapsed version SHA",
	)

	return cmd
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	// Report the compiled version and exit
	if opts.version {
		fmt.Fprintf(cmd.OutOrStdout(), "elapsed/%s\n", meta.VersionSHA)
		return nil
	}

	// Logging configuration; default to log.Error verbosity
	level, _ := log.ParseLevel(opts.verbosity)
	logger := log.NewConsoleLogger(level)
	logger.Debug("main: initialized logger: level=%v", level)

	if len(args) == 0 {
		return fmt.Errorf("elapsed: missing command to run")
	}

	// Parse application configuration
	cfg := meta.DefaultConfig()
	if opts.configPath != "" {
		logger.Debug("main: reading and parsing config: path=%s", opts.configPath)

		var err error
		if cfg, err = meta.ParseConfig(opts.configPath); err != nil {
			return err
		}
	}

	timerConfig := overrideTimerConfig(*cfg.Timer, cmd.Flags(), opts)
	if err := timerConfig.Validate(); err != nil {
		return err
	}

	// Configure error reporting
	sentryEnabled := cfg.Application != nil && cfg.Application.SentryDSN != ""
	if sentryEnabled {
		raven.SetDSN(cfg.Application.SentryDSN)
		raven.SetRelease(meta.VersionSHA)
	}

	// Configure metrics reporting
	hook := metrics.NewNoopTimerHook()
	if cfg.Metrics != nil && cfg.Metrics.Statsd != nil {
		logger.Info(
			"main: configuring statsd metrics reporting: addr=%s sample_rate=%f",
			cfg.Metrics.Statsd.Address,
			cfg.Metrics.Statsd.SampleRate,
		)

		var err error
		if hook, err = metrics.NewAsyncStatsdTimerHook(
			cfg.Metrics.Statsd.Address,
			float32(cfg.Metrics.Statsd.SampleRate),
		); err != nil {
			return err
		}
	} else {
		logger.Debug("main: no metrics output engine specified; disabling metrics")
	}

	// Deferred before the timer so it runs after the timer's report, flushing its metrics.
	defer func() {
		if err := hook.Close(); err != nil {
			logger.Warn("main: error closing metrics hook: err=%v", err)
		}
	}()

	timerOpts := []timer.Option{
		timer.WithLogger(logger),
		timer.WithHook(hook),
		timer.WithErrorHandler(errorReporter(logger, sentryEnabled)),
	}
	if timerConfig.Sink == "" || timerConfig.Sink == "console" {
		timerOpts = append(timerOpts, timer.WithWriter(cmd.OutOrStdout()))
	}

	tm, err := timer.NewFromConfig(timerConfig, timerOpts...)
	if err != nil {
		return err
	}
	defer tm.Close()

	logger.Info("main: running command: name=%s args=%v", args[0], args[1:])

	child := exec.Command(args[0], args[1:]...)
	child.Stdin = cmd.InOrStdin()
	child.Stdout = cmd.OutOrStdout()
	child.Stderr = cmd.ErrOrStderr()

	if err := child.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &exitStatusError{exitErr.ExitCode()}
		}

		return fmt.Errorf("elapsed: error running command: err=%v", err)
	}

	return nil
}

// overrideTimerConfig applies the flags the user explicitly set on top of the configured timer.
func overrideTimerConfig(cfg timer.Config, flags *pflag.FlagSet, opts *options) timer.Config {
	if flags.Changed("granularity") {
		cfg.Granularity = opts.granularity
	}

	if flags.Changed("output") {
		if opts.output == "" {
			cfg.Sink = "console"
			cfg.Path = ""
			cfg.Truncate = false
		} else {
			cfg.Sink = "file"
			cfg.Path = opts.output
		}
	}

	if flags.Changed("truncate") {
		cfg.Truncate = opts.truncate
	}

	if flags.Changed("name") {
		cfg.Name = opts.name
	}

	return cfg
}

// errorReporter creates the handler for errors the timer raises while finalizing at scope exit.
func errorReporter(logger log.Logger, sentryEnabled bool) func(error) {
	return func(err error) {
		logger.Error("main: error reporting elapsed time: err=%v", err)

		if sentryEnabled {
			raven.CaptureErrorAndWait(err, map[string]string{"component": "timer"})
		}
	}
}
