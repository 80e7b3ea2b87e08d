package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/marcodamonte/go-guide/guide"
	"github.com/marcodamonte/go-guide/internal/config"
	"github.com/marcodamonte/go-guide/internal/logging"
	"github.com/marcodamonte/go-guide/runner"
)

var version = "0.1.0" // set at build time with -ldflags "-X main.version=..."

// flags holds the raw command-line values. Only flags the user actually set
// override the loaded configuration.
type flags struct {
	configPath  string
	section     string
	list        bool
	keepGoing   bool
	noHeaders   bool
	logLevel    string
	logFormat   string
	metricsFile string
}

func newRootCmd(stdout, stderr io.Writer, fs afero.Fs) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "goguide",
		Short: "A runnable guide to the Go language",
		Long: `goguide prints a guided tour of Go, one topic at a time.

With no flags every topic runs in order. Pick a single topic with
--section; list the identifiers with --list or "goguide topics".

Settings come from defaults, an optional YAML file (--config), a .env
file and GOGUIDE_* environment variables, then these flags.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if f.list {
				return printTopics(stdout)
			}
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, stdout, stderr, fs)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.section, "section", "s", "", "Run only this topic (see --list)")
	fl.BoolVar(&f.list, "list", false, "List topic identifiers and exit")
	fl.StringVarP(&f.configPath, "config", "c", "", "Config file path (YAML)")
	fl.BoolVar(&f.keepGoing, "keep-going", false, "Keep running the remaining topics after one fails")
	fl.BoolVar(&f.noHeaders, "no-headers", false, "Omit the banner and per-topic headers")
	fl.StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fl.StringVar(&f.logFormat, "log-format", "", "Log format (text, json)")
	fl.StringVar(&f.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the run")

	cmd.AddCommand(newTopicsCmd(stdout), newVersionCmd(stdout))
	return cmd
}

// loadConfig layers the flags the user set over config.Load.
func loadConfig(cmd *cobra.Command, f flags) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	set := cmd.Flags().Changed
	if set("section") {
		cfg.Section = f.section
		cfg.SectionSet = true
	}
	if set("keep-going") {
		cfg.KeepGoing = f.keepGoing
	}
	if set("no-headers") {
		cfg.Headers = !f.noHeaders
	}
	if set("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if set("log-format") {
		cfg.Log.Format = f.logFormat
	}
	if set("metrics-file") {
		cfg.MetricsFile = f.metricsFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer, fs afero.Fs) error {
	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format}, stderr)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	metrics, err := runner.NewMetrics(reg)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	policy := runner.FailFast
	if cfg.KeepGoing {
		policy = runner.ContinueOnFailure
	}

	logger.Debug("starting", "version", version, "section", cfg.Section, "policy", policy.String())
	r := runner.New(guide.Registry(),
		runner.WithOutput(stdout),
		runner.WithLogger(logger),
		runner.WithPolicy(policy),
		runner.WithHeaders(cfg.Headers),
		runner.WithMetrics(metrics),
	)
	var runErr error
	if cfg.SectionSet {
		runErr = r.RunTopic(ctx, cfg.Section)
	} else {
		runErr = r.Run(ctx, cfg.Section)
	}

	if cfg.MetricsFile != "" {
		if err := writeMetrics(fs, cfg.MetricsFile, reg); err != nil {
			logger.Error("metrics not written", "path", cfg.MetricsFile, "error", err)
			runErr = errors.Join(runErr, err)
		}
	}
	return runErr
}

// writeMetrics writes everything g gathers to path in the Prometheus text
// exposition format.
func writeMetrics(fs afero.Fs, path string, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	var buf bytes.Buffer
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(&buf, mf); err != nil {
			return fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}
	if err := afero.WriteFile(fs, path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write metrics file: %w", err)
	}
	return nil
}

func printTopics(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE")
	for _, t := range guide.Registry().Topics() {
		fmt.Fprintf(tw, "%s\t%s\n", t.ID, t.Title)
	}
	return tw.Flush()
}

func newTopicsCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "topics",
		Short: "List topic identifiers in run order",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return printTopics(stdout)
		},
	}
}

func newVersionCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of goguide",
		Run: func(*cobra.Command, []string) {
			fmt.Fprintf(stdout, "goguide v%s\n", version)
		},
	}
}
