// Package cli implements the wdctl command line.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/wdremote/internal/config"
	"github.com/GriffinCanCode/wdremote/internal/logging"
	"github.com/GriffinCanCode/wdremote/internal/monitoring"
	"github.com/GriffinCanCode/wdremote/internal/remote"
	"github.com/GriffinCanCode/wdremote/internal/version"
)

// options holds the global flags.
type options struct {
	configFile         string
	url                string
	timeout            time.Duration
	ignoreCertificates bool
	logLevel           string
	metrics            bool
}

// NewRootCommand builds the wdctl command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "wdctl",
		Short: "wdctl - send WebDriver commands to a remote end",
		Long: `wdctl talks to a W3C WebDriver remote end over HTTP.

Configuration is read from an optional file (YAML, TOML or JSON), then from
WDREMOTE_* environment variables, then from flags.

Quick Start:
  wdctl exec status                         Check the remote end is ready
  wdctl exec newSession '{"capabilities": {}}'
  wdctl commands fedcm                      List commands matching "fedcm"
  wdctl proxy https://grid:4444             Show how a URL would be reached`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "Config file path (.yaml, .toml or .json)")
	flags.StringVarP(&opts.url, "url", "u", "", "Remote end URL (e.g., http://localhost:4444)")
	flags.DurationVarP(&opts.timeout, "timeout", "t", 0, "Per-command timeout (e.g., 30s)")
	flags.BoolVar(&opts.ignoreCertificates, "ignore-certificates", false, "Skip TLS certificate verification")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug/info/warn/error")
	flags.BoolVar(&opts.metrics, "metrics", false, "Print Prometheus metrics to stderr after the command")

	root.AddCommand(newExecCommand(opts))
	root.AddCommand(newCommandsCommand())
	root.AddCommand(newProxyCommand(opts))
	root.AddCommand(newVersionCommand())
	return root
}

// Execute runs wdctl and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// load reads the configuration and applies the flags the user set.
func (o *options) load(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadFile(o.configFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("url") {
		cfg.Remote.URL = o.url
	}
	if flags.Changed("timeout") {
		cfg.Remote.Timeout = config.Duration(o.timeout)
	}
	if flags.Changed("ignore-certificates") {
		cfg.Remote.IgnoreCertificates = o.ignoreCertificates
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = o.logLevel
	}
	if flags.Changed("metrics") {
		cfg.Metrics.Enabled = o.metrics
	}
	return cfg, nil
}

// runtime is what a command needs to talk to the remote end.
type runtime struct {
	cfg      *config.Config
	logger   *logging.Logger
	registry *prometheus.Registry
	options  []remote.Option
}

func (o *options) runtime(cmd *cobra.Command) (*runtime, error) {
	cfg, err := o.load(cmd)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Logging.LoggerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	opts, err := cfg.ClientOptions()
	if err != nil {
		return nil, err
	}

	rt := &runtime{
		cfg:      cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
	}
	rt.options = append(opts,
		remote.WithLogger(logger),
		remote.WithMetrics(monitoring.NewMetrics(rt.registry)),
	)
	return rt, nil
}

func (rt *runtime) close() {
	_ = rt.logger.Sync()
}

// dumpMetrics writes the collected metrics in the Prometheus text format
// when enabled.
func (rt *runtime) dumpMetrics(w io.Writer) error {
	if !rt.cfg.Metrics.Enabled {
		return nil
	}
	families, err := rt.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
