package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/comalice/pg2hda"
	"github.com/comalice/pg2hda/internal/config"
	"github.com/comalice/pg2hda/internal/logger"
	"github.com/comalice/pg2hda/internal/metrics"
	"github.com/comalice/pg2hda/internal/pgraph"
	"github.com/comalice/pg2hda/internal/render"
	"github.com/comalice/pg2hda/internal/telemetry"
)

// flags holds the command line; only flags set explicitly override the
// configuration.
type flags struct {
	configPath  string
	short       bool
	inputOnly   bool
	chain       bool
	tsv         bool
	dot         bool
	format      string
	legacy      bool
	logLevel    string
	maxStates   int
	trace       string
	metricsFile string
	parallelism int
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:   "pg2hda [flags] FILE...",
		Short: "Build the HDA model of a system of program graphs",
		Long: `Build the higher-dimensional automaton of a system of program graphs.

All files together describe one system. In the current mode each file is a
YAML document whose processes are appended; with --old each file holds one
process in the legacy line-oriented format.

Examples:
  pg2hda system.yaml
  pg2hda -s a.yaml b.yaml
  pg2hda --old -c p0.pg p1.pg
  pg2hda -t --max-states 100000 big.yaml > big.tsv`,
		Version:      version,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, f, args)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "configuration file (YAML)")
	pf.BoolVarP(&f.short, "short", "s", false, "print only the summary of the model")
	pf.BoolVarP(&f.inputOnly, "input-only", "i", false, "print the input system and stop")
	pf.BoolVarP(&f.chain, "chain", "c", false, "print the chain complex (CHomP format)")
	pf.BoolVarP(&f.tsv, "tsv", "t", false, "print the cubes as tab separated values")
	pf.BoolVar(&f.dot, "dot", false, "print the 1-skeleton as a Graphviz graph")
	pf.StringVarP(&f.format, "format", "f", "", "output format: summary, short, input, chain, tsv or dot")
	pf.BoolVar(&f.legacy, "old", false, "read the legacy one-process-per-file format")
	pf.StringVar(&f.logLevel, "log-level", "", "log level: trace, debug, info, warn, error or disabled")
	pf.IntVar(&f.maxStates, "max-states", 0, "abort after discovering more states (0 = unlimited)")
	pf.StringVar(&f.trace, "trace", "", "trace exporter: none or stdout (written to stderr)")
	pf.StringVar(&f.metricsFile, "metrics-file", "", "write construction metrics in Prometheus text format")
	cmd.MarkFlagsMutuallyExclusive("short", "input-only", "chain", "tsv", "dot", "format")

	cmd.AddCommand(newBatchCmd(f), newConvertCmd(f))
	return cmd
}

// resolve merges the configuration file, the environment and the flags.
func (f *flags) resolve(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	changed := cmd.Flags().Changed
	switch {
	case f.short:
		cfg.Output.Format = string(render.FormatShort)
	case f.inputOnly:
		cfg.Output.Format = string(render.FormatInput)
	case f.chain:
		cfg.Output.Format = string(render.FormatChain)
	case f.tsv:
		cfg.Output.Format = string(render.FormatTSV)
	case f.dot:
		cfg.Output.Format = string(render.FormatDOT)
	case changed("format"):
		cfg.Output.Format = f.format
	}
	if f.legacy {
		cfg.Input.Mode = pgraph.ModeLegacy.String()
	}
	if changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if changed("max-states") {
		cfg.Build.MaxStates = f.maxStates
	}
	if changed("trace") {
		cfg.Telemetry.TraceExporter = f.trace
	}
	if changed("metrics-file") {
		cfg.Metrics.File = f.metricsFile
	}
	if changed("parallelism") {
		cfg.Batch.Parallelism = f.parallelism
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// session is the environment of one command run.
type session struct {
	cfg      *config.Config
	log      zerolog.Logger
	registry *prometheus.Registry
	metrics  *metrics.Recorder
	mode     pgraph.Mode
	format   render.Format
	closers  []func() error
}

func start(cmd *cobra.Command, f *flags) (*session, error) {
	cfg, err := f.resolve(cmd)
	if err != nil {
		return nil, err
	}
	s := &session{cfg: cfg}
	if s.mode, err = pgraph.ParseMode(cfg.Input.Mode); err != nil {
		return nil, err
	}
	if s.format, err = render.ParseFormat(cfg.Output.Format); err != nil {
		return nil, err
	}

	log, closeLog, err := logger.Init(cfg.Log)
	if err != nil {
		return nil, err
	}
	s.log = log
	s.closers = append(s.closers, closeLog)

	shutdown, err := telemetry.Init(cmd.Context(), telemetry.Config{
		TraceExporter:  cfg.Telemetry.TraceExporter,
		ServiceVersion: version,
		Writer:         cmd.ErrOrStderr(),
	})
	if err != nil {
		s.close()
		return nil, err
	}
	s.closers = append(s.closers, func() error { return shutdown(context.Background()) })

	if cfg.Metrics.File != "" {
		s.registry = prometheus.NewRegistry()
		s.metrics = metrics.New(s.registry)
	}
	return s, nil
}

func (s *session) options() pg2hda.Options {
	return pg2hda.Options{
		Logger:      s.log,
		Metrics:     s.metrics,
		MaxStates:   s.cfg.Build.MaxStates,
		TraceOracle: s.log.GetLevel() <= zerolog.TraceLevel,
	}
}

// finish writes the metrics file and releases the session. err is the
// result of the command and takes precedence.
func (s *session) finish(err error) error {
	if s.registry != nil {
		if werr := prometheus.WriteToTextfile(s.cfg.Metrics.File, s.registry); werr != nil {
			err = errors.Join(err, fmt.Errorf("write metrics: %w", werr))
		}
	}
	return errors.Join(err, s.close())
}

func (s *session) close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}
	return errors.Join(errs...)
}

func runBuild(cmd *cobra.Command, f *flags, args []string) (err error) {
	s, err := start(cmd, f)
	if err != nil {
		return err
	}
	defer func() { err = s.finish(err) }()

	sys, err := pg2hda.Load(s.mode, args...)
	if err != nil {
		return err
	}
	return s.render(cmd.Context(), cmd.OutOrStdout(), sys)
}

func (s *session) render(ctx context.Context, w io.Writer, sys *pgraph.System) error {
	if !s.format.NeedsComplex() {
		return render.Render(w, s.format, sys, nil)
	}
	res, err := pg2hda.Build(ctx, sys, s.options())
	if err != nil {
		return err
	}
	return render.Render(w, s.format, sys, res.Complex)
}
