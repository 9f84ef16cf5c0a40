// Package pg2hda builds higher-dimensional automata from systems of program
// graphs. States become 0-cubes, transitions 1-cubes, and every set of k
// independent actions enabled together is closed into a k-cube.
//
// Systems are read from files with Load or declared with NewSystem, then
// turned into a semi-cubical complex with Build:
//
//	sys, err := pg2hda.NewSystem("pair").
//		Process("A").Locations("idle", "done").Initial("idle").Final("done").
//		Transition("idle", "done", "a").Done().
//		Process("B").Locations("idle", "done").Initial("idle").Final("done").
//		Transition("idle", "done", "b").Done().
//		Build()
//	res, err := pg2hda.Build(ctx, sys, pg2hda.Options{})
//	res.Complex.Ranks() // [4 4 1]
package pg2hda

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/comalice/pg2hda/internal/core"
	"github.com/comalice/pg2hda/internal/extensibility"
	"github.com/comalice/pg2hda/internal/input"
	"github.com/comalice/pg2hda/internal/metrics"
	"github.com/comalice/pg2hda/internal/pgraph"
)

// Options tune a construction. The zero value logs nothing, records no
// metrics and explores without a state limit.
type Options struct {
	Logger    zerolog.Logger
	Metrics   *metrics.Recorder
	MaxStates int
	// RunID labels logs and spans; a random id is used when empty.
	RunID string
	// TraceOracle logs every oracle query at trace level.
	TraceOracle bool
}

func (o Options) explorerOptions() []core.Option {
	return []core.Option{
		core.WithLogger(o.Logger),
		core.WithMetrics(o.Metrics),
		core.WithMaxStates(o.MaxStates),
		core.WithRunID(o.RunID),
	}
}

// Result is a finished construction together with its system.
type Result struct {
	*core.Result
	System *pgraph.System
}

// Load reads a system from paths in the given mode.
func Load(mode pgraph.Mode, paths ...string) (*pgraph.System, error) {
	return input.Load(mode, paths...)
}

// Build validates sys and constructs its complex.
func Build(ctx context.Context, sys *pgraph.System, opts Options) (*Result, error) {
	if err := sys.Validate(); err != nil {
		return nil, err
	}
	var o core.Oracle = sys
	if opts.TraceOracle {
		o = extensibility.NewLoggingOracle(sys, opts.Logger)
	}
	opts.Logger.Debug().
		Str("system", sys.Name).
		Stringer("mode", sys.Mode).
		Int("processes", len(sys.Procs)).
		Int("variables", len(sys.Vars)).
		Msg("building system")
	res, err := core.NewExplorer(o, opts.explorerOptions()...).MakeHDA(ctx)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", sys.Name, err)
	}
	return &Result{Result: res, System: sys}, nil
}

// BuildFiles treats every path as an independent system and builds them
// concurrently, at most parallelism at a time. Results follow the order of
// paths. The first error cancels the remaining builds.
func BuildFiles(ctx context.Context, mode pgraph.Mode, paths []string, parallelism int, opts Options) ([]*Result, error) {
	results := make([]*Result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	if parallelism > 0 {
		g.SetLimit(parallelism)
	}
	for i, path := range paths {
		g.Go(func() error {
			sys, err := input.Load(mode, path)
			if err != nil {
				return err
			}
			o := opts
			o.Logger = opts.Logger.With().Str("file", path).Logger()
			if opts.RunID != "" {
				o.RunID = fmt.Sprintf("%s-%d", opts.RunID, i)
			}
			res, err := Build(ctx, sys, o)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
