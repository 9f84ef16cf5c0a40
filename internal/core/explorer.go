// Package core drives the construction of the HDA: a breadth-first walk of the
// global state space that creates states and transitions and hands every edge
// closing a cycle of moves to the cube lattice engine.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/comalice/pg2hda/internal/cube"
	"github.com/comalice/pg2hda/internal/lattice"
	"github.com/comalice/pg2hda/internal/metrics"
)

const tracerName = "github.com/comalice/pg2hda/internal/core"

// Explorer builds the complex of a system described by an Oracle.
// An Explorer may run several constructions; each one is independent.
type Explorer struct {
	oracle    Oracle
	log       zerolog.Logger
	metrics   *metrics.Recorder
	tracer    trace.Tracer
	maxStates int
	runID     string
}

// Result is a finished construction.
type Result struct {
	RunID   string
	Complex *cube.Complex
	// Dim is the highest degree of a cube in Complex.
	Dim     int
	Elapsed time.Duration
}

// NewExplorer returns an explorer over o.
func NewExplorer(o Oracle, opts ...Option) *Explorer {
	x := &Explorer{
		oracle: o,
		log:    zerolog.Nop(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// pending is a discovered state waiting in the work queue with its vertex.
type pending struct {
	state  State
	vertex cube.ID
}

// run holds the mutable state of one construction.
type run struct {
	x      *Explorer
	log    zerolog.Logger
	cx     *cube.Complex
	engine *lattice.Engine
	seen   map[string]cube.ID
	queue  []pending
}

// MakeHDA explores the state space breadth first and returns the complete complex.
// On error no partial complex is returned.
func (x *Explorer) MakeHDA(ctx context.Context) (res *Result, err error) {
	start := time.Now()
	runID := x.runID
	if runID == "" {
		runID = uuid.NewString()
	}
	ctx, span := x.tracer.Start(ctx, "pg2hda.MakeHDA",
		trace.WithAttributes(attribute.String("pg2hda.run_id", runID)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		x.metrics.BuildFinished(err, time.Since(start))
	}()

	log := x.log.With().Str("run", runID).Logger()
	cx := cube.NewComplex()
	r := &run{
		x:      x,
		log:    log,
		cx:     cx,
		engine: lattice.New(cx, lattice.WithLogger(log), lattice.WithMetrics(x.metrics)),
		seen:   map[string]cube.ID{},
	}
	if err := r.initialStates(); err != nil {
		return nil, err
	}
	log.Debug().Int("initial", len(r.queue)).Msg("exploration started")

	dim := 0
	explored := 0
	for len(r.queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("make hda: %w", err)
		}
		p := r.queue[0]
		r.queue = r.queue[1:]

		final, err := x.oracle.IsFinal(p.state)
		if err != nil {
			return nil, fmt.Errorf("%w: final predicate at %s: %w", ErrOracle, p.state.Key(), err)
		}
		cx.At(0, p.vertex).Final = final

		d, err := r.HandleState(p)
		if err != nil {
			return nil, err
		}
		if d > dim {
			span.AddEvent("dimension", trace.WithAttributes(attribute.Int("pg2hda.dim", d)))
			dim = d
		}
		explored++
		x.metrics.StateExplored()
	}

	elapsed := time.Since(start)
	span.SetAttributes(
		attribute.Int("pg2hda.dim", dim),
		attribute.Int("pg2hda.states", explored),
		attribute.Int("pg2hda.cubes", cx.Size()),
	)
	log.Info().
		Int("states", explored).
		Ints("ranks", cx.Ranks()).
		Int("dim", dim).
		Dur("elapsed", elapsed).
		Msg("hda constructed")
	return &Result{RunID: runID, Complex: cx, Dim: dim, Elapsed: elapsed}, nil
}

// initialStates creates one initial vertex per distinct initial state.
func (r *run) initialStates() error {
	states, err := r.x.oracle.InitialStates()
	if err != nil {
		return fmt.Errorf("%w: initial states: %w", ErrOracle, err)
	}
	for _, s := range states {
		if _, dup := r.seen[s.Key()]; dup {
			continue
		}
		id, err := r.addState(s)
		if err != nil {
			return err
		}
		r.cx.At(0, id).Initial = true
	}
	if len(r.queue) == 0 {
		return ErrNoInitialState
	}
	return nil
}

// addState inserts the vertex of a new state and queues the state.
func (r *run) addState(s State) (cube.ID, error) {
	if r.x.maxStates > 0 && len(r.seen) >= r.x.maxStates {
		return 0, fmt.Errorf("%w: more than %d states", ErrStateLimit, r.x.maxStates)
	}
	v := cube.New(0, cube.StateLabel(s.Key()))
	id := r.cx.Insert(v)
	r.seen[s.Key()] = id
	r.queue = append(r.queue, pending{state: s, vertex: id})
	return id, nil
}

// HandleState creates an edge for every transition enabled at p. A successor
// not seen before becomes a new vertex; an edge into a known vertex may close
// squares and higher cubes, which the engine completes at once.
// It returns the highest degree touched.
func (r *run) HandleState(p pending) (int, error) {
	steps, err := r.x.oracle.Enabled(p.state)
	if err != nil {
		return 0, fmt.Errorf("%w: transitions at %s: %w", ErrOracle, p.state.Key(), err)
	}
	r.log.Trace().Str("state", p.state.Key()).Int("enabled", len(steps)).Msg("state")

	dim := 0
	for _, step := range steps {
		target, seen := r.seen[step.Next.Key()]
		if !seen {
			if target, err = r.addState(step.Next); err != nil {
				return 0, err
			}
		}
		e := cube.New(1, cube.Label{Text: step.Action, PID: step.PID})
		e.Boundary[0][0] = p.vertex
		e.Boundary[1][0] = target
		r.cx.Insert(e)
		e.Edges = []cube.ID{e.Index}
		r.x.metrics.TransitionAdded()
		dim = max(dim, 1)
		if seen {
			dim = max(dim, r.engine.FillCubes(e))
		}
	}
	return dim, nil
}
