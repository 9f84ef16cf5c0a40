// Package lattice completes the higher-dimensional cubes implied by a new edge.
//
// FillCubes climbs degree by degree: squares are found by FillSquares, every
// higher degree by FillHDCubes working on the cubes added one degree below.
// The engine is single-threaded and mutates the complex in place; all mutations
// are appends, so a rejected candidate is simply dropped.
package lattice

import (
	"github.com/rs/zerolog"

	"github.com/comalice/pg2hda/internal/cube"
	"github.com/comalice/pg2hda/internal/metrics"
)

// None is returned by FillCubes when not even a square could be formed.
const None = -1

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(r *metrics.Recorder) Option {
	return func(e *Engine) {
		e.metrics = r
	}
}

// Engine builds cubes of degree >= 2 into a complex.
type Engine struct {
	cx      *cube.Complex
	log     zerolog.Logger
	metrics *metrics.Recorder
}

// New returns an engine working on cx.
func New(cx *cube.Complex, opts ...Option) *Engine {
	e := &Engine{cx: cx, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Complex returns the complex the engine mutates.
func (e *Engine) Complex() *cube.Complex {
	return e.cx
}

// FillCubes adds every cube that must exist because of edge and returns the
// highest degree added, or None.
func (e *Engine) FillCubes(edge *cube.Cube) int {
	count := e.FillSquares(edge)
	if count == 0 {
		return None
	}
	dim := 2
	for degree := 3; ; degree++ {
		count = e.FillHDCubes(edge, degree, count)
		if count == 0 {
			break
		}
		dim = degree
	}
	if dim > 2 {
		e.log.Debug().
			Str("edge", edge.Text()).
			Int("pid", edge.PID()).
			Int("degree", dim).
			Msg("higher cubes completed")
	}
	return dim
}

// accept validates a fully assembled candidate and inserts it. others holds the
// cubes sharing every boundary face with the candidate.
func (e *Engine) accept(c *cube.Cube, others []cube.ID) bool {
	if !e.cx.BoundaryIdentitiesHold(c) {
		e.metrics.CandidateRejected(c.Degree, metrics.ReasonIdentity)
		return false
	}
	if len(others) > 0 {
		e.metrics.CandidateRejected(c.Degree, metrics.ReasonDuplicate)
		return false
	}
	c.Edges = e.cx.AxisEdges(c)
	c.Labels = make([]cube.Label, len(c.Edges))
	for i := range c.Edges {
		c.Labels[i] = e.cx.Edge(c, i).Labels[0]
	}
	e.cx.Insert(c)
	e.metrics.CubeAdded(c.Degree)
	e.log.Trace().
		Int("degree", c.Degree).
		Int("index", int(c.Index)).
		Str("labels", cube.JoinLabels(c.Labels, ",")).
		Msg("cube added")
	return true
}
