package core

import (
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/comalice/pg2hda/internal/metrics"
)

// Option configures an Explorer.
type Option func(*Explorer)

// WithLogger sets the logger for the explorer and its cube engine.
func WithLogger(l zerolog.Logger) Option {
	return func(x *Explorer) {
		x.log = l
	}
}

// WithMetrics records construction metrics on r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(x *Explorer) {
		x.metrics = r
	}
}

// WithTracer sets the tracer used for the construction span.
func WithTracer(t trace.Tracer) Option {
	return func(x *Explorer) {
		x.tracer = t
	}
}

// WithMaxStates aborts construction once more than n states are discovered.
// Zero means no limit.
func WithMaxStates(n int) Option {
	return func(x *Explorer) {
		x.maxStates = n
	}
}

// WithRunID tags logs and spans with id instead of a generated one.
func WithRunID(id string) Option {
	return func(x *Explorer) {
		x.runID = id
	}
}
