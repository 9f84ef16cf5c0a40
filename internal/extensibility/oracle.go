// Package extensibility holds decorators for the transition oracle consumed
// by the state explorer.
package extensibility

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/comalice/pg2hda/internal/core"
)

// LoggingOracle wraps an Oracle and traces every query it answers.
type LoggingOracle struct {
	inner core.Oracle
	log   zerolog.Logger
}

var _ core.Oracle = (*LoggingOracle)(nil)

// NewLoggingOracle creates a LoggingOracle wrapping inner.
func NewLoggingOracle(inner core.Oracle, log zerolog.Logger) *LoggingOracle {
	return &LoggingOracle{inner: inner, log: log.With().Str("component", "oracle").Logger()}
}

// Unwrap returns the decorated oracle.
func (o *LoggingOracle) Unwrap() core.Oracle { return o.inner }

func (o *LoggingOracle) InitialStates() ([]core.State, error) {
	start := time.Now()
	states, err := o.inner.InitialStates()
	o.log.Trace().Int("states", len(states)).Dur("took", time.Since(start)).Err(err).Msg("initial states")
	return states, err
}

func (o *LoggingOracle) Enabled(s core.State) ([]core.Step, error) {
	start := time.Now()
	steps, err := o.inner.Enabled(s)
	ev := o.log.Trace().Str("state", s.Key()).Int("steps", len(steps)).Dur("took", time.Since(start))
	if err != nil {
		ev.Err(err).Msg("enabled failed")
		return steps, err
	}
	if ev.Enabled() {
		actions := make([]string, len(steps))
		for i, st := range steps {
			actions[i] = st.Action
		}
		ev.Strs("actions", actions)
	}
	ev.Msg("enabled")
	return steps, nil
}

func (o *LoggingOracle) IsFinal(s core.State) (bool, error) {
	final, err := o.inner.IsFinal(s)
	if final || err != nil {
		o.log.Trace().Str("state", s.Key()).Bool("final", final).Err(err).Msg("final check")
	}
	return final, err
}
