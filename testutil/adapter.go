// Package testutil provides systems shared by tests, benchmarks and examples.
package testutil

import (
	"fmt"
	"strings"

	"github.com/comalice/pg2hda/internal/core"
)

// Flags is a state of K one-shot processes: bit i is set once process i moved.
type Flags struct {
	K    int
	Mask int
}

// Key renders the bits of the state in process order, e.g. "(1,0,1)".
func (f Flags) Key() string {
	parts := make([]string, f.K)
	for i := range parts {
		parts[i] = fmt.Sprint(f.Mask >> i & 1)
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// Independent adapts K independent one-shot processes directly to the
// explorer, bypassing program graphs. Process i performs action "ai" once.
// Its complex is the K-dimensional cube.
type Independent struct {
	K int
}

func (o Independent) InitialStates() ([]core.State, error) {
	return []core.State{Flags{K: o.K}}, nil
}

func (o Independent) Enabled(s core.State) ([]core.Step, error) {
	f := s.(Flags)
	var steps []core.Step
	for pid := 0; pid < o.K; pid++ {
		if f.Mask&(1<<pid) != 0 {
			continue
		}
		steps = append(steps, core.Step{
			PID:    pid,
			Action: fmt.Sprintf("a%d", pid),
			Next:   Flags{K: o.K, Mask: f.Mask | 1<<pid},
		})
	}
	return steps, nil
}

func (o Independent) IsFinal(s core.State) (bool, error) {
	return s.(Flags).Mask == 1<<o.K-1, nil
}

var _ core.Oracle = Independent{}
