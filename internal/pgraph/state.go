package pgraph

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/comalice/pg2hda/internal/core"
)

// State is a global state: the location of every process and the value of
// every variable.
type State struct {
	Locs []int
	Vals []int
}

// Key renders the state as "(l0,...,ln-1,v0,...,vm-1)".
func (st State) Key() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, l := range st.Locs {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(l))
	}
	for i, v := range st.Vals {
		if i > 0 || len(st.Locs) > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
	b.WriteByte(')')
	return b.String()
}

func (s *System) initialLocs() []int {
	locs := make([]int, len(s.Procs))
	for i, p := range s.Procs {
		locs[i] = p.Initial
	}
	return locs
}

// InitialStates returns the initial global states. All processes start at
// their initial location. In the current mode the variables take their
// initial values; in the legacy mode every evaluation satisfying the joined
// initial conditions yields a state.
func (s *System) InitialStates() ([]core.State, error) {
	if s.Mode == ModeLegacy {
		return s.legacyInitialStates()
	}
	vals := make([]int, len(s.Vars))
	for i, v := range s.Vars {
		vals[i] = v.Initial
	}
	for _, p := range s.Procs {
		ok, err := Holds(p.InitialCond, s, vals)
		if err != nil {
			return nil, fmt.Errorf("process %q: %w", p.Name, err)
		}
		if !ok {
			return nil, nil
		}
	}
	return []core.State{State{Locs: s.initialLocs(), Vals: vals}}, nil
}

func (s *System) legacyInitialStates() ([]core.State, error) {
	joined := &TableCondition{}
	for _, p := range s.Procs {
		t, err := asTable(p.InitialCond)
		if err != nil {
			return nil, fmt.Errorf("process %q initial condition: %w", p.Name, err)
		}
		joined = MergeConditions(joined, t)
		if len(joined.rows()) == 0 {
			return nil, nil
		}
	}
	var states []core.State
	for _, vals := range ExtendCondition(joined, s) {
		states = append(states, State{Locs: s.initialLocs(), Vals: vals})
	}
	return states, nil
}

func asTable(c Condition) (*TableCondition, error) {
	switch t := c.(type) {
	case nil:
		return &TableCondition{}, nil
	case *TableCondition:
		return t, nil
	}
	return nil, fmt.Errorf("%w: %T is not an evaluation table", ErrInvalidSystem, c)
}

// NextState computes the successor of st when process pid takes t. It returns
// false when the guard of t does not hold.
func (s *System) NextState(st State, pid int, t Transition) (State, bool, error) {
	ok, err := Holds(t.Guard, s, st.Vals)
	if err != nil || !ok {
		return State{}, false, err
	}
	next := State{Locs: slices.Clone(st.Locs), Vals: slices.Clone(st.Vals)}
	next.Locs[pid] = t.To
	if t.Action != nil {
		if err := t.Action.Apply(s, next.Vals); err != nil {
			return State{}, false, err
		}
	}
	for i, v := range s.Vars {
		if !v.InDomain(next.Vals[i]) {
			return State{}, false, fmt.Errorf("%w: %s=%d after %s in process %q",
				ErrDomain, v.Name, next.Vals[i], ActionName(t.Action), s.Procs[pid].Name)
		}
	}
	return next, true, nil
}

// Enabled lists the transitions enabled at st, by ascending process id and in
// declaration order within a process.
func (s *System) Enabled(cs core.State) ([]core.Step, error) {
	st := cs.(State)
	var steps []core.Step
	for pid, p := range s.Procs {
		for _, t := range p.Transitions {
			if t.From != st.Locs[pid] {
				continue
			}
			next, ok, err := s.NextState(st, pid, t)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			steps = append(steps, core.Step{PID: pid, Action: ActionName(t.Action), Next: next})
		}
	}
	return steps, nil
}

// IsFinal reports whether every process is at its final location and every
// final condition holds.
func (s *System) IsFinal(cs core.State) (bool, error) {
	st := cs.(State)
	for pid, p := range s.Procs {
		if !p.HasFinal() || st.Locs[pid] != p.Final {
			return false, nil
		}
	}
	for _, p := range s.Procs {
		ok, err := Holds(p.FinalCond, s, st.Vals)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

var _ core.Oracle = (*System)(nil)
