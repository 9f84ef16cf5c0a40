package pgraph

import (
	"fmt"
	"slices"
	"strings"

	"github.com/comalice/pg2hda/internal/expr"
)

// Tau is the label of an action without a name or assignments.
const Tau = "tau"

// Action updates variable values in place.
type Action interface {
	// Name is the label the action gives to its edges.
	Name() string
	Apply(s *System, vals []int) error
}

// ActionName returns the label of a, Tau for nil.
func ActionName(a Action) string {
	if a == nil {
		return Tau
	}
	return a.Name()
}

// Assignments runs its assignments in order; each right-hand side sees the
// updates made before it.
type Assignments struct {
	Label string
	List  []expr.Assignment
}

// Name returns Label, or the rendered assignments, or Tau.
func (a *Assignments) Name() string {
	if a.Label != "" {
		return a.Label
	}
	if len(a.List) == 0 {
		return Tau
	}
	return a.Effect()
}

// Effect renders the assignments as "x=e;y=e2".
func (a *Assignments) Effect() string {
	parts := make([]string, len(a.List))
	for i, as := range a.List {
		parts[i] = as.String()
	}
	return strings.Join(parts, ";")
}

// Apply implements Action.
func (a *Assignments) Apply(s *System, vals []int) error {
	for _, as := range a.List {
		i, ok := s.VarIndex(as.Var)
		if !ok {
			return fmt.Errorf("%w %q", ErrUnknownVariable, as.Var)
		}
		v, err := expr.Eval(as.Expr, valuation{s, vals})
		if err != nil {
			return fmt.Errorf("action %s: %w", a.Name(), err)
		}
		vals[i] = v
	}
	return nil
}

// MapAction is an explicit evaluation map over Vars: the row of In equal to
// the current values selects the new values in the same row of Out.
type MapAction struct {
	Label string
	Vars  []string
	In    [][]int
	Out   [][]int
}

// Name implements Action.
func (a *MapAction) Name() string {
	return a.Label
}

// Apply implements Action.
func (a *MapAction) Apply(s *System, vals []int) error {
	arg, err := project(s, a.Vars, vals)
	if err != nil {
		return err
	}
	row := slices.IndexFunc(a.In, func(in []int) bool { return slices.Equal(in, arg) })
	if row < 0 {
		return fmt.Errorf("%w: action %s at %v", ErrNoMapping, a.Label, arg)
	}
	for k, n := range a.Vars {
		i, _ := s.VarIndex(n)
		vals[i] = a.Out[row][k]
	}
	return nil
}
