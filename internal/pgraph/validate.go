package pgraph

import (
	"errors"
	"fmt"

	"github.com/comalice/pg2hda/internal/expr"
)

// Validate checks the system before exploration:
// - at least one process, every process with at least one location
// - unique variable names, initial values inside declared domains
// - legacy variables with a non-empty domain
// - initial, final and transition locations in range
// - conditions and actions referring to declared variables only
// - evaluation tables with rows of the right width and at least one row
func (s *System) Validate() error {
	if err := s.validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSystem, err)
	}
	return nil
}

func (s *System) validate() error {
	if len(s.Procs) == 0 {
		return errors.New("system has no processes")
	}
	seen := map[string]bool{}
	for _, v := range s.Vars {
		if seen[v.Name] {
			return fmt.Errorf("variable %q declared twice", v.Name)
		}
		seen[v.Name] = true
		if s.Mode == ModeLegacy && len(v.Domain) == 0 {
			return fmt.Errorf("%w: variable %q has an empty domain", ErrDomain, v.Name)
		}
		if s.Mode == ModeCurrent && !v.InDomain(v.Initial) {
			return fmt.Errorf("%w: initial value %d of %q", ErrDomain, v.Initial, v.Name)
		}
	}
	for pid, p := range s.Procs {
		if err := s.validateProcess(p); err != nil {
			return fmt.Errorf("process %d (%q): %w", pid, p.Name, err)
		}
	}
	return nil
}

func (s *System) validateProcess(p *Process) error {
	n := len(p.Locations)
	if n == 0 {
		return errors.New("process has no locations")
	}
	inRange := func(l int) bool { return l >= 0 && l < n }
	if !inRange(p.Initial) {
		return fmt.Errorf("%w: initial location %d", ErrUnknownLocation, p.Initial)
	}
	if p.Final != NoFinal && !inRange(p.Final) {
		return fmt.Errorf("%w: final location %d", ErrUnknownLocation, p.Final)
	}
	for _, name := range p.Vars {
		if _, ok := s.VarIndex(name); !ok {
			return fmt.Errorf("%w %q", ErrUnknownVariable, name)
		}
	}
	if err := s.validateCondition(p.InitialCond); err != nil {
		return fmt.Errorf("initial condition: %w", err)
	}
	if s.Mode == ModeLegacy {
		if _, err := asTable(p.InitialCond); err != nil {
			return fmt.Errorf("initial condition: %w", err)
		}
	}
	if err := s.validateCondition(p.FinalCond); err != nil {
		return fmt.Errorf("final condition: %w", err)
	}
	for i, t := range p.Transitions {
		if !inRange(t.From) || !inRange(t.To) {
			return fmt.Errorf("%w: transition %d from %d to %d", ErrUnknownLocation, i, t.From, t.To)
		}
		if err := s.validateCondition(t.Guard); err != nil {
			return fmt.Errorf("transition %d guard: %w", i, err)
		}
		if err := s.validateAction(t.Action); err != nil {
			return fmt.Errorf("transition %d action: %w", i, err)
		}
	}
	for _, a := range p.Actions {
		if err := s.validateAction(a); err != nil {
			return fmt.Errorf("action %s: %w", a.Name(), err)
		}
	}
	return nil
}

func (s *System) knownVars(names []string) error {
	for _, n := range names {
		if _, ok := s.VarIndex(n); !ok {
			return fmt.Errorf("%w %q", ErrUnknownVariable, n)
		}
	}
	return nil
}

func (s *System) validateCondition(c Condition) error {
	switch c := c.(type) {
	case nil:
		return nil
	case ExprCondition:
		return s.knownVars(expr.Vars(c.Expr))
	case *TableCondition:
		if err := s.knownVars(c.Vars); err != nil {
			return err
		}
		if len(c.Vars) > 0 && len(c.Rows) == 0 {
			return fmt.Errorf("%w: %s", ErrUnsatisfiable, c.Name)
		}
		for i, r := range c.Rows {
			if len(r) != len(c.Vars) {
				return fmt.Errorf("%s row %d has %d values for %d variables", c.Name, i, len(r), len(c.Vars))
			}
		}
	}
	return nil
}

func (s *System) validateAction(a Action) error {
	switch a := a.(type) {
	case nil:
		return nil
	case *Assignments:
		for _, as := range a.List {
			if err := s.knownVars(append([]string{as.Var}, expr.Vars(as.Expr)...)); err != nil {
				return err
			}
		}
	case *MapAction:
		if err := s.knownVars(a.Vars); err != nil {
			return err
		}
		if len(a.In) != len(a.Out) {
			return fmt.Errorf("%d inputs for %d outputs", len(a.In), len(a.Out))
		}
		for i := range a.In {
			if len(a.In[i]) != len(a.Vars) || len(a.Out[i]) != len(a.Vars) {
				return fmt.Errorf("evaluation %d does not match %d variables", i, len(a.Vars))
			}
		}
	}
	return nil
}
