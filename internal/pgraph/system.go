// Package pgraph models systems of program graphs: processes with locations
// and guarded transitions over shared integer variables.
//
// A System answers the explorer's questions about initial states, enabled
// transitions and final states. Two input modes are supported. In the current
// mode guards and final conditions are expressions and actions are sequences
// of assignments. In the legacy mode conditions are tables of satisfying
// evaluations and actions are explicit evaluation maps.
package pgraph

import (
	"fmt"
	"slices"
	"strings"
)

// Mode selects how conditions and actions of a system are interpreted.
type Mode uint8

const (
	ModeCurrent Mode = iota
	ModeLegacy
)

func (m Mode) String() string {
	if m == ModeLegacy {
		return "legacy"
	}
	return "current"
}

// ParseMode accepts "current" and "legacy" (or "old").
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "current":
		return ModeCurrent, nil
	case "legacy", "old":
		return ModeLegacy, nil
	}
	return ModeCurrent, fmt.Errorf("unknown input mode %q", s)
}

// Variable is a shared integer variable. An empty Domain is unbounded.
type Variable struct {
	Name    string
	Domain  []int
	Initial int
}

// InDomain reports whether x is a legal value of v.
func (v Variable) InDomain(x int) bool {
	return len(v.Domain) == 0 || slices.Contains(v.Domain, x)
}

// Location is a control point of a process.
type Location struct {
	Name string
}

// Transition moves its process from location From to To when Guard holds,
// applying Action to the variables. A nil Guard is true and a nil Action is tau.
type Transition struct {
	From, To int
	Guard    Condition
	Action   Action
}

// NoFinal marks a process without a final location.
const NoFinal = -1

// Process is one program graph.
type Process struct {
	Name        string
	Locations   []Location
	Transitions []Transition
	// Vars names the variables the process declares, in declaration order.
	Vars []string
	// Actions lists declared actions, including unused ones.
	Actions     []Action
	Initial     int
	Final       int
	InitialCond Condition
	FinalCond   Condition
}

// HasFinal reports whether p declares a final location.
func (p *Process) HasFinal() bool {
	return p.Final >= 0
}

// LocationName returns the name of location i, or its index when unnamed.
func (p *Process) LocationName(i int) string {
	if i >= 0 && i < len(p.Locations) && p.Locations[i].Name != "" {
		return p.Locations[i].Name
	}
	return fmt.Sprint(i)
}

// LocationIndex resolves a location name.
func (p *Process) LocationIndex(name string) (int, error) {
	for i, l := range p.Locations {
		if l.Name == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w %q in process %q", ErrUnknownLocation, name, p.Name)
}

// System is a set of processes over shared variables. Process ids are
// positions in Procs.
type System struct {
	Name  string
	Mode  Mode
	Vars  []Variable
	Procs []*Process

	index map[string]int
}

// NewSystem returns an empty system.
func NewSystem(name string, mode Mode) *System {
	return &System{Name: name, Mode: mode, index: map[string]int{}}
}

// VarIndex resolves a variable name to its position in Vars.
func (s *System) VarIndex(name string) (int, bool) {
	if len(s.index) != len(s.Vars) {
		s.index = make(map[string]int, len(s.Vars))
		for i, v := range s.Vars {
			s.index[v.Name] = i
		}
	}
	i, ok := s.index[name]
	return i, ok
}

// AddVariable declares v and returns its index. Redeclaring a variable with
// the same domain returns the existing index; a different domain is an error.
func (s *System) AddVariable(v Variable) (int, error) {
	if i, ok := s.VarIndex(v.Name); ok {
		if !slices.Equal(s.Vars[i].Domain, v.Domain) {
			return 0, fmt.Errorf("%w: variable %q redeclared with domain %v, was %v",
				ErrDomain, v.Name, v.Domain, s.Vars[i].Domain)
		}
		return i, nil
	}
	s.Vars = append(s.Vars, v)
	s.index[v.Name] = len(s.Vars) - 1
	return len(s.Vars) - 1, nil
}

// AddProcess appends p and returns its process id.
func (s *System) AddProcess(p *Process) int {
	s.Procs = append(s.Procs, p)
	return len(s.Procs) - 1
}

// valuation resolves variable names against a value vector of s.
type valuation struct {
	sys  *System
	vals []int
}

func (v valuation) Lookup(name string) (int, bool) {
	i, ok := v.sys.VarIndex(name)
	if !ok {
		return 0, false
	}
	return v.vals[i], true
}
