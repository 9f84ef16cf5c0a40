package pg2hda

import (
	"errors"
	"fmt"

	"github.com/comalice/pg2hda/internal/input"
	"github.com/comalice/pg2hda/internal/pgraph"
)

// SystemBuilder provides a fluent API for declaring a system of program
// graphs by name instead of by location and variable index.
type SystemBuilder struct {
	doc  input.Document
	errs []error
}

// ProcessBuilder configures one process. Guard and Effect apply to the most
// recently added transition.
type ProcessBuilder struct {
	b   *SystemBuilder
	idx int
}

// NewSystem starts a system in the current input mode.
func NewSystem(name string) *SystemBuilder {
	return &SystemBuilder{doc: input.Document{Name: name}}
}

// Var declares a shared variable with its initial value and an optional
// finite domain.
func (b *SystemBuilder) Var(name string, initial int, domain ...int) *SystemBuilder {
	b.doc.Variables = append(b.doc.Variables, input.VariableDoc{Name: name, Initial: initial, Domain: domain})
	return b
}

// Process starts a new process. Process ids follow declaration order.
func (b *SystemBuilder) Process(name string) *ProcessBuilder {
	b.doc.Processes = append(b.doc.Processes, input.ProcessDoc{Name: name})
	return &ProcessBuilder{b: b, idx: len(b.doc.Processes) - 1}
}

// Build resolves every name and returns the validated system.
func (b *SystemBuilder) Build() (*pgraph.System, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	sys := pgraph.NewSystem(b.doc.Name, pgraph.ModeCurrent)
	if err := input.Compile(sys, &b.doc, b.doc.Name); err != nil {
		return nil, err
	}
	if err := sys.Validate(); err != nil {
		return nil, err
	}
	return sys, nil
}

// Locations appends named locations to the process.
func (pb *ProcessBuilder) Locations(names ...string) *ProcessBuilder {
	pb.proc().Locations = append(pb.proc().Locations, names...)
	return pb
}

// Initial sets the initial location.
func (pb *ProcessBuilder) Initial(name string) *ProcessBuilder {
	pb.proc().Initial = name
	return pb
}

// Final sets the final location.
func (pb *ProcessBuilder) Final(name string) *ProcessBuilder {
	pb.proc().Final = name
	return pb
}

// InitialCondition restricts the initial states to those satisfying src.
func (pb *ProcessBuilder) InitialCondition(src string) *ProcessBuilder {
	pb.proc().InitialCondition = src
	return pb
}

// FinalCondition must hold, besides the final location, in a final state.
func (pb *ProcessBuilder) FinalCondition(src string) *ProcessBuilder {
	pb.proc().FinalCondition = src
	return pb
}

// Transition adds a transition labelled action. An empty action is named
// after its effect.
func (pb *ProcessBuilder) Transition(from, to, action string) *ProcessBuilder {
	pb.proc().Transitions = append(pb.proc().Transitions, input.TransitionDoc{From: from, To: to, Action: action})
	return pb
}

// Guard sets the guard of the last transition.
func (pb *ProcessBuilder) Guard(src string) *ProcessBuilder {
	if t := pb.last("Guard"); t != nil {
		t.Guard = src
	}
	return pb
}

// Effect sets the assignments of the last transition, e.g. "x = x+1; y = 0".
func (pb *ProcessBuilder) Effect(src string) *ProcessBuilder {
	if t := pb.last("Effect"); t != nil {
		t.Effect = src
	}
	return pb
}

// Process ends this process and starts the next one.
func (pb *ProcessBuilder) Process(name string) *ProcessBuilder {
	return pb.b.Process(name)
}

// Done ends the process.
func (pb *ProcessBuilder) Done() *SystemBuilder {
	return pb.b
}

func (pb *ProcessBuilder) proc() *input.ProcessDoc {
	return &pb.b.doc.Processes[pb.idx]
}

func (pb *ProcessBuilder) last(method string) *input.TransitionDoc {
	p := pb.proc()
	if len(p.Transitions) == 0 {
		pb.b.errs = append(pb.b.errs, fmt.Errorf("process %q: %s without a transition", p.Name, method))
		return nil
	}
	return &p.Transitions[len(p.Transitions)-1]
}
