package input

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/comalice/pg2hda/internal/pgraph"
)

// ErrNotExpressible reports a system the YAML format cannot describe.
var ErrNotExpressible = errors.New("not expressible in the YAML format")

// Export describes sys as a YAML document. Evaluation tables become
// disjunctions of equalities and every row of an evaluation map becomes a
// transition of its own. A legacy system must have exactly one initial
// state, which fixes the initial values.
func Export(sys *pgraph.System) (*Document, error) {
	doc := &Document{Name: sys.Name}
	initial := make([]int, len(sys.Vars))
	for i, v := range sys.Vars {
		initial[i] = v.Initial
	}
	if sys.Mode == pgraph.ModeLegacy {
		states, err := sys.InitialStates()
		if err != nil {
			return nil, err
		}
		if len(states) != 1 {
			return nil, fmt.Errorf("%w: %d initial states", ErrNotExpressible, len(states))
		}
		initial = states[0].(pgraph.State).Vals
	}
	for i, v := range sys.Vars {
		doc.Variables = append(doc.Variables, VariableDoc{Name: v.Name, Initial: initial[i], Domain: v.Domain})
	}
	for _, p := range sys.Procs {
		pd, err := exportProcess(sys, p)
		if err != nil {
			return nil, fmt.Errorf("process %q: %w", p.Name, err)
		}
		doc.Processes = append(doc.Processes, pd)
	}
	return doc, nil
}

func exportProcess(sys *pgraph.System, p *pgraph.Process) (ProcessDoc, error) {
	pd := ProcessDoc{Name: p.Name, Initial: p.LocationName(p.Initial)}
	for i := range p.Locations {
		pd.Locations = append(pd.Locations, p.LocationName(i))
	}
	if p.HasFinal() {
		pd.Final = p.LocationName(p.Final)
	}
	// Legacy initial conditions are folded into the initial values.
	if sys.Mode != pgraph.ModeLegacy {
		pd.InitialCondition = conditionSource(p.InitialCond)
	}
	pd.FinalCondition = conditionSource(p.FinalCond)

	for _, t := range p.Transitions {
		base := TransitionDoc{
			From:  p.LocationName(t.From),
			To:    p.LocationName(t.To),
			Guard: conditionSource(t.Guard),
		}
		switch a := t.Action.(type) {
		case nil:
			pd.Transitions = append(pd.Transitions, base)
		case *pgraph.Assignments:
			base.Action = a.Label
			base.Effect = a.Effect()
			pd.Transitions = append(pd.Transitions, base)
		case *pgraph.MapAction:
			for r := range a.In {
				td := base
				td.Action = a.Label
				td.Guard = conjunction(base.Guard, equalities(a.Vars, a.In[r], " && "))
				td.Effect = assignments(a.Vars, a.Out[r])
				pd.Transitions = append(pd.Transitions, td)
			}
		default:
			return pd, fmt.Errorf("%w: action %T", ErrNotExpressible, t.Action)
		}
	}
	return pd, nil
}

// conditionSource renders c as a guard expression; "" is true.
func conditionSource(c pgraph.Condition) string {
	switch c := c.(type) {
	case nil:
		return ""
	case *pgraph.TableCondition:
		if len(c.Vars) == 0 {
			return ""
		}
		if len(c.Rows) == 0 {
			return "0"
		}
		terms := make([]string, len(c.Rows))
		for i, row := range c.Rows {
			terms[i] = equalities(c.Vars, row, " && ")
			if len(c.Rows) > 1 && len(c.Vars) > 1 {
				terms[i] = "(" + terms[i] + ")"
			}
		}
		return strings.Join(terms, " || ")
	default:
		return c.String()
	}
}

func equalities(vars []string, vals []int, sep string) string {
	parts := make([]string, len(vars))
	for i, v := range vars {
		parts[i] = v + " == " + strconv.Itoa(vals[i])
	}
	return strings.Join(parts, sep)
}

func assignments(vars []string, vals []int) string {
	parts := make([]string, len(vars))
	for i, v := range vars {
		parts[i] = v + " = " + strconv.Itoa(vals[i])
	}
	return strings.Join(parts, "; ")
}

func conjunction(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return "(" + a + ") && (" + b + ")"
}

// WriteYAML encodes sys in the YAML input format.
func WriteYAML(w io.Writer, sys *pgraph.System) error {
	doc, err := Export(sys)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}
	return enc.Close()
}

// SaveYAML writes sys to the file at path.
func SaveYAML(path string, sys *pgraph.System) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteYAML(f, sys); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
