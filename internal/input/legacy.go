package input

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/comalice/pg2hda/internal/pgraph"
)

// tokens yields the first whitespace-delimited token of every non-blank line.
// The rest of a line is commentary.
type tokens struct {
	sc   *bufio.Scanner
	file string
	line int
}

func newTokens(r io.Reader, file string) *tokens {
	return &tokens{sc: bufio.NewScanner(r), file: file}
}

func (t *tokens) errorf(format string, args ...any) error {
	return &SyntaxError{File: t.file, Line: t.line, Err: fmt.Errorf(format, args...)}
}

func (t *tokens) wrap(err error) error {
	return &SyntaxError{File: t.file, Line: t.line, Err: err}
}

func (t *tokens) word(what string) (string, error) {
	for t.sc.Scan() {
		t.line++
		if f := strings.Fields(t.sc.Text()); len(f) > 0 {
			return f[0], nil
		}
	}
	if err := t.sc.Err(); err != nil {
		return "", fmt.Errorf("read %s: %w", t.file, err)
	}
	return "", t.errorf("unexpected end of input, want %s", what)
}

// int reads an integer in C notation: decimal, 0x hexadecimal or 0 octal.
func (t *tokens) int(what string) (int, error) {
	w, err := t.word(what)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(w, 0, 0)
	if err != nil {
		return 0, t.errorf("%s: %q is not an integer", what, w)
	}
	return int(n), nil
}

func (t *tokens) count(what string) (int, error) {
	n, err := t.int(what)
	if err == nil && n < 0 {
		err = t.errorf("%s: negative count %d", what, n)
	}
	return n, err
}

// maxLocations bounds the location count of a single process file.
const maxLocations = 1 << 20

type legacyHeader struct {
	vars, acts, trans   int
	initVars, initEvals int
	final               bool
	finVars, finEvals   int
	name                string
}

// legacyReader reads one process file into a shared system.
type legacyReader struct {
	*tokens
	sys  *pgraph.System
	proc *pgraph.Process
	// suffix is appended to action names when several files form the system.
	suffix string
}

// ReadLegacy reads a process in the line-oriented legacy format and adds it
// to sys. pid is the process id the file will get, or -1 when the system has
// a single file; action names of a multi-file system carry the suffix "__pid".
func ReadLegacy(sys *pgraph.System, r io.Reader, file string, pid int) error {
	lr := &legacyReader{tokens: newTokens(r, file), sys: sys, proc: &pgraph.Process{Final: pgraph.NoFinal}}
	if pid >= 0 {
		lr.suffix = fmt.Sprintf("__%d", pid)
	}
	if err := lr.read(); err != nil {
		return err
	}
	sys.AddProcess(lr.proc)
	return nil
}

func (lr *legacyReader) read() error {
	h, err := lr.header()
	if err != nil {
		return err
	}
	lr.proc.Name = h.name
	if err := lr.variables(h.vars); err != nil {
		return err
	}
	if err := lr.locations(); err != nil {
		return err
	}
	if err := lr.actions(h.acts); err != nil {
		return err
	}
	if err := lr.transitions(h.trans); err != nil {
		return err
	}
	loc, cond, err := lr.state("initial", h.initVars, h.initEvals)
	if err != nil {
		return err
	}
	lr.proc.Initial, lr.proc.InitialCond = loc, cond
	if h.final {
		loc, cond, err := lr.state("final", h.finVars, h.finEvals)
		if err != nil {
			return err
		}
		lr.proc.Final, lr.proc.FinalCond = loc, cond
	}
	return nil
}

func (lr *legacyReader) header() (legacyHeader, error) {
	var h legacyHeader
	var final int
	fields := []struct {
		what string
		dst  *int
	}{
		{"number of variables", &h.vars},
		{"number of actions", &h.acts},
		{"number of transitions", &h.trans},
		{"initial condition variables", &h.initVars},
		{"initial condition evaluations", &h.initEvals},
		{"final flag", &final},
		{"final condition variables", &h.finVars},
		{"final condition evaluations", &h.finEvals},
	}
	for _, f := range fields {
		n, err := lr.count(f.what)
		if err != nil {
			return h, err
		}
		*f.dst = n
	}
	h.final = final != 0
	name, err := lr.word("process name")
	h.name = name
	return h, err
}

func (lr *legacyReader) variables(n int) error {
	for range n {
		name, err := lr.word("variable name")
		if err != nil {
			return err
		}
		d, err := lr.count("domain size of " + name)
		if err != nil {
			return err
		}
		v := pgraph.Variable{Name: name}
		for range d {
			x, err := lr.int("domain value of " + name)
			if err != nil {
				return err
			}
			v.Domain = append(v.Domain, x)
		}
		if len(v.Domain) > 0 {
			v.Initial = v.Domain[0]
		}
		if _, err := lr.sys.AddVariable(v); err != nil {
			return lr.wrap(err)
		}
		lr.proc.Vars = append(lr.proc.Vars, name)
	}
	return nil
}

func (lr *legacyReader) locations() error {
	n, err := lr.count("number of locations")
	if err != nil {
		return err
	}
	if n > maxLocations {
		return lr.errorf("number of locations: %d exceeds %d", n, maxLocations)
	}
	lr.proc.Locations = make([]pgraph.Location, n)
	return nil
}

// varNames reads n names of variables declared by the process.
func (lr *legacyReader) varNames(n int) ([]string, error) {
	var names []string
	for range n {
		w, err := lr.word("variable name")
		if err != nil {
			return nil, err
		}
		if !slices.Contains(lr.proc.Vars, w) {
			return nil, lr.wrap(fmt.Errorf("%w %q", pgraph.ErrUnknownVariable, w))
		}
		names = append(names, w)
	}
	return names, nil
}

func (lr *legacyReader) row(n int, what string) ([]int, error) {
	var row []int
	for range n {
		v, err := lr.int(what)
		if err != nil {
			return nil, err
		}
		row = append(row, v)
	}
	return row, nil
}

func (lr *legacyReader) actions(n int) error {
	for range n {
		name, err := lr.word("action name")
		if err != nil {
			return err
		}
		nv, err := lr.count("action variables")
		if err != nil {
			return err
		}
		ne, err := lr.count("action evaluations")
		if err != nil {
			return err
		}
		a := &pgraph.MapAction{Label: name + lr.suffix}
		if a.Vars, err = lr.varNames(nv); err != nil {
			return err
		}
		for range ne {
			in, err := lr.row(nv, "input value of "+name)
			if err != nil {
				return err
			}
			out, err := lr.row(nv, "output value of "+name)
			if err != nil {
				return err
			}
			a.In = append(a.In, in)
			a.Out = append(a.Out, out)
		}
		lr.proc.Actions = append(lr.proc.Actions, a)
	}
	return nil
}

func (lr *legacyReader) location(what string) (int, error) {
	l, err := lr.int(what)
	if err != nil {
		return 0, err
	}
	if l < 0 || l >= len(lr.proc.Locations) {
		return 0, lr.wrap(fmt.Errorf("%w: %s %d", pgraph.ErrUnknownLocation, what, l))
	}
	return l, nil
}

// condition reads the variables, evaluations and name of a table over nv
// variables. A table over no variables has neither and is true.
func (lr *legacyReader) condition(nv, ne int) (pgraph.Condition, error) {
	if nv == 0 {
		return nil, nil
	}
	names, err := lr.varNames(nv)
	if err != nil {
		return nil, err
	}
	c := &pgraph.TableCondition{Vars: names}
	for range ne {
		r, err := lr.row(nv, "evaluation value")
		if err != nil {
			return nil, err
		}
		c.Rows = append(c.Rows, r)
	}
	if c.Name, err = lr.word("condition name"); err != nil {
		return nil, err
	}
	if ne == 0 {
		return nil, lr.wrap(fmt.Errorf("%w: %s", pgraph.ErrUnsatisfiable, c.Name))
	}
	return c, nil
}

func (lr *legacyReader) transitions(n int) error {
	for range n {
		nv, err := lr.count("guard variables")
		if err != nil {
			return err
		}
		ne, err := lr.count("guard evaluations")
		if err != nil {
			return err
		}
		var t pgraph.Transition
		if t.From, err = lr.location("start location"); err != nil {
			return err
		}
		if t.To, err = lr.location("end location"); err != nil {
			return err
		}
		if t.Guard, err = lr.condition(nv, ne); err != nil {
			return err
		}
		name, err := lr.word("transition action")
		if err != nil {
			return err
		}
		name += lr.suffix
		i := slices.IndexFunc(lr.proc.Actions, func(a pgraph.Action) bool { return a.Name() == name })
		if i < 0 {
			return lr.errorf("undeclared action %q", name)
		}
		t.Action = lr.proc.Actions[i]
		lr.proc.Transitions = append(lr.proc.Transitions, t)
	}
	return nil
}

func (lr *legacyReader) state(what string, nv, ne int) (int, pgraph.Condition, error) {
	loc, err := lr.location(what + " location")
	if err != nil {
		return 0, nil, err
	}
	cond, err := lr.condition(nv, ne)
	if err != nil {
		return 0, nil, fmt.Errorf("%s condition: %w", what, err)
	}
	return loc, cond, nil
}
