package input

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/comalice/pg2hda/internal/expr"
	"github.com/comalice/pg2hda/internal/pgraph"
)

// documentValidate checks decoded documents; "expr" and "assignments" accept
// strings that parse as a guard or an effect.
var documentValidate *validator.Validate

func init() {
	documentValidate = validator.New()
	_ = documentValidate.RegisterValidation("expr", func(fl validator.FieldLevel) bool {
		_, err := expr.Parse(fl.Field().String())
		return err == nil
	})
	_ = documentValidate.RegisterValidation("assignments", func(fl validator.FieldLevel) bool {
		_, err := expr.ParseAssignments(fl.Field().String())
		return err == nil
	})
}

// Document is a system in the YAML input format.
type Document struct {
	Name      string        `yaml:"name,omitempty"`
	Variables []VariableDoc `yaml:"variables,omitempty" validate:"dive"`
	Processes []ProcessDoc  `yaml:"processes" validate:"required,min=1,dive"`
}

// VariableDoc declares a shared variable.
type VariableDoc struct {
	Name    string `yaml:"name" validate:"required"`
	Initial int    `yaml:"initial"`
	Domain  []int  `yaml:"domain,omitempty"`
}

// ProcessDoc declares one program graph. Locations are referenced by name.
type ProcessDoc struct {
	Name             string          `yaml:"name" validate:"required"`
	Locations        []string        `yaml:"locations" validate:"required,min=1,unique,dive,required"`
	Initial          string          `yaml:"initial" validate:"required"`
	Final            string          `yaml:"final,omitempty"`
	InitialCondition string          `yaml:"initial_condition,omitempty" validate:"omitempty,expr"`
	FinalCondition   string          `yaml:"final_condition,omitempty" validate:"omitempty,expr"`
	Transitions      []TransitionDoc `yaml:"transitions,omitempty" validate:"dive"`

	line int
}

// TransitionDoc declares a guarded transition with an optional effect.
type TransitionDoc struct {
	From   string `yaml:"from" validate:"required"`
	To     string `yaml:"to" validate:"required"`
	Action string `yaml:"action,omitempty"`
	Guard  string `yaml:"guard,omitempty" validate:"omitempty,expr"`
	Effect string `yaml:"effect,omitempty" validate:"omitempty,assignments"`

	line int
}

func (p *ProcessDoc) UnmarshalYAML(n *yaml.Node) error {
	type plain ProcessDoc
	if err := n.Decode((*plain)(p)); err != nil {
		return err
	}
	p.line = n.Line
	return nil
}

func (t *TransitionDoc) UnmarshalYAML(n *yaml.Node) error {
	type plain TransitionDoc
	if err := n.Decode((*plain)(t)); err != nil {
		return err
	}
	t.line = n.Line
	return nil
}

// DecodeDocument reads one YAML document.
func DecodeDocument(r io.Reader, file string) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &SyntaxError{File: file, Err: errors.New("empty document")}
		}
		return nil, &SyntaxError{File: file, Err: fmt.Errorf("yaml: %w", err)}
	}
	return &doc, nil
}

// ReadYAML decodes a YAML document and adds its variables and processes to
// sys. Variables already declared must agree on their domain.
func ReadYAML(sys *pgraph.System, r io.Reader, file string) error {
	doc, err := DecodeDocument(r, file)
	if err != nil {
		return err
	}
	return Compile(sys, doc, file)
}

// Compile validates doc and adds its variables and processes to sys. file
// only labels errors.
func Compile(sys *pgraph.System, doc *Document, file string) error {
	if err := documentValidate.Struct(doc); err != nil {
		return &SyntaxError{File: file, Err: err}
	}
	if sys.Name == "" {
		sys.Name = doc.Name
	}
	for _, v := range doc.Variables {
		if _, err := sys.AddVariable(pgraph.Variable{Name: v.Name, Domain: v.Domain, Initial: v.Initial}); err != nil {
			return &SyntaxError{File: file, Err: err}
		}
	}
	for _, pd := range doc.Processes {
		p, err := compileProcess(pd)
		if err != nil {
			return &SyntaxError{File: file, Line: pd.line, Err: err}
		}
		sys.AddProcess(p)
	}
	return nil
}

func compileProcess(pd ProcessDoc) (*pgraph.Process, error) {
	p := &pgraph.Process{Name: pd.Name, Final: pgraph.NoFinal}
	for _, l := range pd.Locations {
		p.Locations = append(p.Locations, pgraph.Location{Name: l})
	}
	var err error
	if p.Initial, err = p.LocationIndex(pd.Initial); err != nil {
		return nil, err
	}
	if pd.Final != "" {
		if p.Final, err = p.LocationIndex(pd.Final); err != nil {
			return nil, err
		}
	}
	if p.InitialCond, err = compileCondition(pd.InitialCondition); err != nil {
		return nil, err
	}
	if p.FinalCond, err = compileCondition(pd.FinalCondition); err != nil {
		return nil, err
	}
	for _, td := range pd.Transitions {
		t, err := compileTransition(p, td)
		if err != nil {
			if td.line > 0 {
				err = fmt.Errorf("line %d: %w", td.line, err)
			}
			return nil, err
		}
		p.Transitions = append(p.Transitions, t)
		if t.Action != nil && !slices.ContainsFunc(p.Actions, func(a pgraph.Action) bool { return a.Name() == t.Action.Name() }) {
			p.Actions = append(p.Actions, t.Action)
		}
	}
	return p, nil
}

func compileCondition(src string) (pgraph.Condition, error) {
	if src == "" {
		return nil, nil
	}
	e, err := expr.Parse(src)
	if err != nil {
		return nil, err
	}
	return pgraph.ExprCondition{Expr: e}, nil
}

func compileTransition(p *pgraph.Process, td TransitionDoc) (pgraph.Transition, error) {
	var t pgraph.Transition
	var err error
	if t.From, err = p.LocationIndex(td.From); err != nil {
		return t, err
	}
	if t.To, err = p.LocationIndex(td.To); err != nil {
		return t, err
	}
	if t.Guard, err = compileCondition(td.Guard); err != nil {
		return t, err
	}
	list, err := expr.ParseAssignments(td.Effect)
	if err != nil {
		return t, err
	}
	t.Action = &pgraph.Assignments{Label: td.Action, List: list}
	return t, nil
}
