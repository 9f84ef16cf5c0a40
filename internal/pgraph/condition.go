package pgraph

import (
	"fmt"
	"slices"

	"github.com/comalice/pg2hda/internal/expr"
	"github.com/comalice/pg2hda/internal/primitives"
)

// Condition is a predicate over the variable values of a system.
type Condition interface {
	Holds(s *System, vals []int) (bool, error)
	String() string
}

// Holds evaluates c, treating nil as true.
func Holds(c Condition, s *System, vals []int) (bool, error) {
	if c == nil {
		return true, nil
	}
	return c.Holds(s, vals)
}

// ExprCondition is a boolean expression. A nil Expr is true.
type ExprCondition struct {
	Expr *expr.Expr
}

// Holds implements Condition.
func (c ExprCondition) Holds(s *System, vals []int) (bool, error) {
	v, err := expr.Eval(c.Expr, valuation{s, vals})
	if err != nil {
		return false, fmt.Errorf("condition %s: %w", c.Expr, err)
	}
	return v != 0, nil
}

func (c ExprCondition) String() string {
	return c.Expr.String()
}

// TableCondition lists the evaluations of Vars under which it holds.
// A table over no variables is true.
type TableCondition struct {
	Name string
	Vars []string
	Rows [][]int
}

// Holds implements Condition.
func (c *TableCondition) Holds(s *System, vals []int) (bool, error) {
	if len(c.Vars) == 0 {
		return true, nil
	}
	row, err := project(s, c.Vars, vals)
	if err != nil {
		return false, err
	}
	return slices.ContainsFunc(c.Rows, func(r []int) bool { return slices.Equal(r, row) }), nil
}

func (c *TableCondition) String() string {
	if len(c.Vars) == 0 {
		return "true"
	}
	return c.Name
}

// rows returns the satisfying evaluations, one empty evaluation for a table
// over no variables.
func (c *TableCondition) rows() [][]int {
	if len(c.Vars) == 0 {
		return [][]int{{}}
	}
	return c.Rows
}

// project picks the values of names out of vals.
func project(s *System, names []string, vals []int) ([]int, error) {
	out := make([]int, len(names))
	for i, n := range names {
		j, ok := s.VarIndex(n)
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownVariable, n)
		}
		out[i] = vals[j]
	}
	return out, nil
}

// MergeConditions joins two tables: the result ranges over the variables of a
// followed by the new variables of b and keeps the combinations of rows that
// agree on shared variables.
func MergeConditions(a, b *TableCondition) *TableCondition {
	vars := primitives.Merge(a.Vars, b.Vars)
	pos := make([]int, len(b.Vars))
	for i, n := range b.Vars {
		pos[i] = slices.Index(vars, n)
	}
	merged := &TableCondition{Name: "merged", Vars: vars}
	for _, r1 := range a.rows() {
		for _, r2 := range b.rows() {
			row := make([]int, len(vars))
			copy(row, r1)
			ok := true
			for i, v := range r2 {
				j := pos[i]
				if j < len(a.Vars) && row[j] != v {
					ok = false
					break
				}
				row[j] = v
			}
			if ok {
				merged.Rows = append(merged.Rows, row)
			}
		}
	}
	return merged
}

// ExtendCondition extends c to every variable of s: a variable c does not
// constrain ranges over its domain. The returned vectors follow the variable
// order of s and are free of duplicates.
func ExtendCondition(c *TableCondition, s *System) [][]int {
	vars := slices.Clone(c.Vars)
	rows := c.rows()
	for _, v := range s.Vars {
		if slices.Contains(vars, v.Name) {
			continue
		}
		rows = primitives.Product(rows, primitives.Singletons(v.Domain))
		vars = append(vars, v.Name)
	}

	pos := make([]int, len(s.Vars))
	for i, v := range s.Vars {
		pos[i] = slices.Index(vars, v.Name)
	}
	var out [][]int
	for _, r := range rows {
		vec := make([]int, len(s.Vars))
		for i, j := range pos {
			vec[i] = r[j]
		}
		if !slices.ContainsFunc(out, func(o []int) bool { return slices.Equal(o, vec) }) {
			out = append(out, vec)
		}
	}
	return out
}
