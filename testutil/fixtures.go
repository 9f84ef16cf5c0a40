package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/comalice/pg2hda/internal/core"
	"github.com/comalice/pg2hda/internal/cube"
	"github.com/comalice/pg2hda/internal/expr"
	"github.com/comalice/pg2hda/internal/pgraph"
)

func mustAssign(src string) []expr.Assignment {
	list, err := expr.ParseAssignments(src)
	if err != nil {
		panic(err)
	}
	return list
}

func mustGuard(src string) pgraph.Condition {
	e, err := expr.Parse(src)
	if err != nil {
		panic(err)
	}
	return pgraph.ExprCondition{Expr: e}
}

// Counters returns n processes P0..Pn-1; process i sets its own variable xi
// from 0 to 1 with action "inc". The processes never interact.
func Counters(n int) *pgraph.System {
	s := pgraph.NewSystem(fmt.Sprintf("counters%d", n), pgraph.ModeCurrent)
	for i := range n {
		v := fmt.Sprintf("x%d", i)
		if _, err := s.AddVariable(pgraph.Variable{Name: v, Domain: []int{0, 1}}); err != nil {
			panic(err)
		}
		inc := &pgraph.Assignments{Label: "inc", List: mustAssign(v + " = 1")}
		s.AddProcess(&pgraph.Process{
			Name:        fmt.Sprintf("P%d", i),
			Locations:   []pgraph.Location{{Name: "start"}, {Name: "done"}},
			Transitions: []pgraph.Transition{{From: 0, To: 1, Action: inc}},
			Vars:        []string{v},
			Actions:     []pgraph.Action{inc},
			Final:       1,
		})
	}
	return s
}

// Mutex returns two processes that enter and leave a critical section
// guarded by a shared lock.
func Mutex() *pgraph.System {
	s := pgraph.NewSystem("mutex", pgraph.ModeCurrent)
	if _, err := s.AddVariable(pgraph.Variable{Name: "lock", Domain: []int{0, 1}}); err != nil {
		panic(err)
	}
	for _, name := range []string{"A", "B"} {
		enter := &pgraph.Assignments{Label: "enter", List: mustAssign("lock = 1")}
		leave := &pgraph.Assignments{Label: "leave", List: mustAssign("lock = 0")}
		s.AddProcess(&pgraph.Process{
			Name:      name,
			Locations: []pgraph.Location{{Name: "idle"}, {Name: "crit"}, {Name: "out"}},
			Transitions: []pgraph.Transition{
				{From: 0, To: 1, Guard: mustGuard("lock == 0"), Action: enter},
				{From: 1, To: 2, Action: leave},
			},
			Vars:    []string{"lock"},
			Actions: []pgraph.Action{enter, leave},
			Final:   2,
		})
	}
	return s
}

// Stuck returns one process that can move once to a location without
// outgoing transitions that is not final.
func Stuck() *pgraph.System {
	s := pgraph.NewSystem("stuck", pgraph.ModeCurrent)
	s.AddProcess(&pgraph.Process{
		Name:        "P",
		Locations:   []pgraph.Location{{Name: "run"}, {Name: "stuck"}, {Name: "end"}},
		Transitions: []pgraph.Transition{{From: 0, To: 1, Action: &pgraph.Assignments{Label: "step"}}},
		Final:       2,
	})
	return s
}

// Build validates o when it is a system and returns its complex.
func Build(t testing.TB, o core.Oracle, opts ...core.Option) *cube.Complex {
	t.Helper()
	if sys, ok := o.(*pgraph.System); ok {
		require.NoError(t, sys.Validate())
	}
	res, err := core.NewExplorer(o, opts...).MakeHDA(context.Background())
	require.NoError(t, err)
	return res.Complex
}
