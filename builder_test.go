package pg2hda_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/pg2hda"
	"github.com/comalice/pg2hda/internal/input"
	"github.com/comalice/pg2hda/internal/pgraph"
)

func pair(t *testing.T) *pgraph.System {
	t.Helper()
	sys, err := pg2hda.NewSystem("pair").
		Process("A").Locations("idle", "done").Initial("idle").Final("done").
		Transition("idle", "done", "a").Done().
		Process("B").Locations("idle", "done").Initial("idle").Final("done").
		Transition("idle", "done", "b").Done().
		Build()
	require.NoError(t, err)
	return sys
}

func TestBuilderIndependentPair(t *testing.T) {
	sys := pair(t)
	assert.Equal(t, "pair", sys.Name)
	assert.Equal(t, pgraph.ModeCurrent, sys.Mode)
	require.Len(t, sys.Procs, 2)
	assert.Equal(t, 1, sys.Procs[0].Final)

	res, err := pg2hda.Build(context.Background(), sys, pg2hda.Options{})
	require.NoError(t, err)
	assert.Equal(t, []int{4, 4, 1}, res.Complex.Ranks())
	assert.Equal(t, 2, res.Dim)
	assert.Same(t, sys, res.System)
}

func TestBuilderGuardsAndEffects(t *testing.T) {
	sys, err := pg2hda.NewSystem("race").
		Var("x", 0, 0, 1).
		Process("A").Locations("idle", "done").Initial("idle").Final("done").
		Transition("idle", "done", "set").Guard("x == 0").Effect("x = 1").
		Process("B").Locations("idle", "done").Initial("idle").Final("done").
		Transition("idle", "done", "set").Guard("x == 0").Effect("x = 1").
		Done().
		Build()
	require.NoError(t, err)

	res, err := pg2hda.Build(context.Background(), sys, pg2hda.Options{})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, res.Complex.Ranks())
	assert.Len(t, res.Complex.Deadlocks(), 2)
}

func TestBuilderDefaultActionName(t *testing.T) {
	sys, err := pg2hda.NewSystem("named").
		Var("x", 0).
		Process("A").Locations("l0", "l1").Initial("l0").
		Transition("l0", "l1", "").Effect("x = 1").
		Transition("l1", "l0", "").
		Done().
		Build()
	require.NoError(t, err)

	states, err := sys.InitialStates()
	require.NoError(t, err)
	steps, err := sys.Enabled(states[0])
	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.Equal(t, "x=1", steps[0].Action)

	steps, err = sys.Enabled(steps[0].Next)
	require.NoError(t, err)
	assert.Equal(t, pgraph.Tau, steps[0].Action)
	assert.False(t, sys.Procs[0].HasFinal())
}

func TestBuilderConditions(t *testing.T) {
	sys, err := pg2hda.NewSystem("cond").
		Var("x", 1).
		Process("A").Locations("l0").Initial("l0").Final("l0").
		InitialCondition("x == 0").FinalCondition("x == 1").
		Done().
		Build()
	require.NoError(t, err)

	states, err := sys.InitialStates()
	require.NoError(t, err)
	assert.Empty(t, states)
}

func TestBuilderErrors(t *testing.T) {
	tests := []struct {
		name    string
		build   func() (*pgraph.System, error)
		wantErr error
	}{
		{
			name: "guard before transition",
			build: func() (*pgraph.System, error) {
				return pg2hda.NewSystem("s").
					Process("A").Locations("l").Initial("l").Guard("x == 0").Done().
					Build()
			},
		},
		{
			name: "unknown location",
			build: func() (*pgraph.System, error) {
				return pg2hda.NewSystem("s").
					Process("A").Locations("l").Initial("nope").Done().
					Build()
			},
			wantErr: pgraph.ErrUnknownLocation,
		},
		{
			name: "bad guard",
			build: func() (*pgraph.System, error) {
				return pg2hda.NewSystem("s").
					Process("A").Locations("l").Initial("l").
					Transition("l", "l", "a").Guard("x ==").Done().
					Build()
			},
			wantErr: input.ErrSyntax,
		},
		{
			name: "no process",
			build: func() (*pgraph.System, error) {
				return pg2hda.NewSystem("s").Var("x", 0).Build()
			},
			wantErr: input.ErrSyntax,
		},
		{
			name: "undeclared variable",
			build: func() (*pgraph.System, error) {
				return pg2hda.NewSystem("s").
					Process("A").Locations("l").Initial("l").
					Transition("l", "l", "a").Effect("y = 1").Done().
					Build()
			},
			wantErr: pgraph.ErrInvalidSystem,
		},
		{
			name: "initial outside domain",
			build: func() (*pgraph.System, error) {
				return pg2hda.NewSystem("s").Var("x", 3, 0, 1).
					Process("A").Locations("l").Initial("l").Done().
					Build()
			},
			wantErr: pgraph.ErrInvalidSystem,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys, err := tt.build()
			require.Error(t, err)
			assert.Nil(t, sys)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
