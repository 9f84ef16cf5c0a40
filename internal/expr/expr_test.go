package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAndEval(t *testing.T) {
	env := MapEnv{"x": 3, "y": 0, "z": -2}
	tests := []struct {
		src  string
		want int
		text string
	}{
		{src: "1 + 2 * 3", want: 7, text: "1+2*3"},
		{src: "(1 + 2) * 3", want: 9, text: "(1+2)*3"},
		{src: "x - 1 - 1", want: 1, text: "x-1-1"},
		{src: "x / 2", want: 1, text: "x/2"},
		{src: "z / 2", want: -1, text: "z/2"},
		{src: "z % 3", want: -2, text: "z%3"},
		{src: "-x", want: -3, text: "-x"},
		{src: "!y", want: 1, text: "!y"},
		{src: "x == 3 && y == 0", want: 1, text: "x==3&&y==0"},
		{src: "x < 2 || y != 0", want: 0, text: "x<2||y!=0"},
		{src: "x >= 3", want: 1, text: "x>=3"},
		{src: "x <= 2", want: 0, text: "x<=2"},
		{src: "x > y == 1", want: 1, text: "x>y==1"},
		{src: "true", want: 1, text: "1"},
		{src: "false || x", want: 1, text: "0||x"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			e, err := Parse(tt.src)
			require.NoError(t, err)
			got, err := Eval(e, env)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.text, e.String())
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, src := range []string{"", "1 +", "(x", "x y", "x = 1", "a | b", "3 $ 4", ")"} {
		t.Run(src, func(t *testing.T) {
			_, err := Parse(src)
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestEvalErrors(t *testing.T) {
	e, err := Parse("x / y")
	require.NoError(t, err)
	_, err = Eval(e, MapEnv{"x": 1, "y": 0})
	assert.ErrorIs(t, err, ErrDivisionByZero)

	_, err = Eval(e, MapEnv{"x": 1})
	assert.ErrorIs(t, err, ErrUnboundVariable)
}

func TestShortCircuit(t *testing.T) {
	e, err := Parse("y != 0 && x / y > 1")
	require.NoError(t, err)
	ok, err := Holds(e, MapEnv{"x": 1, "y": 0})
	require.NoError(t, err)
	assert.False(t, ok)

	e, err = Parse("y == 0 || x / y > 1")
	require.NoError(t, err)
	ok, err = Holds(e, MapEnv{"x": 1, "y": 0})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNilExpressionIsTrue(t *testing.T) {
	ok, err := Holds(nil, nil)
	require.NoError(t, err)
	assert.True(t, ok)
	var e *Expr
	assert.Equal(t, "true", e.String())
}

func TestParseAssignments(t *testing.T) {
	as, err := ParseAssignments("x = x + 1; y = (x) * 2;")
	require.NoError(t, err)
	require.Len(t, as, 2)
	assert.Equal(t, "x=x+1", as[0].String())
	assert.Equal(t, "y=(x)*2", as[1].String())

	as, err = ParseAssignments("  ")
	require.NoError(t, err)
	assert.Empty(t, as)

	for _, src := range []string{"x", "x == 1", "1 = x", "x = 1 y = 2"} {
		_, err := ParseAssignments(src)
		assert.ErrorIs(t, err, ErrParse, src)
	}
}

func TestVars(t *testing.T) {
	e, err := Parse("x + y * x - (z)")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y", "z"}, Vars(e))
	assert.Nil(t, Vars(Number(1)))
}
