package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/pg2hda/internal/pgraph"
	"github.com/comalice/pg2hda/testutil"
)

func TestSummary_Short(t *testing.T) {
	sys := testutil.Counters(2)
	cx := testutil.Build(t, sys)

	var buf bytes.Buffer
	require.NoError(t, Summary(&buf, sys, cx, true))
	want := "\nSystem of 2 processes\n" +
		"\n" +
		"Process 0: P0\nProcess 1: P1\n" +
		"\nHDA model of dimension 2 with 9 elements and 12 boundaries\n\n" +
		"Degree 0: 4 elements\n" +
		"Degree 1: 4 elements (8 boundaries)\n" +
		"Degree 2: 1 element (4 boundaries)\n" +
		"\n0 deadlocks\n\n" +
		"Euler characteristic: 1\n\n"
	assert.Equal(t, want, buf.String())
}

func TestSummary_Full(t *testing.T) {
	sys := testutil.Counters(2)
	cx := testutil.Build(t, sys)

	var buf bytes.Buffer
	require.NoError(t, Summary(&buf, sys, cx, false))
	out := buf.String()
	for _, s := range []string{
		"2 variables",
		"int x0 = 0\tdomain: 0 1",
		"cube 0.1: (0,0,0,0)  initial\n",
		"cube 0.4: (1,1,1,1)  final\n",
		"cube 1.1: (0,0,0,0)  (inc)\n",
		"cube 2.1: (0,0,0,0)  (inc,  inc)\n",
		"Euler characteristic: 1",
	} {
		assert.Contains(t, out, s)
	}
}

func TestSummary_Deadlock(t *testing.T) {
	sys := testutil.Stuck()
	cx := testutil.Build(t, sys)

	var buf bytes.Buffer
	require.NoError(t, Summary(&buf, sys, cx, false))
	assert.Contains(t, buf.String(), "System of 1 process\n")
	assert.Contains(t, buf.String(), "Process: P\n")
	assert.Contains(t, buf.String(), "cube 0.2: (1)  deadlock\n")
	assert.Contains(t, buf.String(), "\n1 deadlock\n")
}

func TestChainComplex(t *testing.T) {
	cx := testutil.Build(t, testutil.Counters(2))

	var buf bytes.Buffer
	require.NoError(t, ChainComplex(&buf, cx))
	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "chain complex", lines[0])
	assert.Equal(t, "max dimension = 2", lines[2])
	assert.Equal(t, "dimension 0: 4", lines[4])
	assert.Equal(t, "boundary 0.1:1 = ", lines[6])
	assert.Contains(t, buf.String(), "boundary 1.1:(inc) = + 0.1:1 + 0.2:1 \n")

	var square string
	for _, l := range lines {
		if strings.HasPrefix(l, "boundary 2.1:") {
			square = l
		}
	}
	assert.True(t, strings.HasPrefix(square, "boundary 2.1:(inc)*(inc) = "))
	assert.Equal(t, 4, strings.Count(square, ":(inc) "))
}

func TestTSV(t *testing.T) {
	cx := testutil.Build(t, testutil.Counters(2))

	var buf bytes.Buffer
	require.NoError(t, TSV(&buf, cx))
	rows := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, rows, 10)

	header := strings.Split(rows[0], "\t")
	assert.Len(t, header, 2*2+7)
	assert.Equal(t, `"d^1_2"`, header[5])
	assert.Equal(t, `"origin"`, header[10])

	assert.Equal(t, `"0"	"0.1"	""	""	""	""	"()"	"y"	""	""	"(0,0,0,0)"`, rows[1])
	assert.Equal(t, `"1"	"1.1"	"0.1"	""	"0.2"	""	"(inc)"	""	""	""	"(0,0,0,0)"`, rows[5])
	assert.True(t, strings.HasPrefix(rows[9], `"2"	"2.1"	"1.`))
	assert.True(t, strings.HasSuffix(rows[9], `"(inc, inc)"	""	""	""	"(0,0,0,0)"`))
	for _, r := range rows {
		assert.Len(t, strings.Split(r, "\t"), 11)
	}
}

func TestDOT(t *testing.T) {
	sys := testutil.Counters(2)
	cx := testutil.Build(t, sys)

	var buf bytes.Buffer
	require.NoError(t, DOT(&buf, sys, cx))
	dot := buf.String()
	assert.True(t, strings.HasPrefix(dot, `digraph "counters2" {`))
	assert.Contains(t, dot, `"0.1" [label="(0,0,0,0)" style="rounded,filled" fillcolor=lightgreen];`)
	assert.Contains(t, dot, `"0.4" [label="(1,1,1,1)" peripheries=2];`)
	assert.Contains(t, dot, `"0.1" -> "0.2" [label="inc@0"];`)
	assert.Contains(t, dot, "// cube 2.1 at 0.1: (inc)*(inc)")
}

func TestSystem_Current(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, System(&buf, testutil.Mutex()))
	out := buf.String()
	for _, s := range []string{
		"Process 0: A\n",
		"3 locations",
		"0:idle\t1:crit\t2:out\t",
		"enter\n   lock=1\n",
		"guard condition:\tlock==0\n",
		"final location:\t\tout",
	} {
		assert.Contains(t, out, s)
	}
	assert.NotContains(t, out, "HDA model")
}

func TestSystem_Legacy(t *testing.T) {
	sys := pgraph.NewSystem("legacy", pgraph.ModeLegacy)
	_, err := sys.AddVariable(pgraph.Variable{Name: "x", Domain: []int{0, 1}})
	require.NoError(t, err)
	inc := &pgraph.MapAction{Label: "inc", Vars: []string{"x"}, In: [][]int{{0}}, Out: [][]int{{1}}}
	sys.AddProcess(&pgraph.Process{
		Name:        "P",
		Locations:   make([]pgraph.Location, 2),
		Transitions: []pgraph.Transition{{From: 0, To: 1, Action: inc}},
		Vars:        []string{"x"},
		Actions:     []pgraph.Action{inc},
		Final:       pgraph.NoFinal,
		InitialCond: &pgraph.TableCondition{Name: "x0", Vars: []string{"x"}, Rows: [][]int{{0}}},
	})

	var buf bytes.Buffer
	require.NoError(t, System(&buf, sys))
	out := buf.String()
	for _, s := range []string{
		"Process: P\n",
		"1 variable\n",
		"x\tdomain:\t\t0\t1\t\n",
		"0\t1\t",
		"inc\n\tx\n\t0\t->\t1\n\n\n\n1 transition\n\nstart location:",
		"guard condition:\ttrue\n",
		"initial condition:\tx0\n\tx\n\t0\n",
		"final location:\t\tnone\n",
	} {
		assert.Contains(t, out, s)
	}
}

func TestRender_Dispatch(t *testing.T) {
	sys := testutil.Stuck()
	cx := testutil.Build(t, sys)
	for _, f := range Formats {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Render(&buf, f, sys, cx))
			assert.NotEmpty(t, buf.String())
		})
	}

	f, err := ParseFormat("TSV")
	require.NoError(t, err)
	assert.Equal(t, FormatTSV, f)
	assert.False(t, FormatInput.NeedsComplex())
	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, assert.AnError }

func TestRender_WriteError(t *testing.T) {
	sys := testutil.Counters(1)
	cx := testutil.Build(t, sys)
	for _, f := range Formats {
		assert.ErrorIs(t, Render(failingWriter{}, f, sys, cx), assert.AnError, string(f))
	}
}
