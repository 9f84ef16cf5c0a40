package extensibility

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/pg2hda/internal/core"
	"github.com/comalice/pg2hda/testutil"
)

type broken struct{ testutil.Independent }

func (broken) Enabled(core.State) ([]core.Step, error) { return nil, errors.New("boom") }

func entries(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestLoggingOracle_Delegates(t *testing.T) {
	var buf bytes.Buffer
	inner := testutil.Independent{K: 2}
	o := NewLoggingOracle(inner, zerolog.New(&buf).Level(zerolog.TraceLevel))
	assert.Equal(t, inner, o.Unwrap())

	states, err := o.InitialStates()
	require.NoError(t, err)
	require.Len(t, states, 1)

	steps, err := o.Enabled(states[0])
	require.NoError(t, err)
	assert.Len(t, steps, 2)

	final, err := o.IsFinal(steps[0].Next)
	require.NoError(t, err)
	assert.False(t, final)

	logs := entries(t, &buf)
	require.Len(t, logs, 2)
	assert.Equal(t, "initial states", logs[0]["message"])
	assert.Equal(t, "enabled", logs[1]["message"])
	assert.Equal(t, "oracle", logs[1]["component"])
	assert.Equal(t, []any{"a0", "a1"}, logs[1]["actions"])
}

func TestLoggingOracle_Error(t *testing.T) {
	var buf bytes.Buffer
	o := NewLoggingOracle(broken{testutil.Independent{K: 1}}, zerolog.New(&buf).Level(zerolog.TraceLevel))

	_, err := o.Enabled(testutil.Flags{K: 1})
	assert.EqualError(t, err, "boom")
	logs := entries(t, &buf)
	require.Len(t, logs, 1)
	assert.Equal(t, "boom", logs[0]["error"])
}

func TestLoggingOracle_Quiet(t *testing.T) {
	var buf bytes.Buffer
	o := NewLoggingOracle(testutil.Independent{K: 3}, zerolog.New(&buf).Level(zerolog.InfoLevel))

	cx := testutil.Build(t, o)
	assert.Equal(t, []int{8, 12, 6, 1}, cx.Ranks())
	assert.Empty(t, buf.String())
}
