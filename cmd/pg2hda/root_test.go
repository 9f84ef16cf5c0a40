package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testdata(name string) string {
	return filepath.Join("..", "..", "internal", "input", "testdata", name)
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("PG2HDA_LOG_LEVEL", "error")
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRoot_Formats(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "short summary",
			args: []string{"-s", testdata("counters.yaml")},
			want: []string{"System of 2 processes", "HDA model of dimension 2", "Euler characteristic: 1"},
		},
		{
			name: "input only",
			args: []string{"-i", testdata("counters.yaml")},
			want: []string{"int x = 0"},
		},
		{
			name: "chain complex",
			args: []string{"-c", testdata("counters.yaml")},
			want: []string{"chain complex", "max dimension = 2"},
		},
		{
			name: "legacy",
			args: []string{"--old", "--format", "short", testdata("a.pg"), testdata("b.pg")},
			want: []string{"System of 2 processes", "Degree 2: 1 element"},
		},
		{
			name: "dot",
			args: []string{"--dot", testdata("mutex_a.yaml"), testdata("mutex_b.yaml")},
			want: []string{"digraph", "enter@0"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, tt.args...)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestRoot_TSV(t *testing.T) {
	out, _, err := execute(t, "-t", testdata("counters.yaml"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 10)
}

func TestRoot_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no files", nil},
		{"missing file", []string{testdata("missing.yaml")}},
		{"exclusive formats", []string{"-s", "-c", testdata("counters.yaml")}},
		{"unknown format", []string{"--format", "svg", testdata("counters.yaml")}},
		{"state limit", []string{"--max-states", "2", testdata("counters.yaml")}},
		{"unknown exporter", []string{"--trace", "zipkin", testdata("counters.yaml")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestRoot_MetricsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pg2hda.prom")
	_, _, err := execute(t, "-s", "--metrics-file", path, testdata("counters.yaml"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `pg2hda_cubes_added_total{degree="2"} 1`)
	assert.Contains(t, string(data), `pg2hda_builds_total{result="ok"} 1`)
}

func TestRoot_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pg2hda.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  format: short\n"), 0o644))

	out, _, err := execute(t, "--config", path, testdata("counters.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "HDA model of dimension 2")
	assert.NotContains(t, out, "cube 0.1")
}

func TestBatch(t *testing.T) {
	a, b := testdata("counters.yaml"), testdata("mutex_a.yaml")
	out, _, err := execute(t, "batch", "-s", "-p", "2", a, b)
	require.NoError(t, err)

	first := strings.Index(out, "==> "+a+" <==")
	second := strings.Index(out, "==> "+b+" <==")
	require.GreaterOrEqual(t, first, 0)
	require.Greater(t, second, first)
	assert.Contains(t, out[first:second], "dimension 2")
	assert.Contains(t, out[second:], "dimension 1")
}

func TestConvert(t *testing.T) {
	out, _, err := execute(t, "convert", "--old", testdata("a.pg"), testdata("b.pg"))
	require.NoError(t, err)
	assert.Contains(t, out, "action: inc__1")

	path := filepath.Join(t.TempDir(), "ab.yaml")
	require.NoError(t, os.WriteFile(path, []byte(out), 0o644))
	short, _, err := execute(t, "-s", path)
	require.NoError(t, err)
	assert.Contains(t, short, "Degree 2: 1 element")

	saved := filepath.Join(t.TempDir(), "saved.yaml")
	_, _, err = execute(t, "convert", "--old", "-o", saved, testdata("a.pg"), testdata("b.pg"))
	require.NoError(t, err)
	data, err := os.ReadFile(saved)
	require.NoError(t, err)
	assert.Equal(t, out, string(data))
}
