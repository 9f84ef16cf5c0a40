package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func noDotenv(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", noDotenv(t))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 4, cfg.Batch.Parallelism)
	assert.Equal(t, "current", cfg.Input.Mode)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeFile(t, "pg2hda.yaml", `
input:
  mode: legacy
output:
  format: tsv
build:
  max_states: 100
log:
  level: debug
`)
	t.Setenv("PG2HDA_OUTPUT_FORMAT", "chain")
	t.Setenv("PG2HDA_BUILD_MAX_STATES", "7")

	cfg, err := Load(path, noDotenv(t))
	require.NoError(t, err)
	assert.Equal(t, "legacy", cfg.Input.Mode)
	assert.Equal(t, "chain", cfg.Output.Format)
	assert.Equal(t, 7, cfg.Build.MaxStates)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_Dotenv(t *testing.T) {
	env := writeFile(t, ".env", "PG2HDA_BATCH_PARALLELISM=2\nPG2HDA_TELEMETRY_TRACE_EXPORTER=stdout\n")
	t.Cleanup(func() {
		os.Unsetenv("PG2HDA_BATCH_PARALLELISM")
		os.Unsetenv("PG2HDA_TELEMETRY_TRACE_EXPORTER")
	})

	cfg, err := Load("", env)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Batch.Parallelism)
	assert.Equal(t, "stdout", cfg.Telemetry.TraceExporter)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
	}{
		{"unknown mode", "input:\n  mode: pml\n", nil},
		{"unknown field", "inputs:\n  mode: legacy\n", nil},
		{"negative limit", "", map[string]string{"PG2HDA_BUILD_MAX_STATES": "-1"}},
		{"bad number", "", map[string]string{"PG2HDA_BATCH_PARALLELISM": "many"}},
		{"file output without path", "log:\n  output: file\n", nil},
		{"unknown exporter", "telemetry:\n  trace_exporter: otlp\n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.file != "" {
				path = writeFile(t, "c.yaml", tt.file)
			}
			_, err := Load(path, noDotenv(t))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), noDotenv(t))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
