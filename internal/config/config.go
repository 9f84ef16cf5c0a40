// Package config loads the tool configuration. Values are layered: defaults,
// then an optional YAML file, then a .env file, then PG2HDA_* environment
// variables. Command-line flags are applied last by the caller.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable, e.g. PG2HDA_LOG_LEVEL.
const EnvPrefix = "PG2HDA"

type Config struct {
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	Build     BuildConfig     `yaml:"build"`
	Batch     BatchConfig     `yaml:"batch"`
	Log       LogConfig       `yaml:"log"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

type InputConfig struct {
	// Mode is "current" for YAML program graphs or "legacy" for the
	// line-oriented one-process-per-file format.
	Mode string `yaml:"mode" envconfig:"MODE" validate:"oneof=current legacy"`
}

type OutputConfig struct {
	Format string `yaml:"format" envconfig:"FORMAT" validate:"oneof=summary short input chain tsv dot"`
}

type BuildConfig struct {
	// MaxStates stops a construction that discovers more states. 0 is unlimited.
	MaxStates int `yaml:"max_states" envconfig:"MAX_STATES" validate:"gte=0"`
}

type BatchConfig struct {
	Parallelism int `yaml:"parallelism" envconfig:"PARALLELISM" validate:"gte=1"`
}

type LogConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=trace debug info warn error disabled"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json console"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=stderr stdout file"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_if=Output file"`
}

type TelemetryConfig struct {
	TraceExporter string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=none stdout"`
}

type MetricsConfig struct {
	// File receives the construction metrics in Prometheus text format.
	File string `yaml:"file" envconfig:"FILE"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Input:     InputConfig{Mode: "current"},
		Output:    OutputConfig{Format: "summary"},
		Batch:     BatchConfig{Parallelism: 4},
		Log:       LogConfig{Level: "warn", Format: "console", Output: "stderr"},
		Telemetry: TelemetryConfig{TraceExporter: "none"},
	}
}

var validate = validator.New()

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Load builds the configuration from path (optional), the given .env files
// (".env" when none is given; missing files are ignored) and the environment.
func Load(path string, dotenv ...string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}
	if len(dotenv) == 0 {
		dotenv = []string{".env"}
	}
	for _, f := range dotenv {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("yaml decode %s: %w", path, err)
	}
	return nil
}
