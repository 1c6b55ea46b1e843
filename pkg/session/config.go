package session

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gitrdm/lambdapi/pkg/lambdapi"
)

// DefaultFile is the configuration file the CLI picks up from the working
// directory when no --config flag is given.
const DefaultFile = "lambdapi.yaml"

// Config configures a Session and the batch checker.
//
//	fuel: 1000000     # beta steps per statement, 0 = unbounded
//	trace: false      # log every judgment
//	timeout: 10s      # wall clock per statement, 0 = none
//	prelude: true     # load the Church-encoded prelude
//	workers: 8        # concurrent files for `lambdapi check`
type Config struct {
	Checker lambdapi.Config `yaml:",inline"`
	Timeout time.Duration   `yaml:"timeout"`
	Prelude bool            `yaml:"prelude"`
	Workers int             `yaml:"workers"`
}

// DefaultConfig returns the CLI defaults.
func DefaultConfig() Config {
	return Config{
		Checker: lambdapi.Config{Fuel: 1_000_000},
		Timeout: 10 * time.Second,
		Prelude: true,
		Workers: runtime.NumCPU(),
	}
}

// Validate reports values a Session cannot run with.
func (c Config) Validate() error {
	if err := c.Checker.Validate(); err != nil {
		return err
	}
	if c.Timeout < 0 {
		return fmt.Errorf("Config: timeout must be >= 0, got %s", c.Timeout)
	}
	if c.Workers < 1 {
		return fmt.Errorf("Config: workers must be >= 1, got %d", c.Workers)
	}
	return nil
}

// LoadConfig reads a YAML configuration file. Keys absent from the file keep
// their DefaultConfig values; unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, fmt.Errorf("config: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return cfg, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return cfg, err
	}
	defer file.Close()
	if cfg, err = DecodeConfig(file); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", abs, err)
	}
	return cfg, nil
}

// DecodeConfig reads YAML configuration from r on top of DefaultConfig.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Marshal renders the configuration as YAML.
func (c Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("config: encoder close: %w", err)
	}
	return buf.Bytes(), nil
}
