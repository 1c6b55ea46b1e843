package lambdapi

import "fmt"

// Config tunes a Checker.
type Config struct {
	// Fuel is the maximum number of beta steps a single Typecheck, Infer or
	// Check call may perform. Zero means unbounded.
	Fuel int `yaml:"fuel"`

	// Trace logs every judgment and beta step through the standard logger.
	Trace bool `yaml:"trace"`
}

// DefaultConfig returns the reference configuration: unbounded reduction,
// tracing off.
func DefaultConfig() Config {
	return Config{}
}

// Validate reports configuration values the checker cannot use.
func (c Config) Validate() error {
	if c.Fuel < 0 {
		return fmt.Errorf("Config: fuel must be >= 0, got %d", c.Fuel)
	}
	return nil
}
