package cli

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the configuration for the CLI generator
type Config struct {
	// Directories is the list of directories to scan for annotated Go files
	Directories []string

	// ModuleName overrides the module path read from go.mod
	ModuleName string `env:"BINDGEN_MODULE"`

	// Verbose enables detailed logging and error reporting
	Verbose bool `env:"BINDGEN_VERBOSE"`

	// Quiet only reports errors and the final result
	Quiet bool `env:"BINDGEN_QUIET"`

	// ManifestPath is where the YAML binding manifest is written, empty for none
	ManifestPath string `env:"BINDGEN_MANIFEST"`
}

// LoadConfig reads the configuration from the process environment
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// LoadConfigFrom reads the configuration from the given environment
func LoadConfigFrom(environment map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environment}); err != nil {
		return Config{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration before a run
func (c Config) Validate() error {
	if len(c.Directories) == 0 {
		return fmt.Errorf("at least one directory path is required")
	}
	if c.Verbose && c.Quiet {
		return fmt.Errorf("verbose and quiet output cannot be combined")
	}
	return nil
}
