package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Backends accepted by the demo.
const (
	BackendRecording = "recording"
	BackendStarlark  = "starlark"
	BackendRisor     = "risor"
)

// Config represents the optional intercept-demo.yaml configuration.
// Command-line flags take precedence over file values.
type Config struct {
	Backend string `yaml:"backend,omitempty"`
	Script  string `yaml:"script,omitempty"`
	Value   string `yaml:"value,omitempty"`
}

// LoadOptional reads the config file if present. A missing file is not
// an error; flags can supply everything.
func LoadOptional(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &cfg, nil
}

// Resolve merges flag values over the file values and applies
// defaults, validating the backend name.
func (c *Config) Resolve(backend, script, value string) (*Config, error) {
	out := &Config{
		Backend: firstNonEmpty(backend, c.Backend, BackendRecording),
		Script:  firstNonEmpty(script, c.Script),
		Value:   firstNonEmpty(value, c.Value, "placeholder string"),
	}

	switch out.Backend {
	case BackendRecording, BackendStarlark, BackendRisor:
	default:
		return nil, fmt.Errorf("unknown backend %q", out.Backend)
	}

	return out, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
