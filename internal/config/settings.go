package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings holds the compile-time tunables that are worth changing
// without a recompile. When no settings file is supplied,
// MaxRecursionDepth is DefaultMaxRecursionDepth and IntegerDefaulting
// is true (see DefaultSettings).
type Settings struct {
	// MaxRecursionDepth bounds the parser's expression nesting.
	MaxRecursionDepth int `yaml:"max_recursion_depth"`

	// IntegerDefaulting enables defaulting unconstrained integer type
	// variables to the language's default int width during solving,
	// rather than reporting TypeNotFullyKnown.
	IntegerDefaulting bool `yaml:"integer_defaulting"`
}

// DefaultSettings returns the Settings a compilation uses when no
// settings file is loaded.
func DefaultSettings() Settings {
	return Settings{
		MaxRecursionDepth: DefaultMaxRecursionDepth,
		IntegerDefaulting: true,
	}
}

// LoadSettings reads an optional YAML settings file at path, overlaying
// it onto DefaultSettings. A missing file is not an error: it simply
// yields the defaults, since the settings file is an opt-in
// convenience rather than a required artifact.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return settings, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("reading settings file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("parsing settings file %s: %w", path, err)
	}
	return settings, nil
}
