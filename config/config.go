// Package config provides configuration loading for the enumgen tool.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/enumset/decl"
)

// Config represents the complete enumgen configuration.
type Config struct {
	// Patterns are the declaration file patterns to generate from.
	Patterns []string `yaml:"patterns"`
	// Out is the directory generated files are written to.
	Out string `yaml:"out"`
	// Package is the package name of the generated files.
	Package string `yaml:"package"`
	// Strict treats redeclaration warnings as errors.
	Strict bool `yaml:"strict"`
	// LogLevel sets the log verbosity (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
}

var packagePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Patterns: []string{decl.DefaultPattern},
		Out:      ".",
		Package:  "enums",
		Strict:   false,
		LogLevel: "info",
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if len(c.Patterns) == 0 {
		return fmt.Errorf("at least one pattern is required")
	}
	if c.Out == "" {
		return fmt.Errorf("out is required")
	}
	if !packagePattern.MatchString(c.Package) {
		return fmt.Errorf("package %q is not a valid package name", c.Package)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn, or error")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file. Only the fields
// the file sets are populated; callers layer the result over
// DefaultConfig with Merge. Unknown fields are an error.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(config); err != nil {
		if errors.Is(err, io.EOF) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for
// non-zero values).
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if len(other.Patterns) > 0 {
		c.Patterns = other.Patterns
	}
	if other.Out != "" {
		c.Out = other.Out
	}
	if other.Package != "" {
		c.Package = other.Package
	}
	if other.Strict {
		c.Strict = true
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
}
