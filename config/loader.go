package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// ProjectConfigFile is the name of the project-level config file.
const ProjectConfigFile = "enumgen.yaml"

// Loader handles configuration loading with layered precedence.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new configuration loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. Project config (enumgen.yaml in the working directory or a parent)
//
// When path is non-empty that file is loaded instead of searching, and
// its absence is an error. A missing project config is not.
func (l *Loader) Load(path string) (*Config, error) {
	config := DefaultConfig()

	if path == "" {
		path = l.findProjectConfig(workingDir())
	}
	if path != "" {
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		config.Merge(fileConfig)
		l.logger.Debug("loaded project config", slog.String("path", path))
	} else {
		l.logger.Debug("no project config found")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// EnsureProjectConfig writes a default config file in dir and returns
// its path. A config file already present there is an error.
func (l *Loader) EnsureProjectConfig(dir string) (string, error) {
	path := filepath.Join(dir, ProjectConfigFile)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists", path)
	}

	config := DefaultConfig()
	if err := config.SaveToFile(path); err != nil {
		return "", err
	}

	l.logger.Info("created project config", slog.String("path", path))
	return path, nil
}

// findProjectConfig searches for enumgen.yaml in dir and its parent
// directories.
func (l *Loader) findProjectConfig(dir string) string {
	if dir == "" {
		return ""
	}

	for {
		configPath := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			break
		}
		dir = parent
	}

	return ""
}

func workingDir() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return cwd
}
