package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the configuration file name looked up in the current
// directory.
const DefaultConfigFile = "richdoc.yaml"

// LoadConfigFile reads path over the defaults. A missing file returns
// ErrConfigNotFound.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. configPath, when given
// 2. richdoc.yaml in the current directory
// 3. config.yaml in the XDG config directory
//
// Returns the path found, or an empty string.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		local := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(local); err == nil {
			return local
		}
	}

	if user := XDGConfigFile(); user != "" {
		if _, err := os.Stat(user); err == nil {
			return user
		}
	}

	return ""
}

// Load finds and reads the configuration. Without an explicit path a
// missing file yields the defaults; an explicit path that does not exist
// returns ErrConfigNotFound.
func Load(configPath string) (*Config, error) {
	path := FindConfigFile(configPath)
	if path == "" {
		if configPath != "" {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return NewConfig(), nil
	}
	return LoadConfigFile(path)
}
