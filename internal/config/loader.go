package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadYAMLConfig fills the defaults returned by fn with the values found in
// configPath. A missing path or file leaves the defaults untouched; an
// unreadable or malformed file is an error.
func LoadYAMLConfig[T any](configPath string, fn func() *T) (*T, error) {
	cfg := fn()

	if configPath == "" {
		return cfg, nil
	}

	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", configPath, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", configPath, err)
	}

	return cfg, nil
}
