// Package config provides the configuration loader for deb2nix.
package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"go.trai.ch/deb2nix/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Defaults applied when deb2nix.yaml is absent or a field is zero.
const (
	DefaultThreshold    = 0.82
	DefaultQueryTimeout = 10 * time.Second
	DefaultOutputPath   = "default.nix"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the configuration file at path. A missing file is not an
// error; defaults are returned. A malformed file is.
func (l *Loader) Load(path string) (*domain.Settings, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return defaults(), nil
		}
		return nil, zerr.Wrap(err, "failed to read config file")
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, zerr.Wrap(err, "failed to parse config file")
	}

	s := defaults()
	if f.Resolver.Threshold != 0 {
		s.Threshold = f.Resolver.Threshold
	}
	if f.Resolver.QueryTimeout != "" {
		d, err := time.ParseDuration(f.Resolver.QueryTimeout)
		if err != nil {
			return nil, zerr.Wrap(err, "invalid queryTimeout")
		}
		s.QueryTimeout = d
	}
	if f.Resolver.Workers != 0 {
		s.Workers = f.Resolver.Workers
	}
	if f.Resolver.CacheDir != "" {
		s.CacheDir = f.Resolver.CacheDir
	}
	if f.StaticMap.Extra != "" {
		s.ExtraMapPath = f.StaticMap.Extra
	}
	if f.Output.Path != "" {
		s.OutputPath = f.Output.Path
	}

	if s.Threshold <= 0 || s.Threshold > 1 {
		return nil, zerr.With(zerr.New("threshold out of range"), "threshold", s.Threshold)
	}
	if s.Workers < 0 {
		return nil, zerr.With(zerr.New("workers must be non-negative"), "workers", s.Workers)
	}

	return s, nil
}

func defaults() *domain.Settings {
	return &domain.Settings{
		Threshold:    DefaultThreshold,
		QueryTimeout: DefaultQueryTimeout,
		OutputPath:   DefaultOutputPath,
	}
}
