package ports

import "go.trai.ch/deb2nix/internal/core/domain"

// ConfigLoader loads the runtime settings for a conversion run.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration file at path. A missing file yields
	// defaults; a malformed file is an error.
	Load(path string) (*domain.Settings, error)
}
