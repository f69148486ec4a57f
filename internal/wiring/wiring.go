// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/deb2nix/internal/adapters/config"
	_ "go.trai.ch/deb2nix/internal/adapters/deb"
	_ "go.trai.ch/deb2nix/internal/adapters/elfscan"
	_ "go.trai.ch/deb2nix/internal/adapters/escalate"
	_ "go.trai.ch/deb2nix/internal/adapters/fetch"
	_ "go.trai.ch/deb2nix/internal/adapters/logger"
	_ "go.trai.ch/deb2nix/internal/adapters/nixgen"
	_ "go.trai.ch/deb2nix/internal/adapters/telemetry"
	// Register app nodes.
	_ "go.trai.ch/deb2nix/internal/app"
)
