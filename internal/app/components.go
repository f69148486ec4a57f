package app

import (
	"go.trai.ch/deb2nix/internal/core/ports"
)

// Components contains the initialized application components. This struct
// provides controlled access to what the CLI layer needs.
type Components struct {
	App    *App
	Logger ports.Logger
	Tracer ports.Tracer
}
