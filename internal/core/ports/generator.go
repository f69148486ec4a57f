package ports

import (
	"go.trai.ch/deb2nix/internal/core/domain"
)

// ExpressionGenerator renders the final package expression from a resolution
// manifest. The manifest is read-only at this boundary.
//
//go:generate go run go.uber.org/mock/mockgen -source=generator.go -destination=mocks/mock_generator.go -package=mocks
type ExpressionGenerator interface {
	Generate(meta domain.PackageMeta, fetch domain.FetchInfo, manifest *domain.ResolutionManifest) (string, error)
}
