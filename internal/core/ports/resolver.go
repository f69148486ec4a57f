package ports

import (
	"context"

	"go.trai.ch/deb2nix/internal/core/domain"
)

// LibraryResolver maps a soname to a target-ecosystem package reference.
// Resolvers are arranged in an ordered chain (static map first, then the
// file-ownership index); the first one to return ok wins. Additional
// strategies can be appended without touching existing ones.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type LibraryResolver interface {
	// Resolve attempts to map name. ok is false when this strategy has no
	// answer; that is not an error. An error means the strategy itself
	// failed and the caller decides whether that is fatal.
	Resolve(ctx context.Context, name string) (rec domain.IndexRecord, ok bool, err error)

	// Source identifies the resolution layer for manifest bookkeeping.
	Source() domain.ResolutionSource
}
