// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/deb2nix/internal/core/domain"
)

// BinaryScanner extracts dynamic-link dependencies from an unpacked package.
//
//go:generate go run go.uber.org/mock/mockgen -source=scanner.go -destination=mocks/mock_scanner.go -package=mocks
type BinaryScanner interface {
	// Scan walks the tree rooted at root, inspects every ELF executable and
	// shared object it finds (by file header, not extension) and returns
	// the required sonames in discovery order, deduplicated by name.
	//
	// A single corrupt binary is logged and skipped; it never aborts the
	// scan.
	Scan(ctx context.Context, root string) (*domain.ScanResult, error)
}
