package ports

import (
	"context"

	"go.trai.ch/deb2nix/internal/core/domain"
)

// Fetcher obtains the package archive and its pinned hash.
//
//go:generate go run go.uber.org/mock/mockgen -source=package_io.go -destination=mocks/mock_package_io.go -package=mocks
type Fetcher interface {
	// Fetch downloads source if it is a URL (or verifies it exists if it is
	// a local path) and returns the archive location plus its Nix sha256.
	Fetch(ctx context.Context, source string) (domain.FetchInfo, error)
}

// MetadataReader extracts control metadata from a Debian package archive.
type MetadataReader interface {
	// DetectFormat sniffs the archive's magic bytes. It returns
	// domain.ErrUnsupportedFormat for anything that is not a .deb.
	DetectFormat(path string) error

	// Read parses the control file of the .deb at path.
	Read(ctx context.Context, path string) (domain.PackageMeta, error)
}

// Unpacker extracts a package archive's filesystem tree. The core only reads
// the resulting tree; unpack logic itself stays behind this port.
type Unpacker interface {
	// Unpack extracts the data payload of the archive at path into dest.
	Unpack(ctx context.Context, path, dest string) error
}
