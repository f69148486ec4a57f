package domain

// PackageMeta holds the control metadata extracted from a Debian package.
type PackageMeta struct {
	// Name is the lowercased Package field.
	Name string

	// Version is the Version field verbatim.
	Version string

	// Architecture is the Debian architecture string (e.g., "amd64").
	Architecture string

	// Description is the first line of the Description field.
	Description string

	// Depends lists the declared package dependencies with version
	// constraints and alternatives stripped.
	Depends []string
}

// debianToNixSystem maps Debian architecture names to Nix system doubles.
var debianToNixSystem = map[string]string{
	"amd64": "x86_64-linux",
	"arm64": "aarch64-linux",
	"i386":  "i686-linux",
}

// System returns the Nix system double for the package's architecture.
// Unknown architectures are returned verbatim so the generated expression
// still names them.
func (m PackageMeta) System() string {
	if sys, ok := debianToNixSystem[m.Architecture]; ok {
		return sys
	}
	return m.Architecture
}

// FetchInfo describes where the package archive came from and how to pin it.
type FetchInfo struct {
	// URL is the original download location, empty for local files.
	URL string

	// SHA256 is the nix-prefetch-url hash of the archive.
	SHA256 string

	// LocalPath is the on-disk location of the archive.
	LocalPath string
}
