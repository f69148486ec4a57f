// Package domain contains the core domain models for dependency resolution.
package domain

// ResolutionSource identifies which resolution layer produced a mapping.
type ResolutionSource string

const (
	// SourceStatic means the curated static library map matched the soname.
	SourceStatic ResolutionSource = "static"
	// SourceIndexed means the file-ownership index produced the mapping.
	SourceIndexed ResolutionSource = "indexed"
	// SourceUnresolved means no layer produced a mapping above threshold.
	SourceUnresolved ResolutionSource = "unresolved"
)

// RawDependency is a shared-object name as reported by binary inspection,
// together with the binary that required it.
type RawDependency struct {
	// Name is the soname from the dynamic section (e.g., "libgtk-3.so.0").
	Name InternedString

	// SourceBinary is the path of the requiring binary, relative to the
	// unpacked package root.
	SourceBinary InternedString
}

// ResolvedDependency is the canonical output unit of resolution. Every
// RawDependency maps to exactly one ResolvedDependency; the unresolved case
// is an explicit outcome, never an omission.
type ResolvedDependency struct {
	// RawName is the soname that was resolved.
	RawName string

	// TargetRef is the nixpkgs attribute path (e.g., "xorg.libX11").
	// Empty when Source is SourceUnresolved.
	TargetRef string

	// Source records which layer won.
	Source ResolutionSource

	// Confidence is the string-similarity score for indexed matches,
	// 1.0 for static matches and 0 for unresolved entries.
	Confidence float64
}

// Resolved reports whether the dependency was mapped to a target reference.
func (d ResolvedDependency) Resolved() bool {
	return d.Source != SourceUnresolved
}

// IndexRecord is a result row from a file-ownership index query.
type IndexRecord struct {
	// FilePath is the indexed path that matched the query.
	FilePath string

	// OwningPackageRef is the attribute path of the package providing FilePath.
	OwningPackageRef string

	// MatchConfidence is the similarity score between the queried name and
	// the basename of FilePath, in [0, 1].
	MatchConfidence float64
}

// ScanResult is the output of scanning an unpacked package tree.
type ScanResult struct {
	// Dependencies lists required sonames in discovery order, deduplicated
	// by name (first occurrence wins).
	Dependencies []RawDependency

	// Provided holds the sonames of shared objects shipped inside the
	// package itself. Those must not be resolved against the target
	// ecosystem.
	Provided map[string]struct{}

	// Skipped lists files that claimed to be ELF but failed inspection.
	Skipped []string
}

// ProvidesOwn reports whether the package ships the given soname itself.
func (r *ScanResult) ProvidesOwn(name string) bool {
	_, ok := r.Provided[name]
	return ok
}
