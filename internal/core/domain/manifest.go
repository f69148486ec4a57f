package domain

import "slices"

// ResolutionManifest is the ordered-by-discovery sequence of resolved
// dependencies produced by the aggregator. It is immutable after
// construction and handed by reference to the expression generator.
type ResolutionManifest struct {
	entries []ResolvedDependency
}

// NewResolutionManifest builds a manifest from entries in discovery order.
// The slice is copied so later mutation by the caller cannot leak in.
func NewResolutionManifest(entries []ResolvedDependency) *ResolutionManifest {
	return &ResolutionManifest{entries: slices.Clone(entries)}
}

// Entries returns all entries in discovery order.
func (m *ResolutionManifest) Entries() []ResolvedDependency {
	return slices.Clone(m.entries)
}

// Unresolved returns the distinguished subset of entries no layer could map.
func (m *ResolutionManifest) Unresolved() []ResolvedDependency {
	var out []ResolvedDependency
	for _, e := range m.entries {
		if !e.Resolved() {
			out = append(out, e)
		}
	}
	return out
}

// TargetRefs returns the resolved attribute paths, sorted and deduplicated,
// ready for rendering into a package expression.
func (m *ResolutionManifest) TargetRefs() []string {
	var refs []string
	for _, e := range m.entries {
		if e.Resolved() {
			refs = append(refs, e.TargetRef)
		}
	}
	slices.Sort(refs)
	return slices.Compact(refs)
}

// Len returns the number of entries.
func (m *ResolutionManifest) Len() int {
	return len(m.entries)
}
