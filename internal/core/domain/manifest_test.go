package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifestTargetRefsSortedAndDeduplicated(t *testing.T) {
	m := NewResolutionManifest([]ResolvedDependency{
		{RawName: "libz.so.1", TargetRef: "zlib", Source: SourceStatic, Confidence: 1.0},
		{RawName: "libgtk-3.so.0", TargetRef: "gtk3", Source: SourceStatic, Confidence: 1.0},
		{RawName: "libgdk-3.so.0", TargetRef: "gtk3", Source: SourceIndexed, Confidence: 0.9},
		{RawName: "libmadeup123.so.9", Source: SourceUnresolved},
	})

	assert.Equal(t, []string{"gtk3", "zlib"}, m.TargetRefs())
	assert.Equal(t, 4, m.Len())
}

func TestManifestUnresolved(t *testing.T) {
	m := NewResolutionManifest([]ResolvedDependency{
		{RawName: "libz.so.1", TargetRef: "zlib", Source: SourceStatic, Confidence: 1.0},
		{RawName: "libmadeup123.so.9", Source: SourceUnresolved},
	})

	unresolved := m.Unresolved()
	require.Len(t, unresolved, 1)
	assert.Equal(t, "libmadeup123.so.9", unresolved[0].RawName)
	assert.False(t, unresolved[0].Resolved())
}

func TestManifestImmutableAfterConstruction(t *testing.T) {
	entries := []ResolvedDependency{
		{RawName: "libz.so.1", TargetRef: "zlib", Source: SourceStatic, Confidence: 1.0},
	}
	m := NewResolutionManifest(entries)

	entries[0].TargetRef = "mutated"
	assert.Equal(t, "zlib", m.Entries()[0].TargetRef)

	got := m.Entries()
	got[0].TargetRef = "mutated-again"
	assert.Equal(t, "zlib", m.Entries()[0].TargetRef)
}
