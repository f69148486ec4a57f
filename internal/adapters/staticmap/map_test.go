package staticmap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/deb2nix/internal/core/domain"
)

func TestLookup(t *testing.T) {
	m, err := New()
	require.NoError(t, err)

	attr, ok := m.Lookup("libgtk-3.so")
	require.True(t, ok)
	assert.Equal(t, "gtk3", attr)

	attr, ok = m.Lookup("libgtk-3.so.0")
	require.True(t, ok, "versioned sonames match version-free patterns")
	assert.Equal(t, "gtk3", attr)

	_, ok = m.Lookup("libmadeup123.so.9")
	assert.False(t, ok)
}

func TestLookupDebian(t *testing.T) {
	m, err := New()
	require.NoError(t, err)

	attr, ok := m.LookupDebian("libc6")
	require.True(t, ok)
	assert.Equal(t, "glibc", attr)

	attr, ok = m.LookupDebian("libgtk-3-0")
	require.True(t, ok)
	assert.Equal(t, "gtk3", attr)

	_, ok = m.LookupDebian("totally-unknown-package")
	assert.False(t, ok)
}

func TestResolveImplementsStaticLayer(t *testing.T) {
	m, err := New()
	require.NoError(t, err)

	rec, ok, err := m.Resolve(context.Background(), "libz.so.1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "zlib", rec.OwningPackageRef)
	assert.InDelta(t, 1.0, rec.MatchConfidence, 1e-9)
	assert.Equal(t, domain.SourceStatic, m.Source())
}

func TestNewWithExtra(t *testing.T) {
	extra := filepath.Join(t.TempDir(), "extra.yaml")
	require.NoError(t, os.WriteFile(extra, []byte(
		"- pattern: libcustom.so\n  attr: my-custom-lib\n"), 0o644))

	m, err := NewWithExtra(extra)
	require.NoError(t, err)

	attr, ok := m.Lookup("libcustom.so.2")
	require.True(t, ok)
	assert.Equal(t, "my-custom-lib", attr)

	// Bundled entries keep priority over extras.
	attr, ok = m.Lookup("libgtk-3.so.0")
	require.True(t, ok)
	assert.Equal(t, "gtk3", attr)
}

func TestLookupExactBeatsStripped(t *testing.T) {
	extra := filepath.Join(t.TempDir(), "extra.yaml")
	require.NoError(t, os.WriteFile(extra, []byte(
		"- pattern: libgtk-3.so.0\n  attr: my-exact-gtk\n"), 0o644))

	m, err := NewWithExtra(extra)
	require.NoError(t, err)

	// An exact entry wins even when an earlier version-free entry would
	// match the stripped form.
	attr, ok := m.Lookup("libgtk-3.so.0")
	require.True(t, ok)
	assert.Equal(t, "my-exact-gtk", attr)

	// Other versions of the soname still fall through to the bundled entry.
	attr, ok = m.Lookup("libgtk-3.so.6")
	require.True(t, ok)
	assert.Equal(t, "gtk3", attr)
}

func TestNewWithExtraMalformed(t *testing.T) {
	extra := filepath.Join(t.TempDir(), "extra.yaml")
	require.NoError(t, os.WriteFile(extra, []byte("- pattern: libonly.so\n"), 0o644))

	_, err := NewWithExtra(extra)
	assert.ErrorIs(t, err, domain.ErrStaticMapMalformed)
}

func TestTrimVersionSuffix(t *testing.T) {
	assert.Equal(t, "libgtk-3.so", TrimVersionSuffix("libgtk-3.so.0"))
	assert.Equal(t, "libfoo.so", TrimVersionSuffix("libfoo.so.2.1.4"))
	assert.Equal(t, "libfoo.so", TrimVersionSuffix("libfoo.so"))
	assert.Equal(t, "libname", TrimVersionSuffix("libname"))
	assert.Equal(t, "libssl3.so", TrimVersionSuffix("libssl3.so"),
		"digits inside the stem are not a version suffix")
}
