package nixgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/deb2nix/internal/core/domain"
)

func sampleMeta() domain.PackageMeta {
	return domain.PackageMeta{
		Name:         "hello-world",
		Version:      "2.10-3",
		Architecture: "amd64",
		Description:  `example "greeter" with ${weird} chars`,
	}
}

func TestGenerateWithURL(t *testing.T) {
	gen, err := NewGenerator()
	require.NoError(t, err)

	manifest := domain.NewResolutionManifest([]domain.ResolvedDependency{
		{RawName: "libgtk-3.so.0", TargetRef: "gtk3", Source: domain.SourceStatic, Confidence: 1.0},
		{RawName: "libz.so.1", TargetRef: "zlib", Source: domain.SourceIndexed, Confidence: 0.95},
		{RawName: "libmadeup123.so.9", Source: domain.SourceUnresolved},
	})

	out, err := gen.Generate(sampleMeta(), domain.FetchInfo{
		URL:    "https://example.org/hello_2.10-3_amd64.deb",
		SHA256: "0abc",
	}, manifest)
	require.NoError(t, err)

	assert.Contains(t, out, `pname = "hello-world";`)
	assert.Contains(t, out, `version = "2.10-3";`)
	assert.Contains(t, out, `system = "x86_64-linux";`)
	assert.Contains(t, out, `url = "https://example.org/hello_2.10-3_amd64.deb";`)
	assert.Contains(t, out, `sha256 = "0abc";`)
	assert.Contains(t, out, "gtk3")
	assert.Contains(t, out, "zlib")
	assert.Contains(t, out, "# unresolved: libmadeup123.so.9")
	assert.Contains(t, out, "autoPatchelfHook")
	assert.Contains(t, out, `\"greeter\"`, "quotes in the description are escaped")
	assert.Contains(t, out, `\${weird}`, "interpolation in the description is escaped")
	assert.NotContains(t, out, "fetchurl {\n    url = \"\";", "no empty fetchurl block")
}

func TestGenerateLocalSource(t *testing.T) {
	gen, err := NewGenerator()
	require.NoError(t, err)

	manifest := domain.NewResolutionManifest(nil)
	out, err := gen.Generate(sampleMeta(), domain.FetchInfo{
		SHA256:    "0abc",
		LocalPath: "/tmp/hello_2.10-3_amd64.deb",
	}, manifest)
	require.NoError(t, err)

	assert.Contains(t, out, "src = /tmp/hello_2.10-3_amd64.deb;")
	assert.NotContains(t, out, "fetchurl")
}

func TestGenerateDeterministic(t *testing.T) {
	gen, err := NewGenerator()
	require.NoError(t, err)

	manifest := domain.NewResolutionManifest([]domain.ResolvedDependency{
		{RawName: "libz.so.1", TargetRef: "zlib", Source: domain.SourceIndexed, Confidence: 0.9},
		{RawName: "libgtk-3.so.0", TargetRef: "gtk3", Source: domain.SourceStatic, Confidence: 1.0},
	})

	first, err := gen.Generate(sampleMeta(), domain.FetchInfo{URL: "https://example.org/x.deb", SHA256: "0abc"}, manifest)
	require.NoError(t, err)
	second, err := gen.Generate(sampleMeta(), domain.FetchInfo{URL: "https://example.org/x.deb", SHA256: "0abc"}, manifest)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
