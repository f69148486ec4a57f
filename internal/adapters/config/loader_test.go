package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deb2nix.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	s, err := NewLoader().Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.InDelta(t, DefaultThreshold, s.Threshold, 1e-9)
	assert.Equal(t, DefaultQueryTimeout, s.QueryTimeout)
	assert.Equal(t, DefaultOutputPath, s.OutputPath)
	assert.Zero(t, s.Workers)
	assert.Empty(t, s.CacheDir)
}

func TestLoadFullFile(t *testing.T) {
	path := writeConfig(t, `
resolver:
  threshold: 0.9
  queryTimeout: 30s
  workers: 4
  cacheDir: /var/cache/deb2nix
staticMap:
  extra: /etc/deb2nix/extra.yaml
output:
  path: result.nix
`)

	s, err := NewLoader().Load(path)
	require.NoError(t, err)

	assert.InDelta(t, 0.9, s.Threshold, 1e-9)
	assert.Equal(t, 30*time.Second, s.QueryTimeout)
	assert.Equal(t, 4, s.Workers)
	assert.Equal(t, "/var/cache/deb2nix", s.CacheDir)
	assert.Equal(t, "/etc/deb2nix/extra.yaml", s.ExtraMapPath)
	assert.Equal(t, "result.nix", s.OutputPath)
}

func TestLoadMalformedFile(t *testing.T) {
	path := writeConfig(t, "resolver: [not, a, mapping")

	_, err := NewLoader().Load(path)
	assert.Error(t, err)
}

func TestLoadInvalidThreshold(t *testing.T) {
	path := writeConfig(t, "resolver:\n  threshold: 1.5\n")

	_, err := NewLoader().Load(path)
	assert.Error(t, err)
}

func TestLoadInvalidDuration(t *testing.T) {
	path := writeConfig(t, "resolver:\n  queryTimeout: soon\n")

	_, err := NewLoader().Load(path)
	assert.Error(t, err)
}
