package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSystemMapping(t *testing.T) {
	tests := []struct {
		arch string
		want string
	}{
		{"amd64", "x86_64-linux"},
		{"arm64", "aarch64-linux"},
		{"i386", "i686-linux"},
		{"riscv64", "riscv64"},
	}

	for _, tt := range tests {
		meta := PackageMeta{Architecture: tt.arch}
		assert.Equal(t, tt.want, meta.System())
	}
}

func TestScanResultProvidesOwn(t *testing.T) {
	res := &ScanResult{Provided: map[string]struct{}{"libown.so.1": {}}}
	assert.True(t, res.ProvidesOwn("libown.so.1"))
	assert.False(t, res.ProvidesOwn("libz.so.1"))
}
