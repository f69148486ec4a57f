package deb

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"

	"go.trai.ch/zerr"
)

// Unpacker implements ports.Unpacker by shelling out to dpkg-deb, which
// handles every data.tar compression Debian has ever shipped.
type Unpacker struct{}

// NewUnpacker creates an Unpacker.
func NewUnpacker() *Unpacker {
	return &Unpacker{}
}

// Unpack extracts the data payload of the .deb at path into dest.
func (u *Unpacker) Unpack(ctx context.Context, path, dest string) error {
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return zerr.Wrap(err, "failed to create unpack directory")
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "dpkg-deb", "-x", path, dest)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return zerr.With(zerr.Wrap(err, "dpkg-deb -x failed"),
			"stderr", strings.TrimSpace(stderr.String()))
	}
	return nil
}
