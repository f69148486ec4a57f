// Package deb reads Debian package archives: format detection, control
// metadata extraction, and payload unpacking.
package deb

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/blakesmith/ar"
	"go.trai.ch/deb2nix/internal/core/domain"
	"go.trai.ch/zerr"
)

var (
	arMagic  = []byte("!<arch>\n")
	elfMagic = []byte{0x7f, 'E', 'L', 'F'}
)

// Reader implements ports.MetadataReader. The control tarball is parsed in
// pure Go for gzip and uncompressed members; other compressions fall back to
// dpkg-deb, which the escalator guarantees is on PATH.
type Reader struct{}

// NewReader creates a metadata Reader.
func NewReader() *Reader {
	return &Reader{}
}

// DetectFormat sniffs the file's magic bytes. Only the Debian ar format is
// accepted; an ELF header means the user pointed at an AppImage or raw
// executable instead of a package.
func (r *Reader) DetectFormat(path string) error {
	f, err := os.Open(path) //nolint:gosec // path is user input
	if err != nil {
		return zerr.Wrap(err, "failed to open archive")
	}
	defer f.Close() //nolint:errcheck // read-only handle

	magic := make([]byte, len(arMagic))
	n, err := io.ReadFull(f, magic)
	if err != nil && n < len(elfMagic) {
		return zerr.With(domain.ErrUnsupportedFormat, "path", path)
	}

	if bytes.Equal(magic[:n], arMagic[:n]) && n == len(arMagic) {
		return nil
	}
	if bytes.Equal(magic[:len(elfMagic)], elfMagic) {
		return zerr.With(
			zerr.Wrap(domain.ErrUnsupportedFormat, "input is a raw ELF executable, not a .deb"),
			"path", path)
	}
	return zerr.With(domain.ErrUnsupportedFormat, "path", path)
}

// Read extracts and parses the control file of the .deb at path.
func (r *Reader) Read(ctx context.Context, path string) (domain.PackageMeta, error) {
	control, err := extractControl(ctx, path)
	if err != nil {
		return domain.PackageMeta{}, err
	}
	return parseControl(control)
}

// extractControl walks the outer ar archive looking for the control tarball.
func extractControl(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // path is user input
	if err != nil {
		return "", zerr.Wrap(err, "failed to open archive")
	}
	defer f.Close() //nolint:errcheck // read-only handle

	arReader := ar.NewReader(f)
	for {
		header, err := arReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", zerr.Wrap(err, "malformed ar archive")
		}

		name := strings.TrimSuffix(strings.TrimSpace(header.Name), "/")
		if !strings.HasPrefix(name, "control.tar") {
			continue
		}

		switch strings.TrimPrefix(name, "control.tar") {
		case ".gz":
			gz, err := gzip.NewReader(arReader)
			if err != nil {
				return "", zerr.Wrap(err, "failed to decompress control tarball")
			}
			return controlFromTar(gz)
		case "":
			return controlFromTar(arReader)
		default:
			// xz or zstd: hand off to dpkg-deb rather than growing a
			// decompressor zoo.
			return controlViaDpkg(ctx, path)
		}
	}

	return "", zerr.With(
		zerr.Wrap(domain.ErrMetadataMissing, "archive has no control tarball"),
		"path", path)
}

func controlFromTar(r io.Reader) (string, error) {
	tr := tar.NewReader(r)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", zerr.Wrap(err, "malformed control tarball")
		}
		if strings.TrimPrefix(header.Name, "./") == "control" {
			data, err := io.ReadAll(tr)
			if err != nil {
				return "", zerr.Wrap(err, "failed to read control file")
			}
			return string(data), nil
		}
	}
	return "", zerr.Wrap(domain.ErrMetadataMissing, "control tarball has no control file")
}

func controlViaDpkg(ctx context.Context, path string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "dpkg-deb", "--field", path)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", zerr.With(zerr.Wrap(err, "dpkg-deb --field failed"),
			"stderr", strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// parseControl reads the RFC822-style control fields. Package, Version and
// Architecture are mandatory.
func parseControl(control string) (domain.PackageMeta, error) {
	fields := make(map[string]string)
	for _, line := range strings.Split(control, "\n") {
		if line == "" {
			continue
		}
		if line[0] == ' ' || line[0] == '\t' {
			// Continuation lines only matter for Description, where the
			// first line is the synopsis we keep.
			continue
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		fields[key] = strings.TrimSpace(value)
	}

	meta := domain.PackageMeta{
		Name:         strings.ToLower(fields["Package"]),
		Version:      fields["Version"],
		Architecture: fields["Architecture"],
		Description:  fields["Description"],
		Depends:      parseDepends(fields["Depends"]),
	}

	if meta.Name == "" || meta.Version == "" || meta.Architecture == "" {
		var missing []string
		for field, have := range map[string]bool{
			"Package": meta.Name != "", "Version": meta.Version != "", "Architecture": meta.Architecture != "",
		} {
			if !have {
				missing = append(missing, field)
			}
		}
		sort.Strings(missing)
		return domain.PackageMeta{}, zerr.With(
			zerr.Wrap(domain.ErrMetadataMissing, "control file lacks mandatory fields"),
			"missing", strings.Join(missing, ", "))
	}
	return meta, nil
}

// parseDepends splits a Debian Depends value into bare package names.
// Version constraints are dropped and only the first branch of each
// alternative group is kept.
func parseDepends(depends string) []string {
	if depends == "" {
		return nil
	}
	var names []string
	for _, clause := range strings.Split(depends, ",") {
		first, _, _ := strings.Cut(clause, "|")
		name := strings.TrimSpace(first)
		if idx := strings.IndexByte(name, '('); idx >= 0 {
			name = strings.TrimSpace(name[:idx])
		}
		name, _, _ = strings.Cut(name, ":")
		if name != "" {
			names = append(names, strings.ToLower(name))
		}
	}
	return names
}
