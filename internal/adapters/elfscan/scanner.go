// Package elfscan implements the binary scanner over an unpacked package tree.
package elfscan

import (
	"context"
	"debug/elf"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.trai.ch/deb2nix/internal/core/domain"
	"go.trai.ch/deb2nix/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var elfMagic = []byte{0x7f, 'E', 'L', 'F'}

// InspectFunc extracts the dynamic-link information of one file. isELF is
// false for files that are not ELF at all; err reports a file that claims
// to be ELF but cannot be inspected.
type InspectFunc func(path string) (needed []string, soname string, isELF bool, err error)

// Scanner implements ports.BinaryScanner using debug/elf.
type Scanner struct {
	logger  ports.Logger
	workers int
	inspect InspectFunc
}

// NewScanner creates a Scanner with the default ELF inspector and a worker
// pool sized to the CPU count.
func NewScanner(logger ports.Logger) *Scanner {
	return &Scanner{
		logger:  logger,
		workers: runtime.NumCPU(),
		inspect: InspectELF,
	}
}

// SetWorkers overrides the worker pool size; n <= 0 restores the default.
func (s *Scanner) SetWorkers(n int) {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	s.workers = n
}

type fileResult struct {
	path   string
	needed []string
	soname string
	isELF  bool
	err    error
}

// Scan walks the tree rooted at root and returns the required sonames in
// discovery order, deduplicated by name. Inspection of independent files is
// parallel; results are re-associated to walk order afterwards so the
// output never depends on completion order.
func (s *Scanner) Scan(ctx context.Context, root string) (*domain.ScanResult, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			// One unreadable entry must not block discovery for the rest.
			s.logger.Warn("skipping unreadable entry: " + path + ": " + err.Error())
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, zerr.Wrap(err, "failed to walk package tree")
	}

	results := make([]fileResult, len(files))

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, path := range files {
		g.Go(func() error {
			if groupCtx.Err() != nil {
				return groupCtx.Err()
			}
			needed, soname, isELF, inspectErr := s.inspect(path)
			results[i] = fileResult{
				path:   path,
				needed: needed,
				soname: soname,
				isELF:  isELF,
				err:    inspectErr,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &domain.ScanResult{
		Provided: make(map[string]struct{}),
	}
	seen := make(map[string]struct{})

	for _, fr := range results {
		rel, relErr := filepath.Rel(root, fr.path)
		if relErr != nil {
			rel = fr.path
		}

		// The package may ship shared objects of its own; those must not
		// be resolved against the target ecosystem.
		if base := filepath.Base(fr.path); strings.Contains(base, ".so") {
			res.Provided[base] = struct{}{}
		}

		if fr.err != nil {
			// One bad binary must not block discovery for the rest.
			s.logger.Warn("skipping uninspectable binary: " + rel + ": " + fr.err.Error())
			res.Skipped = append(res.Skipped, rel)
			continue
		}
		if !fr.isELF {
			continue
		}
		if fr.soname != "" {
			res.Provided[fr.soname] = struct{}{}
		}

		for _, name := range fr.needed {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			res.Dependencies = append(res.Dependencies, domain.RawDependency{
				Name:         domain.NewInternedString(name),
				SourceBinary: domain.NewInternedString(rel),
			})
		}
	}

	return res, nil
}

// InspectELF reads path's header and, for ELF files, the dynamic section's
// DT_NEEDED and DT_SONAME entries.
func InspectELF(path string) (needed []string, soname string, isELF bool, err error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the walked tree
	if err != nil {
		return nil, "", false, err
	}

	magic := make([]byte, len(elfMagic))
	if _, err := io.ReadFull(f, magic); err != nil || string(magic) != string(elfMagic) {
		_ = f.Close()
		return nil, "", false, nil
	}
	_ = f.Close()

	ef, err := elf.Open(path)
	if err != nil {
		return nil, "", true, zerr.Wrap(err, "malformed ELF file")
	}
	defer ef.Close() //nolint:errcheck // read-only handle

	// Statically linked executables have no dynamic section; DynString
	// reports that as an empty result, not an error.
	needed, err = ef.ImportedLibraries()
	if err != nil {
		return nil, "", true, zerr.Wrap(err, "failed to read dynamic section")
	}

	if sonames, dynErr := ef.DynString(elf.DT_SONAME); dynErr == nil && len(sonames) > 0 {
		soname = sonames[0]
	}

	return needed, soname, true, nil
}
