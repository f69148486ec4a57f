// Package resolve implements the resolution aggregator: it drives every
// scanned dependency through the resolver chain and assembles the final
// manifest.
package resolve

import (
	"context"
	"runtime"
	"strings"

	"go.trai.ch/deb2nix/internal/core/domain"
	"go.trai.ch/deb2nix/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// DeclaredLookup maps a declared Debian package name to a target attribute.
type DeclaredLookup func(name string) (string, bool)

// Engine aggregates resolution outcomes. It is constructed per run because
// the resolver chain carries per-run configuration.
type Engine struct {
	logger   ports.Logger
	chain    []ports.LibraryResolver
	declared DeclaredLookup
	workers  int
}

// New creates an Engine over the given resolver chain, consulted in order.
// declared may be nil when declared-dependency mapping is not wanted.
func New(logger ports.Logger, chain []ports.LibraryResolver, declared DeclaredLookup) *Engine {
	return &Engine{
		logger:   logger,
		chain:    chain,
		declared: declared,
		workers:  runtime.NumCPU(),
	}
}

// SetWorkers overrides the resolution parallelism; n <= 0 restores the default.
func (e *Engine) SetWorkers(n int) {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	e.workers = n
}

// Aggregate resolves every scanned dependency plus the declared package
// dependencies and returns the manifest in discovery order. Every scanned
// soname yields exactly one entry; unresolved is an explicit outcome.
func (e *Engine) Aggregate(ctx context.Context, scan *domain.ScanResult, depends []string) (*domain.ResolutionManifest, error) {
	wanted := make([]domain.RawDependency, 0, len(scan.Dependencies))
	for _, dep := range scan.Dependencies {
		name := dep.Name.String()
		if isLoader(name) {
			continue
		}
		if scan.ProvidesOwn(name) {
			e.logger.Info("skipping " + name + ": provided by the package itself")
			continue
		}
		wanted = append(wanted, dep)
	}

	entries := make([]domain.ResolvedDependency, len(wanted))

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, dep := range wanted {
		g.Go(func() error {
			if groupCtx.Err() != nil {
				return groupCtx.Err()
			}
			entry, err := e.resolveOne(groupCtx, dep.Name.String())
			if err != nil {
				return err
			}
			entries[i] = entry
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, zerr.Wrap(err, "dependency resolution aborted")
	}

	entries = pruneQtConflicts(e.logger, entries)
	entries = append(entries, e.resolveDeclared(depends, entries)...)

	for _, entry := range entries {
		if !entry.Resolved() {
			e.logger.Warn("unresolved dependency: " + entry.RawName)
		}
	}

	return domain.NewResolutionManifest(entries), nil
}

// resolveOne walks the chain in order and takes the first hit.
func (e *Engine) resolveOne(ctx context.Context, name string) (domain.ResolvedDependency, error) {
	for _, resolver := range e.chain {
		rec, ok, err := resolver.Resolve(ctx, name)
		if err != nil {
			return domain.ResolvedDependency{}, zerr.With(err, "soname", name)
		}
		if ok {
			return domain.ResolvedDependency{
				RawName:    name,
				TargetRef:  rec.OwningPackageRef,
				Source:     resolver.Source(),
				Confidence: rec.MatchConfidence,
			}, nil
		}
	}
	return domain.ResolvedDependency{
		RawName: name,
		Source:  domain.SourceUnresolved,
	}, nil
}

// resolveDeclared maps the control file's Depends entries onto attributes,
// skipping anything the binary scan already covered.
func (e *Engine) resolveDeclared(depends []string, existing []domain.ResolvedDependency) []domain.ResolvedDependency {
	if e.declared == nil {
		return nil
	}

	have := make(map[string]struct{}, len(existing))
	for _, entry := range existing {
		if entry.Resolved() {
			have[entry.TargetRef] = struct{}{}
		}
	}

	var extra []domain.ResolvedDependency
	for _, name := range depends {
		attr, ok := e.declared(name)
		if !ok {
			continue
		}
		if _, dup := have[attr]; dup {
			continue
		}
		have[attr] = struct{}{}
		extra = append(extra, domain.ResolvedDependency{
			RawName:    name,
			TargetRef:  attr,
			Source:     domain.SourceStatic,
			Confidence: 1.0,
		})
	}
	return extra
}

// pruneQtConflicts keeps a single Qt major version. Mixing qt5 and qt6
// libraries in one closure breaks autoPatchelfHook; when both families
// matched, the qt5 entries are demoted to unresolved so the gap stays
// visible in the output.
func pruneQtConflicts(log ports.Logger, entries []domain.ResolvedDependency) []domain.ResolvedDependency {
	qt5, qt6 := false, false
	for _, entry := range entries {
		switch {
		case strings.HasPrefix(entry.TargetRef, "qt5."):
			qt5 = true
		case strings.HasPrefix(entry.TargetRef, "qt6."):
			qt6 = true
		}
	}
	if !qt5 || !qt6 {
		return entries
	}

	log.Warn("both Qt5 and Qt6 dependencies matched; dropping the Qt5 entries")

	for i, entry := range entries {
		if strings.HasPrefix(entry.TargetRef, "qt5.") {
			entries[i] = domain.ResolvedDependency{
				RawName: entry.RawName,
				Source:  domain.SourceUnresolved,
			}
		}
	}
	return entries
}

// isLoader reports whether the soname is the dynamic loader, which nixpkgs
// supplies implicitly.
func isLoader(name string) bool {
	return strings.HasPrefix(name, "ld-linux") || strings.HasPrefix(name, "ld.so")
}
