// Package nixindex implements the file-ownership index resolution layer on
// top of nix-locate.
package nixindex

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
	"go.trai.ch/deb2nix/internal/adapters/staticmap"
	"go.trai.ch/deb2nix/internal/core/domain"
	"go.trai.ch/deb2nix/internal/core/ports"
	"go.trai.ch/zerr"
)

// Hit is one raw row from an index query, before scoring.
type Hit struct {
	Attr string `json:"attr"`
	Path string `json:"path"`
}

// QueryFunc asks the index which packages provide a file with the given
// basename. The default implementation shells out to nix-locate.
type QueryFunc func(ctx context.Context, name string) ([]Hit, error)

// Resolver implements ports.LibraryResolver against a pre-built
// file-ownership index. It is constructed once per run and carries its own
// query cache; there is no process-global state.
type Resolver struct {
	settings *domain.Settings
	logger   ports.Logger
	query    QueryFunc
	disk     *diskCache

	mu          sync.Mutex
	memo        map[string][]Hit
	unavailable bool
}

// NewResolver creates a Resolver for one conversion run.
func NewResolver(settings *domain.Settings, logger ports.Logger) *Resolver {
	r := &Resolver{
		settings: settings,
		logger:   logger,
		query:    locateQuery,
		memo:     make(map[string][]Hit),
	}
	if settings.CacheDir != "" {
		r.disk = newDiskCache(settings.CacheDir)
	}
	return r
}

// SetQueryFunc replaces the index query implementation. Used by tests.
func (r *Resolver) SetQueryFunc(q QueryFunc) {
	r.query = q
}

// Source implements ports.LibraryResolver.
func (r *Resolver) Source() domain.ResolutionSource {
	return domain.SourceIndexed
}

// Resolve queries the index with the soname and its spelling variants and
// returns the best-scoring candidate above the configured threshold.
// An empty index, an index that cannot be queried at all, and a timed-out
// query are all misses, never failures: partial resolution is an accepted
// operating mode and a wrong package wired in is worse than a visible gap.
func (r *Resolver) Resolve(ctx context.Context, name string) (domain.IndexRecord, bool, error) {
	// Callers resolve dependencies in parallel; queries against the index
	// are serialized since each one is a subprocess anyway and the memo
	// makes repeats free.
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.unavailable {
		return domain.IndexRecord{}, false, nil
	}

	best := domain.IndexRecord{}
	for _, variant := range Variants(name) {
		hits, err := r.lookup(ctx, variant)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				r.logger.Warn("index query timed out for " + variant + "; treating as miss")
				return domain.IndexRecord{}, false, nil
			}
			// Covers a missing nix-locate binary as well as one whose
			// database was never built. The run continues on the
			// static map alone.
			r.logger.Warn(zerr.Wrap(domain.ErrIndexUnavailable, err.Error()).Error() + "; index resolution disabled for this run")
			r.unavailable = true
			return domain.IndexRecord{}, false, nil
		}

		for _, hit := range hits {
			rec := score(name, hit)
			if rec.MatchConfidence > best.MatchConfidence {
				best = rec
			}
		}
		if best.MatchConfidence >= 1.0 {
			break
		}
	}

	if best.MatchConfidence < r.settings.Threshold {
		return domain.IndexRecord{}, false, nil
	}
	return best, true, nil
}

// lookup consults the per-run memo, then the disk cache, then the index
// itself, applying the per-query timeout only to the live query.
func (r *Resolver) lookup(ctx context.Context, variant string) ([]Hit, error) {
	if hits, ok := r.memo[variant]; ok {
		return hits, nil
	}
	if r.disk != nil {
		if hits, ok := r.disk.get(variant); ok {
			r.memo[variant] = hits
			return hits, nil
		}
	}

	queryCtx := ctx
	if r.settings.QueryTimeout > 0 {
		var cancel context.CancelFunc
		queryCtx, cancel = context.WithTimeout(ctx, r.settings.QueryTimeout)
		defer cancel()
	}

	hits, err := r.query(queryCtx, variant)
	if err != nil {
		if queryCtx.Err() != nil && ctx.Err() == nil {
			return nil, context.DeadlineExceeded
		}
		return nil, err
	}

	r.memo[variant] = hits
	if r.disk != nil {
		r.disk.put(variant, hits)
	}
	return hits, nil
}

// score rates how well a hit answers the original query. Both sides are
// compared with version suffixes stripped so libgtk-3.so.0 still matches an
// on-disk libgtk-3.so.0.2404.38.
func score(query string, hit Hit) domain.IndexRecord {
	q := staticmap.TrimVersionSuffix(query)
	base := staticmap.TrimVersionSuffix(filepath.Base(hit.Path))

	dist := levenshtein.ComputeDistance(q, base)
	maxLen := max(len(q), len(base))
	confidence := 0.0
	if maxLen > 0 {
		confidence = 1.0 - float64(dist)/float64(maxLen)
	}

	return domain.IndexRecord{
		FilePath:         hit.Path,
		OwningPackageRef: trimOutputSuffix(hit.Attr),
		MatchConfidence:  confidence,
	}
}

// Variants generates the plausible alternate spellings of a soname, most
// specific first: the name itself, the version-suffix-stripped form, the
// major-version-only form, and hyphen/underscore swaps of each.
func Variants(name string) []string {
	var out []string
	seen := make(map[string]struct{})
	add := func(v string) {
		if v == "" {
			return
		}
		if _, dup := seen[v]; dup {
			return
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}

	addWithSwaps := func(v string) {
		add(v)
		if strings.ContainsRune(v, '-') {
			add(strings.ReplaceAll(v, "-", "_"))
		}
		if strings.ContainsRune(v, '_') {
			add(strings.ReplaceAll(v, "_", "-"))
		}
	}

	addWithSwaps(name)

	stripped := staticmap.TrimVersionSuffix(name)
	if major := majorOnly(name, stripped); major != "" {
		addWithSwaps(major)
	}
	addWithSwaps(stripped)

	return out
}

// majorOnly reduces libfoo.so.2.1.4 to libfoo.so.2. Returns "" when the
// name has at most one version component.
func majorOnly(name, stripped string) string {
	suffix := strings.TrimPrefix(name, stripped)
	parts := strings.Split(strings.TrimPrefix(suffix, "."), ".")
	if len(parts) < 2 {
		return ""
	}
	return stripped + "." + parts[0]
}

// trimOutputSuffix removes nix output suffixes (.out, .lib, .bin, .dev)
// from an attribute path.
func trimOutputSuffix(attr string) string {
	parts := strings.Split(attr, ".")
	if len(parts) < 2 {
		return attr
	}
	switch parts[len(parts)-1] {
	case "out", "lib", "bin", "dev":
		return strings.Join(parts[:len(parts)-1], ".")
	}
	return attr
}
