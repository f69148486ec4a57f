package nixindex

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/deb2nix/internal/core/domain"
	"go.trai.ch/deb2nix/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newTestResolver(t *testing.T, q QueryFunc) *Resolver {
	t.Helper()

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any()).AnyTimes()

	r := NewResolver(&domain.Settings{
		Threshold:    0.82,
		QueryTimeout: time.Second,
	}, log)
	r.SetQueryFunc(q)
	return r
}

func TestResolveExactMatch(t *testing.T) {
	r := newTestResolver(t, func(_ context.Context, name string) ([]Hit, error) {
		if name == "libgtk-3.so.0" {
			return []Hit{{Attr: "gtk3.out", Path: "/nix/store/abc-gtk+3/lib/libgtk-3.so.0.2404.38"}}, nil
		}
		return nil, nil
	})

	rec, ok, err := r.Resolve(context.Background(), "libgtk-3.so.0")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "gtk3", rec.OwningPackageRef, "output suffix should be stripped")
	assert.InDelta(t, 1.0, rec.MatchConfidence, 1e-9)
}

func TestResolveBelowThreshold(t *testing.T) {
	r := newTestResolver(t, func(_ context.Context, _ string) ([]Hit, error) {
		return []Hit{{Attr: "something", Path: "/nix/store/xyz/lib/libcompletelyother.so.1"}}, nil
	})

	_, ok, err := r.Resolve(context.Background(), "libmadeup123.so.9")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolveNoHits(t *testing.T) {
	r := newTestResolver(t, func(_ context.Context, _ string) ([]Hit, error) {
		return nil, nil
	})

	_, ok, err := r.Resolve(context.Background(), "libmadeup123.so.9")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolveTimeoutIsMiss(t *testing.T) {
	r := newTestResolver(t, func(ctx context.Context, _ string) ([]Hit, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	r.settings.QueryTimeout = 10 * time.Millisecond

	_, ok, err := r.Resolve(context.Background(), "libslow.so.1")
	require.NoError(t, err, "a timed-out query must not fail the run")
	assert.False(t, ok)
}

func TestResolveFailingIndexIsMiss(t *testing.T) {
	calls := 0
	r := newTestResolver(t, func(_ context.Context, _ string) ([]Hit, error) {
		calls++
		return nil, errors.New("nix-locate failed: error: could not open database")
	})

	_, ok, err := r.Resolve(context.Background(), "libz.so.1")
	require.NoError(t, err, "an unqueryable index must not fail the run")
	assert.False(t, ok)
	assert.Equal(t, 1, calls)

	// The index stays disabled for the rest of the run.
	_, ok, err = r.Resolve(context.Background(), "libpng16.so.16")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, calls)
}

func TestResolveMemoizesQueries(t *testing.T) {
	calls := map[string]int{}
	r := newTestResolver(t, func(_ context.Context, name string) ([]Hit, error) {
		calls[name]++
		return []Hit{{Attr: "zlib", Path: "/nix/store/abc-zlib/lib/libz.so.1"}}, nil
	})

	for range 3 {
		_, ok, err := r.Resolve(context.Background(), "libz.so.1")
		require.NoError(t, err)
		require.True(t, ok)
	}
	for _, n := range calls {
		assert.Equal(t, 1, n, "each variant should be queried once")
	}
}

func TestResolveDiskCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	settings := &domain.Settings{Threshold: 0.82, CacheDir: dir}

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	calls := 0
	query := func(_ context.Context, _ string) ([]Hit, error) {
		calls++
		return []Hit{{Attr: "zlib", Path: "/nix/store/abc-zlib/lib/libz.so.1"}}, nil
	}

	first := NewResolver(settings, log)
	first.SetQueryFunc(query)
	_, ok, err := first.Resolve(context.Background(), "libz.so.1")
	require.NoError(t, err)
	require.True(t, ok)
	queriesFirstRun := calls

	second := NewResolver(settings, log)
	second.SetQueryFunc(query)
	rec, ok, err := second.Resolve(context.Background(), "libz.so.1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "zlib", rec.OwningPackageRef)
	assert.Equal(t, queriesFirstRun, calls, "second run should be served from disk")
}

func TestVariants(t *testing.T) {
	got := Variants("libfoo-bar.so.2.1")

	assert.Equal(t, "libfoo-bar.so.2.1", got[0], "the exact name comes first")
	assert.Contains(t, got, "libfoo_bar.so.2.1")
	assert.Contains(t, got, "libfoo-bar.so.2")
	assert.Contains(t, got, "libfoo-bar.so")

	seen := map[string]struct{}{}
	for _, v := range got {
		_, dup := seen[v]
		assert.False(t, dup, "variant %q appears twice", v)
		seen[v] = struct{}{}
	}
}

func TestVariantsNoVersion(t *testing.T) {
	assert.Equal(t, []string{"libfoo.so"}, Variants("libfoo.so"))
}

func TestTrimOutputSuffix(t *testing.T) {
	assert.Equal(t, "gtk3", trimOutputSuffix("gtk3.out"))
	assert.Equal(t, "qt5.qtbase", trimOutputSuffix("qt5.qtbase.dev"))
	assert.Equal(t, "zlib", trimOutputSuffix("zlib"))
	assert.Equal(t, "xorg.libX11", trimOutputSuffix("xorg.libX11"))
}

func TestParseLocateOutput(t *testing.T) {
	out := []byte(`gtk3.out                7,618,632 r /nix/store/aaa-gtk+-3.24/lib/libgtk-3.so.0.2404.38
(python312Packages.pygtk) 1,024 r /nix/store/bbb/lib/libgtk-3.so.0

zlib                      121,280 r /nix/store/ccc-zlib-1.3/lib/libz.so.1.3
`)

	hits := parseLocateOutput(out)
	require.Len(t, hits, 2)
	assert.Equal(t, Hit{Attr: "gtk3.out", Path: "/nix/store/aaa-gtk+-3.24/lib/libgtk-3.so.0.2404.38"}, hits[0])
	assert.Equal(t, Hit{Attr: "zlib", Path: "/nix/store/ccc-zlib-1.3/lib/libz.so.1.3"}, hits[1])
}
