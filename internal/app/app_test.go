package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/deb2nix/internal/core/domain"
	"go.trai.ch/deb2nix/internal/core/ports"
	"go.trai.ch/deb2nix/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	app       *App
	escalator *mocks.MockEscalator
	config    *mocks.MockConfigLoader
	fetcher   *mocks.MockFetcher
	metadata  *mocks.MockMetadataReader
	unpacker  *mocks.MockUnpacker
	scanner   *mocks.MockBinaryScanner
	generator *mocks.MockExpressionGenerator
	resolver  *mocks.MockLibraryResolver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()

	span := mocks.NewMockSpan(ctrl)
	span.EXPECT().End(gomock.Any()).AnyTimes()
	span.EXPECT().Write(gomock.Any()).Return(0, nil).AnyTimes()
	tracer := mocks.NewMockTracer(ctrl)
	tracer.EXPECT().Start(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, ports.Span) {
			return ctx, span
		}).AnyTimes()

	f := &fixture{
		escalator: mocks.NewMockEscalator(ctrl),
		config:    mocks.NewMockConfigLoader(ctrl),
		fetcher:   mocks.NewMockFetcher(ctrl),
		metadata:  mocks.NewMockMetadataReader(ctrl),
		unpacker:  mocks.NewMockUnpacker(ctrl),
		scanner:   mocks.NewMockBinaryScanner(ctrl),
		generator: mocks.NewMockExpressionGenerator(ctrl),
		resolver:  mocks.NewMockLibraryResolver(ctrl),
	}
	f.app = New(log, tracer, f.escalator, f.config, f.fetcher,
		f.metadata, f.unpacker, f.scanner, f.generator)
	f.app.SetIndexFactory(func(_ *domain.Settings, _ ports.Logger) ports.LibraryResolver {
		return f.resolver
	})
	return f
}

func TestConvertHappyPath(t *testing.T) {
	f := newFixture(t)
	outPath := filepath.Join(t.TempDir(), "default.nix")

	f.escalator.EXPECT().Ensure(gomock.Any()).
		Return(domain.EscalationResult{State: domain.EscalationReady}, nil)
	f.config.EXPECT().Load("deb2nix.yaml").
		Return(&domain.Settings{Threshold: 0.82, OutputPath: outPath}, nil)
	f.fetcher.EXPECT().Fetch(gomock.Any(), "/tmp/hello.deb").
		Return(domain.FetchInfo{LocalPath: "/tmp/hello.deb", SHA256: "0abc"}, nil)
	f.metadata.EXPECT().DetectFormat("/tmp/hello.deb").Return(nil)
	f.metadata.EXPECT().Read(gomock.Any(), "/tmp/hello.deb").
		Return(domain.PackageMeta{Name: "hello", Version: "1.0", Architecture: "amd64"}, nil)
	f.unpacker.EXPECT().Unpack(gomock.Any(), "/tmp/hello.deb", gomock.Any()).Return(nil)
	f.scanner.EXPECT().Scan(gomock.Any(), gomock.Any()).
		Return(&domain.ScanResult{
			Dependencies: []domain.RawDependency{{
				Name:         domain.NewInternedString("libgtk-3.so.0"),
				SourceBinary: domain.NewInternedString("usr/bin/hello"),
			}},
			Provided: map[string]struct{}{},
		}, nil)
	f.generator.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ domain.PackageMeta, _ domain.FetchInfo, manifest *domain.ResolutionManifest) (string, error) {
			assert.Equal(t, []string{"gtk3"}, manifest.TargetRefs(),
				"the curated map resolves libgtk-3.so.0 without touching the index")
			return "{ }\n", nil
		})

	err := f.app.Convert(context.Background(), ConvertOptions{
		Source:     "/tmp/hello.deb",
		ConfigPath: "deb2nix.yaml",
	})
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "{ }\n", string(data))
}

func TestConvertForwardsEscalatedExit(t *testing.T) {
	f := newFixture(t)

	f.escalator.EXPECT().Ensure(gomock.Any()).
		Return(domain.EscalationResult{
			State:    domain.EscalationReadyInContext,
			ExitCode: 3,
		}, nil)

	err := f.app.Convert(context.Background(), ConvertOptions{Source: "x.deb"})

	var exitErr *domain.EscalatedExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.Code)
}

func TestConvertRejectsUnsupportedFormat(t *testing.T) {
	f := newFixture(t)

	f.escalator.EXPECT().Ensure(gomock.Any()).
		Return(domain.EscalationResult{State: domain.EscalationReady}, nil)
	f.config.EXPECT().Load(gomock.Any()).
		Return(&domain.Settings{Threshold: 0.82, OutputPath: "default.nix"}, nil)
	f.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).
		Return(domain.FetchInfo{LocalPath: "/tmp/app.AppImage"}, nil)
	f.metadata.EXPECT().DetectFormat("/tmp/app.AppImage").
		Return(domain.ErrUnsupportedFormat)

	err := f.app.Convert(context.Background(), ConvertOptions{Source: "/tmp/app.AppImage"})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestConvertOutputOverride(t *testing.T) {
	f := newFixture(t)
	override := filepath.Join(t.TempDir(), "hello.nix")

	f.escalator.EXPECT().Ensure(gomock.Any()).
		Return(domain.EscalationResult{State: domain.EscalationReady}, nil)
	f.config.EXPECT().Load(gomock.Any()).
		Return(&domain.Settings{Threshold: 0.82, OutputPath: "default.nix"}, nil)
	f.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).
		Return(domain.FetchInfo{LocalPath: "/tmp/hello.deb"}, nil)
	f.metadata.EXPECT().DetectFormat(gomock.Any()).Return(nil)
	f.metadata.EXPECT().Read(gomock.Any(), gomock.Any()).
		Return(domain.PackageMeta{Name: "hello", Version: "1.0", Architecture: "amd64"}, nil)
	f.unpacker.EXPECT().Unpack(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.scanner.EXPECT().Scan(gomock.Any(), gomock.Any()).
		Return(&domain.ScanResult{Provided: map[string]struct{}{}}, nil)
	f.generator.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("{ }\n", nil)

	err := f.app.Convert(context.Background(), ConvertOptions{
		Source:     "/tmp/hello.deb",
		OutputPath: override,
	})
	require.NoError(t, err)
	assert.FileExists(t, override)
}
