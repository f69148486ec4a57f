// Package app implements the application layer: the conversion pipeline
// from package archive to generated expression.
package app

import (
	"context"
	"fmt"
	"os"

	"go.trai.ch/deb2nix/internal/adapters/nixindex"  //nolint:depguard // Wired in app layer
	"go.trai.ch/deb2nix/internal/adapters/staticmap" //nolint:depguard // Wired in app layer
	"go.trai.ch/deb2nix/internal/core/domain"
	"go.trai.ch/deb2nix/internal/core/ports"
	"go.trai.ch/deb2nix/internal/engine/resolve"
	"go.trai.ch/zerr"
)

// IndexFactory builds the per-run indexed resolver from the loaded settings.
type IndexFactory func(settings *domain.Settings, logger ports.Logger) ports.LibraryResolver

// App drives the conversion pipeline.
type App struct {
	logger       ports.Logger
	tracer       ports.Tracer
	escalator    ports.Escalator
	configLoader ports.ConfigLoader
	fetcher      ports.Fetcher
	metadata     ports.MetadataReader
	unpacker     ports.Unpacker
	scanner      ports.BinaryScanner
	generator    ports.ExpressionGenerator

	indexFactory IndexFactory
}

// New creates an App instance.
func New(
	logger ports.Logger,
	tracer ports.Tracer,
	escalator ports.Escalator,
	configLoader ports.ConfigLoader,
	fetcher ports.Fetcher,
	metadata ports.MetadataReader,
	unpacker ports.Unpacker,
	scanner ports.BinaryScanner,
	generator ports.ExpressionGenerator,
) *App {
	return &App{
		logger:       logger,
		tracer:       tracer,
		escalator:    escalator,
		configLoader: configLoader,
		fetcher:      fetcher,
		metadata:     metadata,
		unpacker:     unpacker,
		scanner:      scanner,
		generator:    generator,
		indexFactory: func(settings *domain.Settings, log ports.Logger) ports.LibraryResolver {
			return nixindex.NewResolver(settings, log)
		},
	}
}

// SetIndexFactory replaces the indexed-resolver constructor. Used by tests.
func (a *App) SetIndexFactory(f IndexFactory) {
	a.indexFactory = f
}

// ConvertOptions are the per-invocation inputs of a conversion.
type ConvertOptions struct {
	// Source is the archive URL or local path.
	Source string

	// ConfigPath points at the configuration file.
	ConfigPath string

	// OutputPath overrides the configured output location when non-empty.
	OutputPath string
}

// Convert runs the full pipeline: escalation gate, fetch, metadata, unpack,
// scan, resolve, generate. A run with unresolved dependencies still succeeds;
// the gaps are reported and left visible in the output.
func (a *App) Convert(ctx context.Context, opts ConvertOptions) error {
	esc, err := a.escalator.Ensure(ctx)
	if err != nil {
		return err
	}
	if esc.State == domain.EscalationReadyInContext {
		// The pipeline already ran to completion inside the provisioned
		// context; all that is left is to carry its exit code out.
		return &domain.EscalatedExitError{Code: esc.ExitCode}
	}

	settings, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	if opts.OutputPath != "" {
		settings.OutputPath = opts.OutputPath
	}

	fetchInfo, err := a.stageFetch(ctx, opts.Source)
	if err != nil {
		return err
	}

	if err := a.metadata.DetectFormat(fetchInfo.LocalPath); err != nil {
		return err
	}
	meta, err := a.metadata.Read(ctx, fetchInfo.LocalPath)
	if err != nil {
		return zerr.Wrap(err, "failed to read package metadata")
	}
	a.logger.Info("converting " + meta.Name + " " + meta.Version + " (" + meta.System() + ")")

	scan, err := a.stageScan(ctx, fetchInfo.LocalPath)
	if err != nil {
		return err
	}

	manifest, err := a.stageResolve(ctx, settings, scan, meta.Depends)
	if err != nil {
		return err
	}

	expr, err := a.generator.Generate(meta, fetchInfo, manifest)
	if err != nil {
		return err
	}
	if err := os.WriteFile(settings.OutputPath, []byte(expr), 0o644); err != nil { //nolint:gosec // generated expression is not secret
		return zerr.Wrap(err, "failed to write expression")
	}

	resolved := manifest.Len() - len(manifest.Unresolved())
	a.logger.Info(fmt.Sprintf("wrote %s: %d dependencies resolved, %d unresolved",
		settings.OutputPath, resolved, len(manifest.Unresolved())))
	return nil
}

func (a *App) stageFetch(ctx context.Context, source string) (domain.FetchInfo, error) {
	ctx, span := a.tracer.Start(ctx, "fetch archive")
	info, err := a.fetcher.Fetch(ctx, source)
	span.End(err)
	if err != nil {
		return domain.FetchInfo{}, zerr.Wrap(err, "failed to obtain package archive")
	}
	return info, nil
}

func (a *App) stageScan(ctx context.Context, archivePath string) (*domain.ScanResult, error) {
	ctx, span := a.tracer.Start(ctx, "unpack and scan")
	scan, err := a.unpackAndScan(ctx, archivePath)
	span.End(err)
	return scan, err
}

func (a *App) unpackAndScan(ctx context.Context, archivePath string) (*domain.ScanResult, error) {
	dest, err := os.MkdirTemp("", "deb2nix-unpack-*")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create unpack directory")
	}
	defer os.RemoveAll(dest) //nolint:errcheck // best-effort cleanup

	if err := a.unpacker.Unpack(ctx, archivePath, dest); err != nil {
		return nil, err
	}

	scan, err := a.scanner.Scan(ctx, dest)
	if err != nil {
		return nil, zerr.Wrap(err, "binary scan failed")
	}
	a.logger.Info(fmt.Sprintf("scan found %d required libraries", len(scan.Dependencies)))
	return scan, nil
}

func (a *App) stageResolve(ctx context.Context, settings *domain.Settings, scan *domain.ScanResult, depends []string) (*domain.ResolutionManifest, error) {
	ctx, span := a.tracer.Start(ctx, "resolve dependencies")
	manifest, err := a.resolveAll(ctx, settings, scan, depends)
	span.End(err)
	return manifest, err
}

// resolveAll builds the per-run resolver chain, curated map first, index
// second, and hands it to the aggregation engine.
func (a *App) resolveAll(ctx context.Context, settings *domain.Settings, scan *domain.ScanResult, depends []string) (*domain.ResolutionManifest, error) {
	static, err := staticmap.NewWithExtra(settings.ExtraMapPath)
	if err != nil {
		return nil, err
	}

	chain := []ports.LibraryResolver{static, a.indexFactory(settings, a.logger)}
	engine := resolve.New(a.logger, chain, static.LookupDebian)
	engine.SetWorkers(settings.Workers)

	return engine.Aggregate(ctx, scan, depends)
}
