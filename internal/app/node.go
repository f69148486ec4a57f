package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/deb2nix/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/deb2nix/internal/adapters/deb"       //nolint:depguard // Wired in app layer
	"go.trai.ch/deb2nix/internal/adapters/elfscan"   //nolint:depguard // Wired in app layer
	"go.trai.ch/deb2nix/internal/adapters/escalate"  //nolint:depguard // Wired in app layer
	"go.trai.ch/deb2nix/internal/adapters/fetch"     //nolint:depguard // Wired in app layer
	"go.trai.ch/deb2nix/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/deb2nix/internal/adapters/nixgen"    //nolint:depguard // Wired in app layer
	"go.trai.ch/deb2nix/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/deb2nix/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
			telemetry.NodeID,
			escalate.NodeID,
			config.NodeID,
			fetch.NodeID,
			deb.MetadataNodeID,
			deb.UnpackerNodeID,
			elfscan.NodeID,
			nixgen.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}
	escalator, err := graft.Dep[ports.Escalator](ctx)
	if err != nil {
		return nil, err
	}
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	fetcher, err := graft.Dep[ports.Fetcher](ctx)
	if err != nil {
		return nil, err
	}
	metadata, err := graft.Dep[ports.MetadataReader](ctx)
	if err != nil {
		return nil, err
	}
	unpacker, err := graft.Dep[ports.Unpacker](ctx)
	if err != nil {
		return nil, err
	}
	scanner, err := graft.Dep[ports.BinaryScanner](ctx)
	if err != nil {
		return nil, err
	}
	generator, err := graft.Dep[ports.ExpressionGenerator](ctx)
	if err != nil {
		return nil, err
	}

	return New(log, tracer, escalator, loader, fetcher, metadata, unpacker, scanner, generator), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	application, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    application,
		Logger: log,
		Tracer: tracer,
	}, nil
}
