package elfscan

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/deb2nix/internal/adapters/logger"
	"go.trai.ch/deb2nix/internal/core/ports"
)

// NodeID is the unique identifier for the binary scanner Graft node.
const NodeID graft.ID = "adapter.binary_scanner"

func init() {
	graft.Register(graft.Node[ports.BinaryScanner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.BinaryScanner, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewScanner(log), nil
		},
	})
}
