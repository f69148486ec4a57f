package escalate

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/deb2nix/internal/adapters/logger"
	"go.trai.ch/deb2nix/internal/core/ports"
)

// NodeID is the unique identifier for the escalation controller Graft node.
const NodeID graft.ID = "adapter.escalator"

func init() {
	graft.Register(graft.Node[ports.Escalator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Escalator, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewController(log), nil
		},
	})
}
