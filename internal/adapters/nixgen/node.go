package nixgen

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/deb2nix/internal/core/ports"
)

// NodeID is the unique identifier for the expression generator Graft node.
const NodeID graft.ID = "adapter.expression_generator"

func init() {
	graft.Register(graft.Node[ports.ExpressionGenerator]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ExpressionGenerator, error) {
			return NewGenerator()
		},
	})
}
