package deb

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/deb2nix/internal/core/ports"
)

// MetadataNodeID is the unique identifier for the metadata reader Graft node.
const MetadataNodeID graft.ID = "adapter.deb_metadata"

// UnpackerNodeID is the unique identifier for the unpacker Graft node.
const UnpackerNodeID graft.ID = "adapter.deb_unpacker"

func init() {
	graft.Register(graft.Node[ports.MetadataReader]{
		ID:        MetadataNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.MetadataReader, error) {
			return NewReader(), nil
		},
	})

	graft.Register(graft.Node[ports.Unpacker]{
		ID:        UnpackerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Unpacker, error) {
			return NewUnpacker(), nil
		},
	})
}
