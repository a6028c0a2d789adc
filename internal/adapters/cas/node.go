package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/crier/internal/core/ports"
)

// NodeID is the unique identifier for the archive cache Graft node.
const NodeID graft.ID = "adapter.crate_cache"

func init() {
	graft.Register(graft.Node[ports.CrateCache]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.CrateCache, error) {
			return NewStore(DefaultDir()), nil
		},
	})
}
