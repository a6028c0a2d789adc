package git

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/crier/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the git runner Graft node.
	NodeID graft.ID = "adapter.git"
	// OpenerNodeID is the unique identifier for the repository opener Graft node.
	OpenerNodeID graft.ID = "adapter.git_repository_opener"
)

func init() {
	graft.Register(graft.Node[ports.Git]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Git, error) {
			return NewRunner(), nil
		},
	})

	graft.Register(graft.Node[ports.RepositoryOpener]{
		ID:        OpenerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID},
		Run: func(ctx context.Context) (ports.RepositoryOpener, error) {
			g, err := graft.Dep[ports.Git](ctx)
			if err != nil {
				return nil, err
			}
			return NewOpener(g), nil
		},
	})
}
