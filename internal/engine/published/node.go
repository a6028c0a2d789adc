package published

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/crier/internal/adapters/cargo"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/crier/internal/adapters/git"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/crier/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/crier/internal/adapters/registry"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/crier/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/crier/internal/core/ports"
)

// NodeID is the unique identifier for the resolver Graft node.
const NodeID graft.ID = "engine.published"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			registry.NodeID,
			cargo.ManifestNodeID,
			cargo.VcsInfoNodeID,
			git.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Resolver, error) {
			downloader, err := graft.Dep[ports.Downloader](ctx)
			if err != nil {
				return nil, err
			}

			manifests, err := graft.Dep[ports.ManifestReader](ctx)
			if err != nil {
				return nil, err
			}

			vcsInfo, err := graft.Dep[ports.VcsInfoReader](ctx)
			if err != nil {
				return nil, err
			}

			gitRunner, err := graft.Dep[ports.Git](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewResolver(downloader, manifests, vcsInfo, gitRunner, tracer, log), nil
		},
	})
}
