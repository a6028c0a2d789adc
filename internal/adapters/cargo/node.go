package cargo

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/crier/internal/core/ports"
)

const (
	// ManifestNodeID is the unique identifier for the manifest reader Graft node.
	ManifestNodeID graft.ID = "adapter.cargo_manifest"
	// VcsInfoNodeID is the unique identifier for the vcs info reader Graft node.
	VcsInfoNodeID graft.ID = "adapter.cargo_vcs_info"
)

func init() {
	graft.Register(graft.Node[ports.ManifestReader]{
		ID:        ManifestNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ManifestReader, error) {
			return NewManifestReader(), nil
		},
	})

	graft.Register(graft.Node[ports.VcsInfoReader]{
		ID:        VcsInfoNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.VcsInfoReader, error) {
			return NewVcsInfoReader(), nil
		},
	})
}
