package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/crier/internal/adapters/cargo"  //nolint:depguard // Wired in app layer
	"go.trai.ch/crier/internal/adapters/cas"    //nolint:depguard // Wired in app layer
	"go.trai.ch/crier/internal/adapters/config" //nolint:depguard // Wired in app layer
	"go.trai.ch/crier/internal/adapters/git"    //nolint:depguard // Wired in app layer
	"go.trai.ch/crier/internal/adapters/logger" //nolint:depguard // Wired in app layer
	"go.trai.ch/crier/internal/core/ports"
	"go.trai.ch/crier/internal/engine/published"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components groups what the command line needs to run.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			cargo.ManifestNodeID,
			git.OpenerNodeID,
			published.NodeID,
			cas.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	manifests, err := graft.Dep[ports.ManifestReader](ctx)
	if err != nil {
		return nil, err
	}

	repositories, err := graft.Dep[ports.RepositoryOpener](ctx)
	if err != nil {
		return nil, err
	}

	resolver, err := graft.Dep[*published.Resolver](ctx)
	if err != nil {
		return nil, err
	}

	cache, err := graft.Dep[ports.CrateCache](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, manifests, repositories, resolver, cache, log), nil
}
