package published

import (
	"context"

	"go.trai.ch/crier/internal/core/domain"
	"go.trai.ch/crier/internal/core/ports"
)

// Resolver builds packages collections from a registry and from git tags.
type Resolver struct {
	downloader ports.Downloader
	manifests  ports.ManifestReader
	vcsInfo    ports.VcsInfoReader
	git        ports.Git
	tracer     ports.Tracer
	logger     ports.Logger
}

// NewResolver creates a new Resolver with the given dependencies.
func NewResolver(
	downloader ports.Downloader,
	manifests ports.ManifestReader,
	vcsInfo ports.VcsInfoReader,
	git ports.Git,
	tracer ports.Tracer,
	logger ports.Logger,
) *Resolver {
	return &Resolver{
		downloader: downloader,
		manifests:  manifests,
		vcsInfo:    vcsInfo,
		git:        git,
		tracer:     tracer,
		logger:     logger,
	}
}

// LatestOptions selects what LatestPackages resolves.
type LatestOptions struct {
	// Project names the release tags of the git-only packages.
	Project domain.TagNamer

	// Repository is the git repository that holds the workspace.
	Repository ports.Repository

	// RegistryPackages are resolved from the registry, in this order.
	RegistryPackages []domain.Package

	// GitOnlyPackages are resolved from their latest release tag.
	GitOnlyPackages []domain.Package

	// Manifest is the workspace root manifest in the working tree of Repository.
	// Its directory is where registry configuration is looked up. Empty means the
	// Cargo.toml at the repository root and the downloader's default directory.
	Manifest string

	// RegistryManifest, when set, is read instead of downloading from the registry.
	RegistryManifest string

	// Registry overrides the registry of every registry package.
	Registry string
}

// LatestPackages resolves the last published state of every requested package.
//
// Registry packages are resolved before git-only packages, and a git-only package
// replaces a registry entry of the same name. On error the partially built
// collection is closed and nothing is returned. On success the caller owns the
// collection and must Close it, then restore opts.Repository.
func (r *Resolver) LatestPackages(ctx context.Context, opts LatestOptions) (*Collection, error) {
	c := r.NewCollection()

	if err := c.ResolveRegistry(ctx, opts.Manifest, opts.RegistryManifest, opts.RegistryPackages, opts.Registry); err != nil {
		r.closeAfterFailure(c)
		return nil, err
	}

	if err := c.ResolveGitTags(ctx, opts.Project, opts.Repository, opts.Manifest, opts.GitOnlyPackages); err != nil {
		r.closeAfterFailure(c)
		return nil, err
	}

	return c, nil
}

func (r *Resolver) closeAfterFailure(c *Collection) {
	if err := c.Close(); err != nil {
		r.logger.Error(err)
	}
}
