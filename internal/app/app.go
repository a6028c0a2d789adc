// Package app orchestrates the published-state resolution of a workspace.
package app

import (
	"cmp"
	"context"
	"os"
	"slices"

	"go.trai.ch/crier/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/crier/internal/core/domain"
	"go.trai.ch/crier/internal/core/ports"
	"go.trai.ch/crier/internal/engine/published"
	"go.trai.ch/zerr"
)

// Source names where a package's published state was resolved from.
type Source string

const (
	// SourceRegistry marks packages resolved from a registry.
	SourceRegistry Source = "registry"
	// SourceGitTag marks packages resolved from their latest release tag.
	SourceGitTag Source = "git"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	manifests    ports.ManifestReader
	repositories ports.RepositoryOpener
	resolver     *published.Resolver
	cache        ports.CrateCache
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	manifests ports.ManifestReader,
	repositories ports.RepositoryOpener,
	resolver *published.Resolver,
	cache ports.CrateCache,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		manifests:    manifests,
		repositories: repositories,
		resolver:     resolver,
		cache:        cache,
		logger:       log,
	}
}

// PublishedOptions configures the Published method.
type PublishedOptions struct {
	// Dir is where the configuration search starts. Empty selects the working directory.
	Dir string

	// ConfigPath reads this configuration file instead of searching for one.
	ConfigPath string

	// Registry overrides the registry of every package.
	Registry string

	// RegistryManifest reads an already materialized registry workspace instead of downloading.
	RegistryManifest string

	// TraceFile, when set, receives the spans of the run as JSON.
	TraceFile string
}

// PackageStatus is the local and published state of one workspace package.
type PackageStatus struct {
	Name             string `json:"name"`
	LocalVersion     string `json:"local_version"`
	Source           Source `json:"source"`
	Published        bool   `json:"published"`
	PublishedVersion string `json:"published_version,omitempty"`
	OriginCommit     string `json:"origin_commit,omitempty"`
}

// Published resolves the last published state of every package in the workspace.
// The result follows the order in which the workspace manifest lists its packages.
func (a *App) Published(ctx context.Context, opts PublishedOptions) (statuses []PackageStatus, err error) {
	if opts.TraceFile != "" {
		shutdown, traceErr := setupTracing(opts.TraceFile)
		if traceErr != nil {
			return nil, traceErr
		}
		defer func() {
			if shutdownErr := shutdown(ctx); shutdownErr != nil {
				a.logger.Error(shutdownErr)
			}
		}()
	}

	cfg, err := a.loadConfig(opts)
	if err != nil {
		return nil, err
	}
	if opts.Registry != "" {
		cfg.Registry = opts.Registry
	}
	if opts.RegistryManifest != "" {
		cfg.RegistryManifest = opts.RegistryManifest
	}

	locals, err := a.manifests.ReadMetadata(ctx, cfg.Manifest)
	if err != nil {
		return nil, err
	}

	project, err := cfg.Project(len(locals))
	if err != nil {
		return nil, err
	}

	registryPackages, gitOnlyPackages := partition(cfg, locals)

	var repo ports.Repository
	if len(gitOnlyPackages) > 0 {
		repo, err = a.repositories.Open(ctx, cfg.Root)
		if err != nil {
			return nil, err
		}
		defer a.pruneWorktrees(ctx, repo)
	}

	collection, err := a.resolver.LatestPackages(ctx, published.LatestOptions{
		Project:          project,
		Repository:       repo,
		RegistryPackages: registryPackages,
		GitOnlyPackages:  gitOnlyPackages,
		Manifest:         cfg.Manifest,
		RegistryManifest: cfg.RegistryManifest,
		Registry:         cfg.Registry,
	})
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := collection.Close(); closeErr != nil {
			a.logger.Error(closeErr)
		}
	}()

	statuses = make([]PackageStatus, 0, len(locals))
	for i := range locals {
		statuses = append(statuses, newPackageStatus(cfg, &locals[i], collection))
	}
	return statuses, nil
}

// Clean removes the downloaded crate archives kept between runs.
func (a *App) Clean(_ context.Context) error {
	a.logger.Info("removing crate cache...")
	if err := a.cache.Clear(); err != nil {
		return err
	}
	a.logger.Info("removed crate cache")
	return nil
}

func (a *App) loadConfig(opts PublishedOptions) (*domain.Config, error) {
	if opts.ConfigPath != "" {
		return a.configLoader.LoadFile(opts.ConfigPath)
	}

	dir := opts.Dir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, zerr.Wrap(err, "failed to get working directory")
		}
		dir = cwd
	}
	return a.configLoader.Load(dir)
}

// pruneWorktrees drops the worktree records left behind by git-tag resolution.
func (a *App) pruneWorktrees(ctx context.Context, repo ports.Repository) {
	if err := repo.PruneWorktrees(context.WithoutCancel(ctx)); err != nil {
		a.logger.Error(err)
	}
}

// partition splits the workspace into registry and git-only packages.
// Registry packages are stably sorted by target registry so that packages of the
// same registry are adjacent and download together.
func partition(cfg *domain.Config, locals []domain.Package) (registryPackages, gitOnlyPackages []domain.Package) {
	for i := range locals {
		if cfg.IsGitOnly(&locals[i]) {
			gitOnlyPackages = append(gitOnlyPackages, locals[i])
		} else {
			registryPackages = append(registryPackages, locals[i])
		}
	}

	slices.SortStableFunc(registryPackages, func(a, b domain.Package) int {
		return cmp.Compare(a.TargetRegistry(cfg.Registry), b.TargetRegistry(cfg.Registry))
	})
	return registryPackages, gitOnlyPackages
}

func newPackageStatus(cfg *domain.Config, local *domain.Package, c *published.Collection) PackageStatus {
	status := PackageStatus{
		Name:         local.Name,
		LocalVersion: local.Version,
		Source:       SourceRegistry,
	}
	if cfg.IsGitOnly(local) {
		status.Source = SourceGitTag
	}

	if pkg, ok := c.Published(local.Name); ok {
		status.Published = true
		status.PublishedVersion = pkg.Package.Version
		status.OriginCommit, _ = pkg.Commit()
	}
	return status
}

func setupTracing(path string) (telemetry.ShutdownFunc, error) {
	//nolint:gosec // path is provided by the user on the command line
	f, err := os.Create(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create trace file"), "path", path)
	}

	shutdown, err := telemetry.Setup(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	return func(ctx context.Context) error {
		shutdownErr := shutdown(ctx)
		if closeErr := f.Close(); shutdownErr == nil && closeErr != nil {
			return zerr.With(zerr.Wrap(closeErr, "failed to close trace file"), "path", path)
		}
		return shutdownErr
	}, nil
}
