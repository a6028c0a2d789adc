package published

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/crier/internal/core/domain"
	"go.trai.ch/crier/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	initialCommitMessage = "init"
	fallbackGitEmail     = "test@registry"
	fallbackGitName      = "test"
)

// registryGroup is a run of adjacent packages that share a target registry.
type registryGroup struct {
	registry string
	names    []string
}

// groupByRegistry splits pkgs into runs of adjacent packages with the same
// target registry. Packages are never reordered, so non-adjacent packages of
// one registry end up in separate groups.
func groupByRegistry(pkgs []domain.Package, override string) []registryGroup {
	var groups []registryGroup
	for i := range pkgs {
		reg := pkgs[i].TargetRegistry(override)
		if n := len(groups); n > 0 && groups[n-1].registry == reg {
			groups[n-1].names = append(groups[n-1].names, pkgs[i].Name)
			continue
		}
		groups = append(groups, registryGroup{registry: reg, names: []string{pkgs[i].Name}})
	}
	return groups
}

// ResolveRegistry adds the registry state of locals to the collection.
//
// When registryManifest is set, the publishable packages it defines are taken as
// the registry state and nothing is downloaded. Otherwise the latest published
// version of every package in locals is downloaded into the scratch directory and
// turned into a one-commit git repository. Registries are looked up from the
// directory of the workspace manifest, when given.
func (c *Collection) ResolveRegistry(
	ctx context.Context,
	manifest string,
	registryManifest string,
	locals []domain.Package,
	registry string,
) error {
	ctx, span := c.resolver.tracer.Start(ctx, "resolve.registry")
	defer span.End()

	if registryManifest != "" {
		span.SetAttribute("crier.registry_manifest", registryManifest)
		if err := c.readRegistryManifest(ctx, registryManifest); err != nil {
			span.RecordError(err)
			return err
		}
		return nil
	}

	if len(locals) == 0 {
		return nil
	}

	dir, err := c.ensureScratchDir()
	if err != nil {
		span.RecordError(err)
		return err
	}

	var workspaceDir string
	if manifest != "" {
		workspaceDir = filepath.Dir(manifest)
	}

	var downloaded []domain.Package
	for _, group := range groupByRegistry(locals, registry) {
		pkgs, err := c.resolver.download(ctx, dir, workspaceDir, group)
		if err != nil {
			span.RecordError(err)
			return err
		}
		downloaded = append(downloaded, pkgs...)
	}

	for i := range downloaded {
		p, err := c.resolver.initializeRegistryPackage(ctx, &downloaded[i])
		if err != nil {
			err = zerr.With(zerr.Wrap(err, domain.ErrPackageRepoInitFailed.Error()), "package", downloaded[i].Name)
			span.RecordError(err)
			return err
		}
		c.insert(p)
	}

	span.SetAttribute("crier.packages", len(downloaded))
	return nil
}

func (c *Collection) readRegistryManifest(ctx context.Context, manifestPath string) error {
	pkgs, err := c.resolver.manifests.ReadMetadata(ctx, manifestPath)
	if err != nil {
		return err
	}

	for i := range pkgs {
		if pkgs[i].IsPublishable() {
			c.insert(domain.PublishedPackage{Package: pkgs[i]})
		}
	}
	return nil
}

func (r *Resolver) download(ctx context.Context, dir, workspaceDir string, group registryGroup) ([]domain.Package, error) {
	ctx, span := r.tracer.Start(ctx, "registry.download",
		ports.WithAttribute("crier.registry", group.registry),
		ports.WithAttribute("crier.packages", len(group.names)),
	)
	defer span.End()

	pkgs, err := r.downloader.Download(ctx, ports.DownloadRequest{
		Packages:     group.names,
		Dir:          dir,
		Registry:     group.registry,
		WorkspaceDir: workspaceDir,
	})
	if err != nil {
		err = zerr.With(zerr.Wrap(err, domain.ErrDownloadFailed.Error()), "registry", group.registry)
		span.RecordError(err)
		return nil, err
	}
	return pkgs, nil
}

// initializeRegistryPackage records and removes the vcs info file of a downloaded
// package, then commits its contents into a fresh git repository.
func (r *Resolver) initializeRegistryPackage(ctx context.Context, pkg *domain.Package) (domain.PublishedPackage, error) {
	dir := pkg.Dir()

	var commit string
	vcsInfoPath := filepath.Join(dir, domain.VcsInfoFileName)
	hasVcsInfo, err := pathExists(vcsInfoPath)
	if err != nil {
		return domain.PublishedPackage{}, err
	}
	if hasVcsInfo {
		commit, _ = r.vcsInfo.ReadCommit(vcsInfoPath)
		if err := os.Remove(vcsInfoPath); err != nil {
			return domain.PublishedPackage{}, zerr.With(
				zerr.Wrap(err, domain.ErrVcsInfoRemoveFailed.Error()), "path", vcsInfoPath)
		}
	}

	hasRepo, err := pathExists(filepath.Join(dir, domain.GitDirName))
	if err != nil {
		return domain.PublishedPackage{}, err
	}
	if !hasRepo {
		if err := r.initPackageRepo(ctx, dir); err != nil {
			return domain.PublishedPackage{}, err
		}
	}

	return domain.PublishedPackage{Package: *pkg, OriginCommit: commit}, nil
}

func (r *Resolver) initPackageRepo(ctx context.Context, dir string) error {
	if _, err := r.git.Run(ctx, dir, "init"); err != nil {
		return err
	}
	if _, err := r.git.Run(ctx, dir, "add", "."); err != nil {
		return err
	}

	_, err := r.git.Run(ctx, dir, "commit", "-m", initialCommitMessage)
	if err == nil || !errors.Is(err, domain.ErrGitIdentityUnknown) {
		return err
	}

	// The repository is local to the scratch directory, so a placeholder identity is enough.
	r.logger.Warn("git author identity unknown, committing registry package as " + fallbackGitName)
	if _, err := r.git.Run(ctx, dir, "config", "user.email", fallbackGitEmail); err != nil {
		return err
	}
	if _, err := r.git.Run(ctx, dir, "config", "user.name", fallbackGitName); err != nil {
		return err
	}
	_, err = r.git.Run(ctx, dir, "commit", "-m", initialCommitMessage)
	return err
}

func pathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, zerr.With(zerr.Wrap(err, "failed to stat path"), "path", path)
	}
}
