package published

import (
	"context"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/crier/internal/core/domain"
	"go.trai.ch/crier/internal/core/ports"
	"go.trai.ch/zerr"
)

// ResolveGitTags adds the state of pkgs at their latest release tag to the collection.
//
// Every tag is checked out into its own worktree under the scratch directory.
// manifest is the workspace root manifest in the caller's checkout; the manifest
// at the same place inside the repository is read from each worktree. An empty
// manifest means the Cargo.toml at the repository root.
// Packages without a matching tag are skipped. Entries already in the collection
// are replaced.
func (c *Collection) ResolveGitTags(
	ctx context.Context,
	namer domain.TagNamer,
	repo ports.Repository,
	manifest string,
	pkgs []domain.Package,
) error {
	if len(pkgs) == 0 {
		return nil
	}

	ctx, span := c.resolver.tracer.Start(ctx, "resolve.git_tags",
		ports.WithAttribute("crier.packages", len(pkgs)))
	defer span.End()

	relManifest, err := repositoryRelativePath(repo.Dir(), manifest)
	if err != nil {
		span.RecordError(err)
		return err
	}

	tags, err := repo.TagsSortedByVersion(ctx, true)
	if err != nil {
		err = zerr.With(zerr.Wrap(err, domain.ErrTagListFailed.Error()), "repository", repo.Dir())
		span.RecordError(err)
		return err
	}

	for i := range pkgs {
		if err := c.resolveTaggedPackage(ctx, namer, repo, relManifest, tags, pkgs[i].Name); err != nil {
			span.RecordError(err)
			return err
		}
	}
	return nil
}

func (c *Collection) resolveTaggedPackage(
	ctx context.Context,
	namer domain.TagNamer,
	repo ports.Repository,
	relManifest string,
	tags []string,
	name string,
) error {
	tag, ok := domain.LatestReleaseTag(tags, name, namer)
	if !ok {
		c.resolver.logger.Info("no release tag found for " + name + ", skipping")
		return nil
	}

	scratch, err := c.ensureScratchDir()
	if err != nil {
		return err
	}

	ctx, span := c.resolver.tracer.Start(ctx, "git_tag.materialize",
		ports.WithAttribute("crier.package", name),
		ports.WithAttribute("crier.tag", tag),
	)
	defer span.End()

	storeDir := filepath.Join(scratch, name)
	if err := repo.AddWorktree(ctx, storeDir, tag); err != nil {
		err = zerr.With(zerr.Wrap(err, domain.ErrWorktreeCreateFailed.Error()), "tag", tag)
		span.RecordError(err)
		return err
	}

	manifestPath := filepath.Join(storeDir, relManifest)
	pkgs, err := c.resolver.manifests.ReadMetadata(ctx, manifestPath)
	if err != nil {
		err = zerr.With(err, "tag", tag)
		span.RecordError(err)
		return err
	}

	idx := slices.IndexFunc(pkgs, func(p domain.Package) bool { return p.Name == name })
	if idx < 0 {
		err := zerr.With(zerr.With(domain.ErrPackageNotInManifest, "package", name), "tag", tag)
		span.RecordError(err)
		return err
	}

	commit, _ := repo.TagCommit(ctx, tag)
	c.insert(domain.PublishedPackage{Package: pkgs[idx], OriginCommit: commit})
	return nil
}

// repositoryRelativePath returns manifest relative to the repository root.
func repositoryRelativePath(repoDir, manifest string) (string, error) {
	if manifest == "" {
		return domain.CargoTomlName, nil
	}
	if abs, err := filepath.Abs(manifest); err == nil {
		manifest = abs
	}
	if rel, ok := relativeWithin(repoDir, manifest); ok {
		return rel, nil
	}

	// git reports the repository root with symlinks resolved.
	realDir, dirErr := filepath.EvalSymlinks(repoDir)
	realManifest, manifestErr := filepath.EvalSymlinks(manifest)
	if dirErr == nil && manifestErr == nil {
		if rel, ok := relativeWithin(realDir, realManifest); ok {
			return rel, nil
		}
	}
	return "", zerr.With(zerr.With(domain.ErrManifestOutsideRepository, "manifest", manifest), "repository", repoDir)
}

func relativeWithin(dir, path string) (string, bool) {
	rel, err := filepath.Rel(dir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}
