package git

import (
	"context"
	"strings"

	"go.trai.ch/crier/internal/core/domain"
	"go.trai.ch/crier/internal/core/ports"
	"go.trai.ch/zerr"
)

// Repository implements ports.Repository on top of a ports.Git.
type Repository struct {
	git ports.Git
	dir string
}

// NewRepository creates a Repository rooted at dir.
func NewRepository(git ports.Git, dir string) *Repository {
	return &Repository{git: git, dir: dir}
}

// Dir returns the root of the main working tree.
func (r *Repository) Dir() string {
	return r.dir
}

// TagsSortedByVersion lists all tags ordered by the version they carry.
func (r *Repository) TagsSortedByVersion(ctx context.Context, descending bool) ([]string, error) {
	sortKey := "version:refname"
	if descending {
		sortKey = "-" + sortKey
	}

	out, err := r.git.Run(ctx, r.dir, "tag", "--list", "--sort="+sortKey)
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// AddWorktree checks out tag into a new detached worktree at path.
func (r *Repository) AddWorktree(ctx context.Context, path, tag string) error {
	_, err := r.git.Run(ctx, r.dir, "worktree", "add", "--detach", path, "refs/tags/"+tag)
	return err
}

// TagCommit returns the commit the tag points to.
func (r *Repository) TagCommit(ctx context.Context, tag string) (string, bool) {
	sha, err := r.git.Run(ctx, r.dir, "rev-list", "-n", "1", "refs/tags/"+tag)
	if err != nil || sha == "" {
		return "", false
	}
	return sha, true
}

// PruneWorktrees removes the administrative data of worktrees whose directories no longer exist.
func (r *Repository) PruneWorktrees(ctx context.Context) error {
	if _, err := r.git.Run(ctx, r.dir, "worktree", "prune"); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWorktreePruneFailed.Error()), "repository", r.dir)
	}
	return nil
}

// Opener implements ports.RepositoryOpener.
type Opener struct {
	git ports.Git
}

// NewOpener creates an Opener that runs git through g.
func NewOpener(g ports.Git) *Opener {
	return &Opener{git: g}
}

// Open returns the repository whose working tree contains dir.
func (o *Opener) Open(ctx context.Context, dir string) (ports.Repository, error) {
	top, err := o.git.Run(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrNotGitRepository.Error()), "dir", dir)
	}
	return NewRepository(o.git, top), nil
}

func splitLines(out string) []string {
	if out == "" {
		return nil
	}
	lines := strings.Split(out, "\n")
	tags := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			tags = append(tags, line)
		}
	}
	return tags
}
