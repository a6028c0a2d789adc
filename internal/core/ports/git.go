// Package ports defines the core interfaces for the application.
package ports

import "context"

// Git runs git subcommands.
//
//go:generate go run go.uber.org/mock/mockgen -source=git.go -destination=mocks/mock_git.go -package=mocks
type Git interface {
	// Run executes `git <args>` inside dir and returns its trimmed standard output.
	//
	// A commit refused for lack of an author identity fails with an error that
	// wraps domain.ErrGitIdentityUnknown.
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

// Repository is the git repository that holds the workspace.
//
// AddWorktree adds linked working trees to the repository. They outlive the call:
// whoever resolves packages through a Repository must restore it afterwards, for
// example with PruneWorktrees once the worktree directories are gone.
type Repository interface {
	// Dir returns the root of the repository's main working tree.
	Dir() string

	// TagsSortedByVersion lists all tags ordered by the version they carry.
	TagsSortedByVersion(ctx context.Context, descending bool) ([]string, error)

	// AddWorktree checks out tag into a new detached worktree at path.
	// The caller's checkout and index are left untouched.
	AddWorktree(ctx context.Context, path, tag string) error

	// TagCommit returns the commit the tag points to.
	TagCommit(ctx context.Context, tag string) (string, bool)

	// PruneWorktrees removes the administrative data of worktrees whose directories no longer exist.
	PruneWorktrees(ctx context.Context) error
}

// RepositoryOpener opens the git repository that contains a directory.
type RepositoryOpener interface {
	// Open returns the repository whose working tree contains dir.
	Open(ctx context.Context, dir string) (Repository, error)
}
