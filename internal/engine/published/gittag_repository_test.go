package published_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/crier/internal/adapters/cargo"
	"go.trai.ch/crier/internal/adapters/git"
	"go.trai.ch/crier/internal/adapters/telemetry"
	"go.trai.ch/crier/internal/core/domain"
	"go.trai.ch/crier/internal/core/ports/mocks"
	"go.trai.ch/crier/internal/engine/published"
	"go.uber.org/mock/gomock"
)

// setupNestedWorkspace creates a repository whose cargo workspace lives in rust/,
// with foo tagged at 1.0.0 and the working tree moved on to 1.1.0.
func setupNestedWorkspace(t *testing.T) (string, *git.Runner) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not found")
	}

	t.Setenv("GIT_CONFIG_GLOBAL", os.DevNull)
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_AUTHOR_NAME", "crier")
	t.Setenv("GIT_AUTHOR_EMAIL", "crier@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "crier")
	t.Setenv("GIT_COMMITTER_EMAIL", "crier@example.com")

	dir := t.TempDir()
	r := git.NewRunner()
	_, err := r.Run(t.Context(), dir, "init", "--quiet")
	require.NoError(t, err)

	manifest := filepath.Join(dir, "rust", domain.CargoTomlName)
	require.NoError(t, os.MkdirAll(filepath.Dir(manifest), domain.DirPerm))

	commit := func(version string) {
		content := "[package]\nname = \"foo\"\nversion = \"" + version + "\"\n"
		require.NoError(t, os.WriteFile(manifest, []byte(content), domain.FilePerm))
		_, err := r.Run(t.Context(), dir, "add", ".")
		require.NoError(t, err)
		_, err = r.Run(t.Context(), dir, "commit", "--quiet", "-m", "foo "+version)
		require.NoError(t, err)
	}

	commit("1.0.0")
	_, err = r.Run(t.Context(), dir, "tag", "v1.0.0")
	require.NoError(t, err)
	commit("1.1.0")

	return dir, r
}

func TestLatestPackages_GitTagWorkspaceInRepositorySubdirectory(t *testing.T) {
	dir, runner := setupNestedWorkspace(t)

	ctrl := gomock.NewController(t)
	resolver := published.NewResolver(
		mocks.NewMockDownloader(ctrl),
		cargo.NewManifestReader(),
		cargo.NewVcsInfoReader(),
		runner,
		telemetry.NewNoOpTracer(),
		mocks.NewMockLogger(ctrl),
	)

	repo, err := git.NewOpener(runner).Open(t.Context(), filepath.Join(dir, "rust"))
	require.NoError(t, err)

	project, err := domain.NewProject(domain.SinglePackageTagTemplate, nil)
	require.NoError(t, err)

	c, err := resolver.LatestPackages(t.Context(), published.LatestOptions{
		Project:         project,
		Repository:      repo,
		GitOnlyPackages: []domain.Package{{Name: "foo", Version: "1.1.0"}},
		Manifest:        filepath.Join(dir, "rust", domain.CargoTomlName),
	})
	require.NoError(t, err)

	p, ok := c.Published("foo")
	require.True(t, ok)
	assert.Equal(t, "1.0.0", p.Package.Version)

	tagged, err := runner.Run(t.Context(), dir, "rev-list", "-n", "1", "v1.0.0")
	require.NoError(t, err)
	commit, ok := p.Commit()
	require.True(t, ok)
	assert.Equal(t, tagged, commit)

	require.NoError(t, c.Close())
	require.NoError(t, repo.PruneWorktrees(t.Context()))
	list, err := runner.Run(t.Context(), dir, "worktree", "list", "--porcelain")
	require.NoError(t, err)
	assert.Equal(t, 1, countWorktrees(list))
}

func countWorktrees(porcelain string) int {
	n := 0
	for line := range strings.Lines(porcelain) {
		if strings.HasPrefix(line, "worktree ") {
			n++
		}
	}
	return n
}
