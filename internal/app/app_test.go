package app_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/crier/internal/adapters/telemetry"
	"go.trai.ch/crier/internal/app"
	"go.trai.ch/crier/internal/core/domain"
	"go.trai.ch/crier/internal/core/ports"
	"go.trai.ch/crier/internal/core/ports/mocks"
	"go.trai.ch/crier/internal/engine/published"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type appTestMocks struct {
	loader     *mocks.MockConfigLoader
	manifests  *mocks.MockManifestReader
	opener     *mocks.MockRepositoryOpener
	repo       *mocks.MockRepository
	downloader *mocks.MockDownloader
	cache      *mocks.MockCrateCache
	logger     *mocks.MockLogger
}

func setupAppTest(t *testing.T) (*app.App, appTestMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := appTestMocks{
		loader:     mocks.NewMockConfigLoader(ctrl),
		manifests:  mocks.NewMockManifestReader(ctrl),
		opener:     mocks.NewMockRepositoryOpener(ctrl),
		repo:       mocks.NewMockRepository(ctrl),
		downloader: mocks.NewMockDownloader(ctrl),
		cache:      mocks.NewMockCrateCache(ctrl),
		logger:     mocks.NewMockLogger(ctrl),
	}
	m.repo.EXPECT().Dir().Return("/ws").AnyTimes()

	resolver := published.NewResolver(
		m.downloader,
		m.manifests,
		mocks.NewMockVcsInfoReader(ctrl),
		mocks.NewMockGit(ctrl),
		telemetry.NewNoOpTracer(),
		m.logger,
	)
	return app.New(m.loader, m.manifests, m.opener, resolver, m.cache, m.logger), m
}

func TestApp_Published(t *testing.T) {
	a, m := setupAppTest(t)

	cfg := &domain.Config{
		Root:             "/ws",
		Manifest:         "/ws/Cargo.toml",
		RegistryManifest: "/published/Cargo.toml",
		Packages: map[string]domain.PackageConfig{
			"tool": {Name: "tool", GitOnly: true},
		},
	}
	locals := []domain.Package{
		{Name: "core", Version: "1.1.0"},
		{Name: "corp-lib", Version: "0.3.0", Publish: []string{"corp"}},
		{Name: "tool", Version: "1.3.0"},
		{Name: "internal", Version: "0.1.0", PublishDisabled: true},
	}

	m.loader.EXPECT().Load("/ws").Return(cfg, nil)
	m.manifests.EXPECT().ReadMetadata(gomock.Any(), "/ws/Cargo.toml").Return(locals, nil)
	m.manifests.EXPECT().ReadMetadata(gomock.Any(), "/published/Cargo.toml").Return([]domain.Package{
		{Name: "core", Version: "1.0.0"},
		{Name: "corp-lib", Version: "0.2.0", Publish: []string{"corp"}},
	}, nil)
	m.opener.EXPECT().Open(gomock.Any(), "/ws").Return(m.repo, nil)
	m.repo.EXPECT().TagsSortedByVersion(gomock.Any(), true).Return([]string{"tool-v1.2.0", "core-v1.0.0"}, nil)
	m.repo.EXPECT().AddWorktree(gomock.Any(), gomock.Any(), "tool-v1.2.0").Return(nil)
	m.manifests.EXPECT().ReadMetadata(gomock.Any(), gomock.Any()).Return([]domain.Package{
		{Name: "tool", Version: "1.2.0"},
	}, nil)
	m.repo.EXPECT().TagCommit(gomock.Any(), "tool-v1.2.0").Return("deadbeef", true)
	m.logger.EXPECT().Info("no release tag found for internal, skipping")
	m.repo.EXPECT().PruneWorktrees(gomock.Any()).Return(nil)

	statuses, err := a.Published(t.Context(), app.PublishedOptions{Dir: "/ws"})
	require.NoError(t, err)

	assert.Equal(t, []app.PackageStatus{
		{Name: "core", LocalVersion: "1.1.0", Source: app.SourceRegistry, Published: true, PublishedVersion: "1.0.0"},
		{Name: "corp-lib", LocalVersion: "0.3.0", Source: app.SourceRegistry, Published: true, PublishedVersion: "0.2.0"},
		{
			Name: "tool", LocalVersion: "1.3.0", Source: app.SourceGitTag,
			Published: true, PublishedVersion: "1.2.0", OriginCommit: "deadbeef",
		},
		{Name: "internal", LocalVersion: "0.1.0", Source: app.SourceGitTag},
	}, statuses)
}

func TestApp_Published_GroupsRegistriesContiguously(t *testing.T) {
	a, m := setupAppTest(t)

	m.loader.EXPECT().LoadFile("/ws/crier.yaml").Return(&domain.Config{Root: "/ws", Manifest: "/ws/Cargo.toml"}, nil)
	m.manifests.EXPECT().ReadMetadata(gomock.Any(), "/ws/Cargo.toml").Return([]domain.Package{
		{Name: "a", Version: "1.0.0", Publish: []string{"zeta"}},
		{Name: "b", Version: "1.0.0"},
		{Name: "c", Version: "1.0.0", Publish: []string{"alpha"}},
		{Name: "d", Version: "1.0.0", Publish: []string{"zeta"}},
	}, nil)

	gomock.InOrder(
		m.downloader.EXPECT().Download(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, req ports.DownloadRequest) ([]domain.Package, error) {
				assert.Empty(t, req.Registry)
				assert.Equal(t, []string{"b"}, req.Packages)
				return nil, nil
			}),
		m.downloader.EXPECT().Download(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, req ports.DownloadRequest) ([]domain.Package, error) {
				assert.Equal(t, "alpha", req.Registry)
				assert.Equal(t, []string{"c"}, req.Packages)
				return nil, nil
			}),
		m.downloader.EXPECT().Download(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, req ports.DownloadRequest) ([]domain.Package, error) {
				assert.Equal(t, "zeta", req.Registry)
				assert.Equal(t, []string{"a", "d"}, req.Packages)
				return nil, nil
			}),
	)

	statuses, err := a.Published(t.Context(), app.PublishedOptions{ConfigPath: "/ws/crier.yaml"})
	require.NoError(t, err)
	require.Len(t, statuses, 4)
	for _, s := range statuses {
		assert.False(t, s.Published, s.Name)
		assert.Equal(t, app.SourceRegistry, s.Source)
	}
}

func TestApp_Published_RegistryOverride(t *testing.T) {
	a, m := setupAppTest(t)

	m.loader.EXPECT().Load("/ws").Return(&domain.Config{Root: "/ws", Manifest: "/ws/Cargo.toml"}, nil)
	m.manifests.EXPECT().ReadMetadata(gomock.Any(), "/ws/Cargo.toml").Return([]domain.Package{
		{Name: "a", Version: "1.0.0", Publish: []string{"zeta"}},
		{Name: "b", Version: "1.0.0"},
	}, nil)
	m.downloader.EXPECT().Download(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, req ports.DownloadRequest) ([]domain.Package, error) {
			assert.Equal(t, "mirror", req.Registry)
			assert.Equal(t, []string{"a", "b"}, req.Packages)
			assert.Equal(t, "/ws", req.WorkspaceDir)
			return nil, nil
		})

	_, err := a.Published(t.Context(), app.PublishedOptions{Dir: "/ws", Registry: "mirror"})
	require.NoError(t, err)
}

func TestApp_Published_ConfigError(t *testing.T) {
	a, m := setupAppTest(t)
	m.loader.EXPECT().Load("/ws").Return(nil, domain.ErrConfigParseFailed)

	_, err := a.Published(t.Context(), app.PublishedOptions{Dir: "/ws"})
	require.ErrorIs(t, err, domain.ErrConfigParseFailed)
}

func TestApp_Published_ManifestError(t *testing.T) {
	a, m := setupAppTest(t)
	m.loader.EXPECT().Load("/ws").Return(&domain.Config{Root: "/ws", Manifest: "/ws/Cargo.toml"}, nil)
	readErr := zerr.With(zerr.Wrap(errors.New("no such file"), domain.ErrManifestReadFailed.Error()), "manifest", "/ws/Cargo.toml")
	m.manifests.EXPECT().ReadMetadata(gomock.Any(), "/ws/Cargo.toml").Return(nil, readErr)

	_, err := a.Published(t.Context(), app.PublishedOptions{Dir: "/ws"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "no such file")
	assert.Equal(t, 1, strings.Count(err.Error(), domain.ErrManifestReadFailed.Error()))
}

func TestApp_Published_NotARepository(t *testing.T) {
	a, m := setupAppTest(t)
	m.loader.EXPECT().Load("/ws").Return(&domain.Config{Root: "/ws", Manifest: "/ws/Cargo.toml"}, nil)
	m.manifests.EXPECT().ReadMetadata(gomock.Any(), "/ws/Cargo.toml").Return([]domain.Package{
		{Name: "private", Version: "0.1.0", PublishDisabled: true},
	}, nil)
	m.opener.EXPECT().Open(gomock.Any(), "/ws").Return(nil, domain.ErrNotGitRepository)

	_, err := a.Published(t.Context(), app.PublishedOptions{Dir: "/ws"})
	require.ErrorIs(t, err, domain.ErrNotGitRepository)
}

func TestApp_Published_PrunesAfterFailure(t *testing.T) {
	a, m := setupAppTest(t)
	m.loader.EXPECT().Load("/ws").Return(&domain.Config{Root: "/ws", Manifest: "/ws/Cargo.toml"}, nil)
	m.manifests.EXPECT().ReadMetadata(gomock.Any(), "/ws/Cargo.toml").Return([]domain.Package{
		{Name: "private", Version: "0.1.0", PublishDisabled: true},
	}, nil)
	m.opener.EXPECT().Open(gomock.Any(), "/ws").Return(m.repo, nil)
	m.repo.EXPECT().TagsSortedByVersion(gomock.Any(), true).Return([]string{"v0.1.0"}, nil)
	m.repo.EXPECT().AddWorktree(gomock.Any(), gomock.Any(), "v0.1.0").Return(errors.New("worktree locked"))
	m.repo.EXPECT().PruneWorktrees(gomock.Any()).Return(nil)

	_, err := a.Published(t.Context(), app.PublishedOptions{Dir: "/ws"})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrWorktreeCreateFailed.Error())
}

func TestApp_Published_InvalidTagTemplate(t *testing.T) {
	a, m := setupAppTest(t)
	m.loader.EXPECT().Load("/ws").Return(&domain.Config{
		Root: "/ws", Manifest: "/ws/Cargo.toml", GitTagTemplate: "{{ unknown }}",
	}, nil)
	m.manifests.EXPECT().ReadMetadata(gomock.Any(), "/ws/Cargo.toml").Return([]domain.Package{{Name: "a"}}, nil)

	_, err := a.Published(t.Context(), app.PublishedOptions{Dir: "/ws"})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrInvalidTagTemplate.Error())
}

func TestApp_Clean(t *testing.T) {
	a, m := setupAppTest(t)
	gomock.InOrder(
		m.logger.EXPECT().Info("removing crate cache..."),
		m.cache.EXPECT().Clear().Return(nil),
		m.logger.EXPECT().Info("removed crate cache"),
	)

	require.NoError(t, a.Clean(t.Context()))
}

func TestApp_Clean_Error(t *testing.T) {
	a, m := setupAppTest(t)
	m.logger.EXPECT().Info("removing crate cache...")
	m.cache.EXPECT().Clear().Return(domain.ErrCacheWriteFailed)

	require.ErrorIs(t, a.Clean(t.Context()), domain.ErrCacheWriteFailed)
}
