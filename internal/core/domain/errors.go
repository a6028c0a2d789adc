package domain

import "go.trai.ch/zerr"

var (
	// ErrScratchDirCreateFailed is returned when the scratch directory cannot be allocated.
	ErrScratchDirCreateFailed = zerr.New("failed to create scratch directory")

	// ErrScratchDirRemoveFailed is returned when the scratch directory cannot be removed.
	ErrScratchDirRemoveFailed = zerr.New("failed to remove scratch directory")

	// ErrCollectionClosed is returned when a closed collection is asked to resolve more packages.
	ErrCollectionClosed = zerr.New("packages collection is closed")

	// ErrDownloadFailed is returned when the packages of a registry group cannot be downloaded.
	ErrDownloadFailed = zerr.New("failed to download packages")

	// ErrPackageRepoInitFailed is returned when a git repository cannot be initialized
	// inside a downloaded package.
	ErrPackageRepoInitFailed = zerr.New("failed to initialize repository package")

	// ErrVcsInfoRemoveFailed is returned when the vcs info file of a downloaded package cannot be removed.
	ErrVcsInfoRemoveFailed = zerr.New("failed to remove vcs info file")

	// ErrGitCommandFailed is returned when a git subprocess exits with an error.
	ErrGitCommandFailed = zerr.New("git command failed")

	// ErrGitIdentityUnknown is returned when git refuses to commit because no author identity is configured.
	ErrGitIdentityUnknown = zerr.New("git author identity unknown")

	// ErrNotGitRepository is returned when the workspace is not inside a git repository.
	ErrNotGitRepository = zerr.New("workspace is not inside a git repository")

	// ErrTagListFailed is returned when the repository tags cannot be listed.
	ErrTagListFailed = zerr.New("failed to list repository tags")

	// ErrWorktreeCreateFailed is returned when a worktree cannot be created for a release tag.
	ErrWorktreeCreateFailed = zerr.New("failed to create worktree")

	// ErrWorktreePruneFailed is returned when stale worktrees cannot be pruned.
	ErrWorktreePruneFailed = zerr.New("failed to prune worktrees")

	// ErrManifestReadFailed is returned when a package manifest cannot be read.
	ErrManifestReadFailed = zerr.New("failed to get manifest metadata")

	// ErrManifestOutsideRepository is returned when the workspace manifest is not inside the git repository.
	ErrManifestOutsideRepository = zerr.New("manifest is outside the repository")

	// ErrManifestParseFailed is returned when a package manifest cannot be parsed.
	ErrManifestParseFailed = zerr.New("failed to parse manifest")

	// ErrManifestMissingPackage is returned when a manifest declares neither a package nor a workspace.
	ErrManifestMissingPackage = zerr.New("manifest declares neither a package nor a workspace")

	// ErrManifestInvalidField is returned when a manifest field has an unexpected type.
	ErrManifestInvalidField = zerr.New("invalid manifest field")

	// ErrWorkspaceInheritanceFailed is returned when a package inherits a field the workspace does not define.
	ErrWorkspaceInheritanceFailed = zerr.New("workspace does not define inherited field")

	// ErrPackageNotInManifest is returned when a released package is absent from the manifest at its tag.
	ErrPackageNotInManifest = zerr.New("could not retrieve package in manifest at tag")

	// ErrInvalidTagTemplate is returned when a git tag template cannot be parsed.
	ErrInvalidTagTemplate = zerr.New("invalid git tag template")

	// ErrUnknownRegistry is returned when a registry name has no configured index.
	ErrUnknownRegistry = zerr.New("registry index is not configured")

	// ErrUnsupportedRegistryIndex is returned when a registry index protocol is not supported.
	ErrUnsupportedRegistryIndex = zerr.New("only sparse registry indexes are supported")

	// ErrRegistryRequestFailed is returned when a request to a registry fails.
	ErrRegistryRequestFailed = zerr.New("registry request failed")

	// ErrRegistryIndexParseFailed is returned when a registry index entry cannot be parsed.
	ErrRegistryIndexParseFailed = zerr.New("failed to parse registry index entry")

	// ErrCrateChecksumMismatch is returned when a downloaded crate does not match its index checksum.
	ErrCrateChecksumMismatch = zerr.New("crate checksum mismatch")

	// ErrCrateExtractFailed is returned when a downloaded crate archive cannot be extracted.
	ErrCrateExtractFailed = zerr.New("failed to extract crate archive")

	// ErrCacheWriteFailed is returned when a crate archive cannot be written to or removed from the cache.
	ErrCacheWriteFailed = zerr.New("failed to write crate cache")

	// ErrCargoConfigReadFailed is returned when a cargo configuration file cannot be read.
	ErrCargoConfigReadFailed = zerr.New("failed to read cargo configuration")

	// ErrConfigNotFound is returned when an explicitly requested config file does not exist.
	ErrConfigNotFound = zerr.New("config file not found")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrDuplicatePackageConfig is returned when a package is configured more than once.
	ErrDuplicatePackageConfig = zerr.New("package configured more than once")

	// ErrMissingPackageName is returned when a package entry in the config has no name.
	ErrMissingPackageName = zerr.New("missing package name")
)
