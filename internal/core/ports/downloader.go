package ports

import (
	"context"

	"go.trai.ch/crier/internal/core/domain"
)

// DownloadRequest describes a batch of packages to fetch from one registry.
type DownloadRequest struct {
	// Packages are the names of the packages to fetch.
	Packages []string

	// Dir is the directory the packages are extracted into.
	Dir string

	// Registry is the registry name. Empty selects the default registry.
	Registry string
	// WorkspaceDir is where cargo configuration lookup starts.
	// Empty uses the downloader's default directory.
	WorkspaceDir string
}

// Downloader fetches the latest published version of packages from a registry.
//
//go:generate go run go.uber.org/mock/mockgen -source=downloader.go -destination=mocks/mock_downloader.go -package=mocks
type Downloader interface {
	// Download extracts the latest published version of every requested package
	// into the request directory and returns their metadata.
	// Packages that were never published are left out of the result.
	Download(ctx context.Context, req DownloadRequest) ([]domain.Package, error)
}
