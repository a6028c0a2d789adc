package ports

import (
	"context"

	"go.trai.ch/crier/internal/core/domain"
)

// ManifestReader reads package metadata from manifests.
//
//go:generate go run go.uber.org/mock/mockgen -source=manifest.go -destination=mocks/mock_manifest.go -package=mocks
type ManifestReader interface {
	// ReadMetadata returns every package the manifest defines.
	// For a workspace root this includes all workspace members.
	// Errors name the manifest that failed.
	ReadMetadata(ctx context.Context, manifestPath string) ([]domain.Package, error)
}

// VcsInfoReader reads the side-car file `cargo package` writes with the source commit.
type VcsInfoReader interface {
	// ReadCommit returns the commit recorded in the file, if any.
	ReadCommit(path string) (string, bool)
}
