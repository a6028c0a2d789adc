// Package cargo reads Cargo manifests and the metadata cargo stores next to packaged crates.
package cargo

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/crier/internal/core/domain"
	"go.trai.ch/zerr"
)

// ManifestReader implements ports.ManifestReader by parsing Cargo.toml files.
type ManifestReader struct{}

// NewManifestReader creates a new ManifestReader.
func NewManifestReader() *ManifestReader {
	return &ManifestReader{}
}

// ReadMetadata returns every package the manifest defines.
//
// A workspace root yields its own package, if any, followed by its members in
// declaration order. Path dependencies inside the workspace directory are members
// too, unless excluded.
func (r *ManifestReader) ReadMetadata(ctx context.Context, manifestPath string) ([]domain.Package, error) {
	rootPath, err := filepath.Abs(manifestPath)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "manifest", manifestPath)
	}

	root, err := readManifestFile(rootPath)
	if err != nil {
		return nil, err
	}

	if root.Workspace == nil {
		if root.Package == nil {
			return nil, zerr.With(domain.ErrManifestMissingPackage, "manifest", rootPath)
		}
		pkg, err := root.toPackage(rootPath, nil)
		if err != nil {
			return nil, err
		}
		return []domain.Package{pkg}, nil
	}

	root.Workspace.rootDir = filepath.Dir(rootPath)
	ws := &workspace{
		rootDir:  filepath.Dir(rootPath),
		table:    root.Workspace,
		seen:     make(map[string]bool),
		excluded: make([]string, 0, len(root.Workspace.Exclude)),
	}
	for _, ex := range root.Workspace.Exclude {
		ws.excluded = append(ws.excluded, filepath.Join(ws.rootDir, ex))
	}
	return ws.load(ctx, rootPath, root)
}

type workspace struct {
	rootDir  string
	table    *workspaceTable
	excluded []string
	seen     map[string]bool
	packages []domain.Package
}

func (w *workspace) load(ctx context.Context, rootPath string, root *manifestFile) ([]domain.Package, error) {
	w.seen[rootPath] = true
	if root.Package != nil {
		pkg, err := root.toPackage(rootPath, w.table)
		if err != nil {
			return nil, err
		}
		w.packages = append(w.packages, pkg)
	}

	queue, err := w.memberManifests()
	if err != nil {
		return nil, err
	}

	// Path dependencies of earlier packages are appended while iterating.
	queue = append(queue, w.pathDependencyManifests(w.packages)...)
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := queue[0]
		queue = queue[1:]
		if w.seen[path] {
			continue
		}
		w.seen[path] = true

		m, err := readManifestFile(path)
		if err != nil {
			return nil, err
		}
		if m.Package == nil {
			return nil, zerr.With(domain.ErrManifestMissingPackage, "manifest", path)
		}
		pkg, err := m.toPackage(path, w.table)
		if err != nil {
			return nil, err
		}
		w.packages = append(w.packages, pkg)
		queue = append(queue, w.pathDependencyManifests([]domain.Package{pkg})...)
	}

	return w.packages, nil
}

// memberManifests expands the members globs into manifest paths.
func (w *workspace) memberManifests() ([]string, error) {
	var manifests []string
	for _, member := range w.table.Members {
		pattern := filepath.Join(w.rootDir, member)
		if !hasGlobMeta(member) {
			if w.isExcluded(pattern) {
				continue
			}
			manifests = append(manifests, filepath.Join(pattern, domain.CargoTomlName))
			continue
		}

		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestInvalidField.Error()), "member", member)
		}
		slices.Sort(matches)
		for _, dir := range matches {
			manifest := filepath.Join(dir, domain.CargoTomlName)
			if w.isExcluded(dir) || !fileExists(manifest) {
				continue
			}
			manifests = append(manifests, manifest)
		}
	}
	return manifests, nil
}

// pathDependencyManifests returns the manifests of path dependencies that live inside the workspace.
func (w *workspace) pathDependencyManifests(pkgs []domain.Package) []string {
	var manifests []string
	for i := range pkgs {
		for _, dep := range pkgs[i].Dependencies {
			if dep.Path == "" || !isWithin(w.rootDir, dep.Path) || w.isExcluded(dep.Path) {
				continue
			}
			manifests = append(manifests, filepath.Join(dep.Path, domain.CargoTomlName))
		}
	}
	return manifests
}

func (w *workspace) isExcluded(dir string) bool {
	for _, ex := range w.excluded {
		if isWithin(ex, dir) {
			return true
		}
	}
	return false
}

func readManifestFile(path string) (*manifestFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "manifest", path)
	}

	var m manifestFile
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestParseFailed.Error()), "manifest", path)
	}
	return &m, nil
}

func (m *manifestFile) toPackage(manifestPath string, ws *workspaceTable) (domain.Package, error) {
	pkg := domain.Package{
		Name:         m.Package.Name,
		ManifestPath: manifestPath,
	}
	if pkg.Name == "" {
		return domain.Package{}, invalidField(manifestPath, "package.name")
	}

	version, explicit, err := m.version(manifestPath, ws)
	if err != nil {
		return domain.Package{}, err
	}
	pkg.Version = version

	publish := m.Package.Publish
	if isWorkspaceInherited(publish) {
		if ws == nil || ws.Package.Publish == nil {
			return domain.Package{}, inheritanceError(manifestPath, "publish")
		}
		publish = ws.Package.Publish
	}
	pkg.Publish, pkg.PublishDisabled, err = parsePublish(publish)
	if err != nil {
		return domain.Package{}, invalidField(manifestPath, "package.publish")
	}
	// Cargo refuses to publish packages without a version unless publish is set explicitly.
	if !explicit && m.Package.Publish == nil {
		pkg.PublishDisabled = true
	}

	pkg.Dependencies, err = m.dependencies(manifestPath, ws)
	if err != nil {
		return domain.Package{}, err
	}
	return pkg, nil
}

func (m *manifestFile) version(manifestPath string, ws *workspaceTable) (string, bool, error) {
	switch v := m.Package.Version.(type) {
	case nil:
		return "0.0.0", false, nil
	case string:
		return v, true, nil
	default:
		if !isWorkspaceInherited(v) {
			return "", false, invalidField(manifestPath, "package.version")
		}
		if ws == nil || ws.Package.Version == "" {
			return "", false, inheritanceError(manifestPath, "version")
		}
		return ws.Package.Version, true, nil
	}
}

func parsePublish(v any) ([]string, bool, error) {
	switch p := v.(type) {
	case nil:
		return nil, false, nil
	case bool:
		return nil, !p, nil
	case []any:
		if len(p) == 0 {
			return nil, true, nil
		}
		registries := make([]string, 0, len(p))
		for _, item := range p {
			name, ok := item.(string)
			if !ok {
				return nil, false, domain.ErrManifestInvalidField
			}
			registries = append(registries, name)
		}
		return registries, false, nil
	default:
		return nil, false, domain.ErrManifestInvalidField
	}
}

func isWorkspaceInherited(v any) bool {
	table, ok := v.(map[string]any)
	if !ok {
		return false
	}
	inherited, _ := table["workspace"].(bool)
	return inherited
}

func invalidField(manifestPath, field string) error {
	return zerr.With(zerr.With(domain.ErrManifestInvalidField, "manifest", manifestPath), "field", field)
}

func inheritanceError(manifestPath, field string) error {
	return zerr.With(zerr.With(domain.ErrWorkspaceInheritanceFailed, "manifest", manifestPath), "field", field)
}

func hasGlobMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func isWithin(parent, path string) bool {
	rel, err := filepath.Rel(parent, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
