package cargo

import (
	"maps"
	"path/filepath"
	"slices"

	"go.trai.ch/crier/internal/core/domain"
	"go.trai.ch/zerr"
)

type dependencyTable struct {
	kind  domain.DependencyKind
	table map[string]any
}

// dependencies collects the dependencies of every kind, including target-specific ones.
func (m *manifestFile) dependencies(manifestPath string, ws *workspaceTable) ([]domain.Dependency, error) {
	tables := []dependencyTable{
		{domain.DependencyNormal, m.Dependencies},
		{domain.DependencyDev, m.DevDependencies},
		{domain.DependencyBuild, m.BuildDependencies},
	}
	for _, target := range slices.Sorted(maps.Keys(m.Target)) {
		t := m.Target[target]
		tables = append(tables,
			dependencyTable{domain.DependencyNormal, t.Dependencies},
			dependencyTable{domain.DependencyDev, t.DevDependencies},
			dependencyTable{domain.DependencyBuild, t.BuildDependencies},
		)
	}

	dir := filepath.Dir(manifestPath)
	var deps []domain.Dependency
	for _, tbl := range tables {
		for _, key := range slices.Sorted(maps.Keys(tbl.table)) {
			dep, err := parseDependency(key, tbl.table[key], dir, ws)
			if err != nil {
				return nil, zerr.With(err, "manifest", manifestPath)
			}
			dep.Kind = tbl.kind
			deps = append(deps, dep)
		}
	}
	return deps, nil
}

// parseDependency reads a dependency written either as a version string or as a table.
// Paths are resolved against dir.
func parseDependency(key string, value any, dir string, ws *workspaceTable) (domain.Dependency, error) {
	dep := domain.Dependency{Name: key}

	switch v := value.(type) {
	case string:
		dep.Req = v
		return dep, nil
	case map[string]any:
		if isWorkspaceInherited(v) {
			inherited, err := inheritDependency(key, ws)
			if err != nil {
				return domain.Dependency{}, err
			}
			if optional, ok := v["optional"].(bool); ok {
				inherited.Optional = optional
			}
			return inherited, nil
		}

		if name, ok := v["package"].(string); ok && name != "" {
			dep.Name = name
		}
		dep.Req, _ = v["version"].(string)
		dep.Registry, _ = v["registry"].(string)
		dep.Optional, _ = v["optional"].(bool)
		if path, ok := v["path"].(string); ok && path != "" {
			dep.Path = filepath.Join(dir, path)
		}
		return dep, nil
	default:
		return domain.Dependency{}, zerr.With(domain.ErrManifestInvalidField, "dependency", key)
	}
}

func inheritDependency(key string, ws *workspaceTable) (domain.Dependency, error) {
	if ws == nil {
		return domain.Dependency{}, zerr.With(domain.ErrWorkspaceInheritanceFailed, "dependency", key)
	}
	value, ok := ws.Dependencies[key]
	if !ok {
		return domain.Dependency{}, zerr.With(domain.ErrWorkspaceInheritanceFailed, "dependency", key)
	}
	// Workspace dependency paths are relative to the workspace root.
	return parseDependency(key, value, ws.rootDir, nil)
}
