package domain

import "path/filepath"

// DependencyKind identifies the manifest table a dependency was declared in.
type DependencyKind string

const (
	// DependencyNormal is declared in [dependencies].
	DependencyNormal DependencyKind = "normal"
	// DependencyDev is declared in [dev-dependencies].
	DependencyDev DependencyKind = "dev"
	// DependencyBuild is declared in [build-dependencies].
	DependencyBuild DependencyKind = "build"
)

// Dependency is a single dependency edge of a package.
type Dependency struct {
	// Name is the name of the depended-on package (after `package = ...` renames).
	Name string

	// Req is the version requirement, empty for path-only dependencies.
	Req string

	// Kind is the manifest table the dependency was declared in.
	Kind DependencyKind

	// Path is the local path of the dependency, if any.
	Path string

	// Registry is the registry the dependency is fetched from, empty for the default.
	Registry string

	// Optional reports whether the dependency is feature-gated.
	Optional bool
}

// Package is the manifest metadata of a single package.
type Package struct {
	// Name is the package name. It is the lookup key everywhere and never changes.
	Name string

	// Version is the package version as written in the manifest.
	Version string

	// ManifestPath is the absolute path of the package's Cargo.toml.
	ManifestPath string

	// Publish lists the registries the package may be published to.
	// An empty list means any registry.
	Publish []string

	// PublishDisabled is set when the manifest has `publish = false` or `publish = []`.
	PublishDisabled bool

	// Dependencies lists the dependencies of the package across all kinds.
	Dependencies []Dependency
}

// Dir returns the directory that contains the package manifest.
func (p *Package) Dir() string {
	return filepath.Dir(p.ManifestPath)
}

// IsPublishable reports whether the package can be published to a registry.
func (p *Package) IsPublishable() bool {
	return !p.PublishDisabled
}

// TargetRegistry returns the registry the package is published to.
// The override wins when set; otherwise the first `publish` entry is used.
// An empty result means the default registry.
func (p *Package) TargetRegistry(override string) string {
	if override != "" {
		return override
	}
	if len(p.Publish) > 0 {
		return p.Publish[0]
	}
	return ""
}
