package domain

// PackageConfig holds the per-package release settings.
type PackageConfig struct {
	// Name is the package the settings apply to.
	Name string

	// GitOnly resolves the package from git tags instead of the registry.
	GitOnly bool

	// GitTagTemplate overrides the workspace tag template for this package.
	GitTagTemplate string
}

// Config is the validated crier configuration.
type Config struct {
	// Root is the directory the configuration was loaded from.
	Root string

	// Manifest is the path of the workspace root manifest.
	Manifest string

	// GitTagTemplate is the workspace tag template. Empty selects DefaultTagTemplate.
	GitTagTemplate string

	// Registry overrides the registry of every package when set.
	Registry string

	// RegistryManifest points at an already materialized registry workspace.
	RegistryManifest string

	// Packages holds per-package settings keyed by package name.
	Packages map[string]PackageConfig
}

// PackageConfig returns the settings of the given package.
func (c *Config) PackageConfig(name string) (PackageConfig, bool) {
	pc, ok := c.Packages[name]
	return pc, ok
}

// IsGitOnly reports whether the package is resolved from git tags.
// Packages that cannot be published are always git-only.
func (c *Config) IsGitOnly(pkg *Package) bool {
	if !pkg.IsPublishable() {
		return true
	}
	pc, ok := c.Packages[pkg.Name]
	return ok && pc.GitOnly
}

// Project builds the tag namer for a workspace with the given number of packages.
func (c *Config) Project(packageCount int) (*Project, error) {
	fallback := c.GitTagTemplate
	if fallback == "" {
		fallback = DefaultTagTemplate(packageCount)
	}

	overrides := make(map[string]string)
	for name, pc := range c.Packages {
		if pc.GitTagTemplate != "" {
			overrides[name] = pc.GitTagTemplate
		}
	}

	return NewProject(fallback, overrides)
}
