package cargo

// manifestFile is the subset of Cargo.toml that crier reads.
type manifestFile struct {
	Package           *packageTable          `toml:"package"`
	Workspace         *workspaceTable        `toml:"workspace"`
	Dependencies      map[string]any         `toml:"dependencies"`
	DevDependencies   map[string]any         `toml:"dev-dependencies"`
	BuildDependencies map[string]any         `toml:"build-dependencies"`
	Target            map[string]targetTable `toml:"target"`
}

type packageTable struct {
	Name string `toml:"name"`
	// Version is a string or {workspace = true}.
	Version any `toml:"version"`
	// Publish is a bool, a list of registry names or {workspace = true}.
	Publish any `toml:"publish"`
}

type workspaceTable struct {
	Members      []string              `toml:"members"`
	Exclude      []string              `toml:"exclude"`
	Package      workspacePackageTable `toml:"package"`
	Dependencies map[string]any        `toml:"dependencies"`

	rootDir string
}

type workspacePackageTable struct {
	Version string `toml:"version"`
	Publish any    `toml:"publish"`
}

type targetTable struct {
	Dependencies      map[string]any `toml:"dependencies"`
	DevDependencies   map[string]any `toml:"dev-dependencies"`
	BuildDependencies map[string]any `toml:"build-dependencies"`
}

// vcsInfoFile is the layout of .cargo_vcs_info.json.
type vcsInfoFile struct {
	Git struct {
		Sha1  string `json:"sha1"`
		Dirty bool   `json:"dirty"`
	} `json:"git"`
	PathInVcs string `json:"path_in_vcs"`
}
