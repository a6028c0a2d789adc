// Package registry downloads published crates from sparse cargo registries.
package registry

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/crier/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	// CratesIOIndex is the sparse index of crates.io.
	CratesIOIndex = "sparse+https://index.crates.io/"

	sparsePrefix = "sparse+"
)

// cargoConfig is the subset of .cargo/config.toml that describes registries.
type cargoConfig struct {
	Registries map[string]struct {
		Index string `toml:"index"`
		Token string `toml:"token"`
	} `toml:"registries"`
}

// Location is where a registry lives and how to authenticate against it.
type Location struct {
	// Name is the registry name, DefaultRegistry for crates.io.
	Name string
	// IndexURL is the sparse index URL without the sparse+ prefix, always ending with a slash.
	IndexURL string
	// Token is sent as the Authorization header when set.
	Token string
}

// Locator resolves registry names to index locations the way cargo does:
// environment variables first, then cargo configuration files from the
// working directory upwards, then $CARGO_HOME/config.toml.
type Locator struct {
	workDir   string
	cargoHome string
	getenv    func(string) string
}

// NewLocator creates a Locator for the given working directory.
func NewLocator(workDir string) *Locator {
	return &Locator{
		workDir:   workDir,
		cargoHome: cargoHomeDir(),
		getenv:    os.Getenv,
	}
}

// WithEnv replaces the environment lookup.
func (l *Locator) WithEnv(getenv func(string) string) *Locator {
	l.getenv = getenv
	return l
}

// In returns a copy of the locator that looks up configuration files from workDir.
func (l *Locator) In(workDir string) *Locator {
	c := *l
	c.workDir = workDir
	return &c
}

// WithCargoHome replaces the cargo home directory.
func (l *Locator) WithCargoHome(dir string) *Locator {
	l.cargoHome = dir
	return l
}

// Locate returns the location of the named registry. An empty name selects crates.io.
func (l *Locator) Locate(name string) (Location, error) {
	if name == "" {
		name = domain.DefaultRegistry
	}
	envName := envRegistryName(name)
	loc := Location{
		Name:  name,
		Token: l.getenv("CARGO_REGISTRIES_" + envName + "_TOKEN"),
	}

	index := l.getenv("CARGO_REGISTRIES_" + envName + "_INDEX")
	if index == "" {
		cfgIndex, cfgToken, err := l.fromConfigFiles(name)
		if err != nil {
			return Location{}, err
		}
		index = cfgIndex
		if loc.Token == "" {
			loc.Token = cfgToken
		}
	}
	if index == "" && name == domain.DefaultRegistry {
		index = CratesIOIndex
	}
	if index == "" {
		return Location{}, zerr.With(domain.ErrUnknownRegistry, "registry", name)
	}

	if !strings.HasPrefix(index, sparsePrefix) {
		return Location{}, zerr.With(zerr.With(domain.ErrUnsupportedRegistryIndex, "registry", name), "index", index)
	}
	loc.IndexURL = strings.TrimPrefix(index, sparsePrefix)
	if !strings.HasSuffix(loc.IndexURL, "/") {
		loc.IndexURL += "/"
	}
	return loc, nil
}

func (l *Locator) fromConfigFiles(name string) (string, string, error) {
	for _, path := range l.configFiles() {
		cfg, err := readCargoConfig(path)
		if err != nil {
			return "", "", err
		}
		if cfg == nil {
			continue
		}
		if reg, ok := cfg.Registries[name]; ok && reg.Index != "" {
			return reg.Index, reg.Token, nil
		}
	}
	return "", "", nil
}

// configFiles lists candidate cargo configuration files, closest first.
func (l *Locator) configFiles() []string {
	var files []string
	if l.workDir != "" {
		dir := l.workDir
		for {
			files = append(files,
				filepath.Join(dir, ".cargo", "config.toml"),
				filepath.Join(dir, ".cargo", "config"),
			)
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}
	if l.cargoHome != "" {
		files = append(files,
			filepath.Join(l.cargoHome, "config.toml"),
			filepath.Join(l.cargoHome, "config"),
		)
	}
	return files
}

func readCargoConfig(path string) (*cargoConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCargoConfigReadFailed.Error()), "path", path)
	}

	var cfg cargoConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCargoConfigReadFailed.Error()), "path", path)
	}
	return &cfg, nil
}

func envRegistryName(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

func cargoHomeDir() string {
	if dir := os.Getenv("CARGO_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cargo")
}
