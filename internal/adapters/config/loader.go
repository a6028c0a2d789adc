// Package config provides the configuration loader for crier.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/crier/internal/core/domain"
	"go.trai.ch/crier/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load finds crier.yaml in cwd or one of its parents and reads it.
// Without a config file, the defaults rooted at cwd are returned.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	configPath, found := findConfiguration(cwd)
	if !found {
		return defaultConfig(cwd), nil
	}
	return l.LoadFile(configPath)
}

// LoadFile reads the configuration from the given file.
func (l *Loader) LoadFile(configPath string) (*domain.Config, error) {
	var crierfile Crierfile
	if err := readAndUnmarshalYAML(configPath, &crierfile); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	cfg := defaultConfig(resolvePath(filepath.Dir(configPath), crierfile.Root))
	if crierfile.Manifest != "" {
		cfg.Manifest = resolvePath(cfg.Root, crierfile.Manifest)
	}
	if crierfile.RegistryManifest != "" {
		cfg.RegistryManifest = resolvePath(cfg.Root, crierfile.RegistryManifest)
	}
	cfg.Registry = crierfile.Registry
	cfg.GitTagTemplate = crierfile.GitTagName

	if cfg.Registry != "" && cfg.RegistryManifest != "" {
		l.Logger.Warn("'registry' has no effect when 'registry_manifest' is set in " + domain.ConfigFileName)
	}

	if err := validateTagTemplate(cfg.GitTagTemplate); err != nil {
		return nil, err
	}

	for _, dto := range crierfile.Packages {
		pc, err := buildPackageConfig(dto)
		if err != nil {
			return nil, err
		}
		if _, exists := cfg.Packages[pc.Name]; exists {
			return nil, zerr.With(domain.ErrDuplicatePackageConfig, "package", pc.Name)
		}
		cfg.Packages[pc.Name] = pc
	}

	return cfg, nil
}

func findConfiguration(cwd string) (string, bool) {
	currentDir := cwd
	for {
		configPath := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			return "", false
		}
		currentDir = parentDir
	}
}

func defaultConfig(root string) *domain.Config {
	root = filepath.Clean(root)
	return &domain.Config{
		Root:     root,
		Manifest: filepath.Join(root, domain.CargoTomlName),
		Packages: make(map[string]domain.PackageConfig),
	}
}

func buildPackageConfig(dto *PackageDTO) (domain.PackageConfig, error) {
	if dto == nil || dto.Name == "" {
		return domain.PackageConfig{}, domain.ErrMissingPackageName
	}
	if err := validateTagTemplate(dto.GitTagName); err != nil {
		return domain.PackageConfig{}, zerr.With(err, "package", dto.Name)
	}
	return domain.PackageConfig{
		Name:           dto.Name,
		GitOnly:        dto.GitOnly,
		GitTagTemplate: dto.GitTagName,
	}, nil
}

func validateTagTemplate(tmpl string) error {
	if tmpl == "" {
		return nil
	}
	_, err := domain.NewProject(tmpl, nil)
	return err
}

func resolvePath(base, path string) string {
	if path == "" {
		return filepath.Clean(base)
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Clean(filepath.Join(base, path))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is validated by caller
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return zerr.Wrap(err, domain.ErrConfigNotFound.Error())
		}
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
