package config

// Crierfile represents the structure of the crier.yaml configuration file.
type Crierfile struct {
	Version          string        `yaml:"version"`
	Root             string        `yaml:"root"`
	Manifest         string        `yaml:"manifest"`
	GitTagName       string        `yaml:"git_tag_name"`
	Registry         string        `yaml:"registry"`
	RegistryManifest string        `yaml:"registry_manifest"`
	Packages         []*PackageDTO `yaml:"packages"`
}

// PackageDTO represents the release settings of one package.
type PackageDTO struct {
	Name       string `yaml:"name"`
	GitOnly    bool   `yaml:"git_only"`
	GitTagName string `yaml:"git_tag_name"`
}
