package ports

import "go.trai.ch/crier/internal/core/domain"

// ConfigLoader defines the interface for loading the crier configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load finds and reads the configuration for the given working directory.
	// A missing configuration file yields the default configuration.
	Load(cwd string) (*domain.Config, error)

	// LoadFile reads the configuration from the given file.
	LoadFile(path string) (*domain.Config, error)
}
