// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/crier/internal/adapters/cargo"
	_ "go.trai.ch/crier/internal/adapters/cas"
	_ "go.trai.ch/crier/internal/adapters/config"
	_ "go.trai.ch/crier/internal/adapters/git"
	_ "go.trai.ch/crier/internal/adapters/logger"
	_ "go.trai.ch/crier/internal/adapters/registry"
	_ "go.trai.ch/crier/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/crier/internal/app"
	_ "go.trai.ch/crier/internal/engine/published"
)
