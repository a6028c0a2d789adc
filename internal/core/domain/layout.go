package domain

const (
	// CargoTomlName is the file name of a Cargo manifest.
	CargoTomlName = "Cargo.toml"

	// VcsInfoFileName is the side-car file `cargo package` writes with the source commit.
	VcsInfoFileName = ".cargo_vcs_info.json"

	// GitDirName is the name of the git metadata directory.
	GitDirName = ".git"

	// ConfigFileName is the name of the crier configuration file.
	ConfigFileName = "crier.yaml"

	// DefaultRegistry is the name Cargo uses for crates.io.
	DefaultRegistry = "crates-io"

	// ScratchDirPattern is the os.MkdirTemp pattern for the scratch directory.
	ScratchDirPattern = "crier-"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)
