package ports

// CrateCache keeps downloaded package archives keyed by their sha256 checksum.
//
//go:generate go run go.uber.org/mock/mockgen -source=crate_cache.go -destination=mocks/mock_crate_cache.go -package=mocks
type CrateCache interface {
	// Get returns the archive with the given checksum, if it is cached.
	Get(checksum string) ([]byte, bool)

	// Put stores an archive under its checksum.
	Put(checksum string, data []byte) error

	// Clear removes every cached archive.
	Clear() error
}
