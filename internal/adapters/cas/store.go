// Package cas implements a content addressable store for package archives.
package cas

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/crier/internal/core/domain"
	"go.trai.ch/crier/internal/core/ports"
	"go.trai.ch/zerr"
)

const archiveExt = ".crate"

// CacheDirEnv overrides the archive cache directory.
const CacheDirEnv = "CRIER_CACHE_DIR"

// Store implements ports.CrateCache with one file per archive under a root directory.
type Store struct {
	root string
}

var _ ports.CrateCache = (*Store)(nil)

// NewStore creates a new Store rooted at dir. The directory is created on first Put.
func NewStore(dir string) *Store {
	return &Store{root: filepath.Clean(dir)}
}

// Get returns the archive stored under checksum.
// Entries whose content no longer matches their checksum are treated as missing.
func (s *Store) Get(checksum string) ([]byte, bool) {
	path, ok := s.path(checksum)
	if !ok {
		return nil, false
	}

	//nolint:gosec // Path is derived from a validated checksum
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	if sum := sha256.Sum256(data); hex.EncodeToString(sum[:]) != checksum {
		_ = os.Remove(path)
		return nil, false
	}
	return data, true
}

// Put stores data under checksum. The entry becomes visible atomically.
func (s *Store) Put(checksum string, data []byte) error {
	path, ok := s.path(checksum)
	if !ok {
		return zerr.With(domain.ErrCacheWriteFailed, "checksum", checksum)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+checksum+"-*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", dir)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", tmp.Name())
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", path)
	}
	return nil
}

// path returns where the archive with the given checksum lives.
// Only lowercase hex sha256 digests are accepted.
func (s *Store) path(checksum string) (string, bool) {
	if len(checksum) != sha256.Size*2 {
		return "", false
	}
	if _, err := hex.DecodeString(checksum); err != nil || strings.ToLower(checksum) != checksum {
		return "", false
	}
	return filepath.Join(s.root, checksum[:2], checksum+archiveExt), true
}

// DefaultDir returns the cache directory used when none is configured.
func DefaultDir() string {
	if dir := os.Getenv(CacheDirEnv); dir != "" {
		return dir
	}
	base, err := os.UserCacheDir()
	if err != nil || base == "" {
		base = os.TempDir()
	}
	return filepath.Join(base, "crier", "crates")
}

// Clear removes every cached archive.
func (s *Store) Clear() error {
	if err := os.RemoveAll(s.root); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", s.root)
	}
	return nil
}
