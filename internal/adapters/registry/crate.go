package registry

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.trai.ch/crier/internal/core/domain"
	"go.trai.ch/zerr"
)

// maxCrateSize bounds both the compressed archive and its unpacked contents.
const maxCrateSize = 64 << 20

func verifyChecksum(archive []byte, r release) error {
	if r.Cksum == "" {
		return nil
	}
	sum := sha256.Sum256(archive)
	if got := hex.EncodeToString(sum[:]); !strings.EqualFold(got, r.Cksum) {
		err := zerr.With(domain.ErrCrateChecksumMismatch, "crate", r.Name)
		err = zerr.With(err, "version", r.Vers)
		err = zerr.With(err, "expected", r.Cksum)
		return zerr.With(err, "actual", got)
	}
	return nil
}

// extractCrate unpacks a .crate archive into destDir/<name>-<version> and returns that directory.
// Entries outside the <name>-<version>/ prefix, links and special files are ignored.
func extractCrate(archive []byte, destDir string, r release) (string, error) {
	rootName := r.Name + "-" + r.Vers
	target := filepath.Join(destDir, rootName)
	if err := os.MkdirAll(target, domain.DirPerm); err != nil {
		return "", extractError(err, r)
	}

	root, err := os.OpenRoot(target)
	if err != nil {
		return "", extractError(err, r)
	}
	defer func() { _ = root.Close() }()

	gz, err := gzip.NewReader(bytes.NewReader(archive))
	if err != nil {
		return "", extractError(err, r)
	}
	defer func() { _ = gz.Close() }()

	var written int64
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		// Insecure names still come with a usable header and are filtered below.
		if err != nil && !errors.Is(err, tar.ErrInsecurePath) {
			return "", extractError(err, r)
		}

		rel, ok := strings.CutPrefix(path.Clean(hdr.Name), rootName+"/")
		if !ok {
			continue
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := root.MkdirAll(rel, domain.DirPerm); err != nil {
				return "", extractError(err, r)
			}
		case tar.TypeReg:
			n, err := writeEntry(root, rel, tr, maxCrateSize-written)
			if err != nil {
				return "", zerr.With(extractError(err, r), "entry", hdr.Name)
			}
			written += n
		}
	}

	return target, nil
}

func writeEntry(root *os.Root, rel string, src io.Reader, remaining int64) (int64, error) {
	if dir := path.Dir(rel); dir != "." {
		if err := root.MkdirAll(dir, domain.DirPerm); err != nil {
			return 0, err
		}
	}

	data, err := io.ReadAll(io.LimitReader(src, remaining+1))
	if err != nil {
		return 0, err
	}
	if int64(len(data)) > remaining {
		return 0, zerr.New("crate contents exceed size limit")
	}
	if err := root.WriteFile(rel, data, domain.FilePerm); err != nil {
		return 0, err
	}
	return int64(len(data)), nil
}

func extractError(err error, r release) error {
	return zerr.With(zerr.With(zerr.Wrap(err, domain.ErrCrateExtractFailed.Error()), "crate", r.Name), "version", r.Vers)
}
