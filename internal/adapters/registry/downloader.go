package registry

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"slices"

	"go.trai.ch/crier/internal/core/domain"
	"go.trai.ch/crier/internal/core/ports"
	"go.trai.ch/zerr"
)

const userAgent = "crier (https://go.trai.ch/crier)"

// Downloader implements ports.Downloader for sparse registries.
type Downloader struct {
	client    *http.Client
	locator   *Locator
	manifests ports.ManifestReader
	cache     ports.CrateCache
}

// NewDownloader creates a Downloader.
func NewDownloader(client *http.Client, locator *Locator, manifests ports.ManifestReader) *Downloader {
	return &Downloader{
		client:    client,
		locator:   locator,
		manifests: manifests,
	}
}

// WithCache makes the Downloader reuse archives from cache and store the ones it fetches.
func (d *Downloader) WithCache(cache ports.CrateCache) *Downloader {
	d.cache = cache
	return d
}

// Download extracts the latest release of every requested crate into req.Dir.
// Crates the index does not know, or whose releases are all yanked, are left out.
func (d *Downloader) Download(ctx context.Context, req ports.DownloadRequest) ([]domain.Package, error) {
	locator := d.locator
	if req.WorkspaceDir != "" {
		locator = locator.In(req.WorkspaceDir)
	}

	loc, err := locator.Locate(req.Registry)
	if err != nil {
		return nil, err
	}

	cfg, err := d.indexConfig(ctx, loc)
	if err != nil {
		return nil, err
	}

	var pkgs []domain.Package
	for _, name := range req.Packages {
		pkg, found, err := d.downloadCrate(ctx, loc, cfg, name, req.Dir)
		if err != nil {
			return nil, zerr.With(err, "registry", loc.Name)
		}
		if found {
			pkgs = append(pkgs, pkg)
		}
	}
	return pkgs, nil
}

func (d *Downloader) indexConfig(ctx context.Context, loc Location) (indexConfig, error) {
	data, found, err := d.get(ctx, loc.IndexURL+"config.json", loc.Token)
	if err != nil {
		return indexConfig{}, err
	}
	if !found {
		return indexConfig{}, zerr.With(domain.ErrRegistryRequestFailed, "url", loc.IndexURL+"config.json")
	}

	var cfg indexConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return indexConfig{}, zerr.With(zerr.Wrap(err, domain.ErrRegistryIndexParseFailed.Error()), "registry", loc.Name)
	}
	if cfg.DL == "" {
		return indexConfig{}, zerr.With(zerr.With(domain.ErrRegistryIndexParseFailed, "registry", loc.Name), "reason", "missing dl")
	}
	return cfg, nil
}

func (d *Downloader) downloadCrate(
	ctx context.Context,
	loc Location,
	cfg indexConfig,
	name, destDir string,
) (domain.Package, bool, error) {
	token := ""
	if cfg.AuthRequired {
		token = loc.Token
	}

	index, found, err := d.get(ctx, loc.IndexURL+indexPath(name), token)
	if err != nil || !found {
		return domain.Package{}, false, err
	}

	r, found, err := latestRelease(name, index)
	if err != nil || !found {
		return domain.Package{}, false, err
	}

	archive, err := d.fetchArchive(ctx, cfg, r, token)
	if err != nil {
		return domain.Package{}, false, err
	}

	dir, err := extractCrate(archive, destDir, r)
	if err != nil {
		return domain.Package{}, false, err
	}

	manifest := filepath.Join(dir, domain.CargoTomlName)
	metas, err := d.manifests.ReadMetadata(ctx, manifest)
	if err != nil {
		return domain.Package{}, false, err
	}
	idx := slices.IndexFunc(metas, func(p domain.Package) bool { return p.Name == r.Name })
	if idx < 0 {
		return domain.Package{}, false, zerr.With(zerr.With(domain.ErrManifestMissingPackage, "manifest", manifest), "crate", r.Name)
	}
	return metas[idx], true, nil
}

// fetchArchive returns the verified archive of r, from the cache when possible.
func (d *Downloader) fetchArchive(ctx context.Context, cfg indexConfig, r release, token string) ([]byte, error) {
	if d.cache != nil {
		if archive, ok := d.cache.Get(r.Cksum); ok {
			return archive, nil
		}
	}

	url := cfg.downloadURL(r)
	archive, found, err := d.get(ctx, url, token)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, zerr.With(zerr.With(domain.ErrRegistryRequestFailed, "url", url), "status", http.StatusNotFound)
	}
	if err := verifyChecksum(archive, r); err != nil {
		return nil, err
	}

	if d.cache != nil {
		// A failed cache write only costs a later download.
		_ = d.cache.Put(r.Cksum, archive)
	}
	return archive, nil
}

// get fetches url. Missing resources are reported as not found rather than as errors.
func (d *Downloader) get(ctx context.Context, url, token string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, zerr.With(zerr.Wrap(err, domain.ErrRegistryRequestFailed.Error()), "url", url)
	}
	req.Header.Set("User-Agent", userAgent)
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, false, zerr.With(zerr.Wrap(err, domain.ErrRegistryRequestFailed.Error()), "url", url)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusGone, http.StatusUnavailableForLegalReasons:
		return nil, false, nil
	default:
		return nil, false, zerr.With(zerr.With(domain.ErrRegistryRequestFailed, "url", url), "status", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCrateSize+1))
	if err != nil {
		return nil, false, zerr.With(zerr.Wrap(err, domain.ErrRegistryRequestFailed.Error()), "url", url)
	}
	if len(body) > maxCrateSize {
		return nil, false, zerr.With(zerr.With(domain.ErrRegistryRequestFailed, "url", url), "reason", "response too large")
	}
	return body, true, nil
}
