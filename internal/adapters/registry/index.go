package registry

import (
	"bufio"
	"bytes"
	"encoding/json"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/crier/internal/core/domain"
	"go.trai.ch/zerr"
)

// dlMarkers are the placeholders a dl template may contain.
var dlMarkers = []string{"{crate}", "{version}", "{prefix}", "{lowerprefix}", "{sha256-checksum}"}

// indexConfig is the config.json at the root of a sparse index.
type indexConfig struct {
	DL           string `json:"dl"`
	API          string `json:"api"`
	AuthRequired bool   `json:"auth-required"`
}

// indexEntry is one line of a crate's index file.
type indexEntry struct {
	Name   string `json:"name"`
	Vers   string `json:"vers"`
	Cksum  string `json:"cksum"`
	Yanked bool   `json:"yanked"`
}

// release is an index entry with its parsed version.
type release struct {
	indexEntry
	version *semver.Version
}

// indexPath returns the path of a crate's file inside the index.
func indexPath(name string) string {
	name = strings.ToLower(name)
	return prefix(name) + "/" + name
}

// prefix returns the directory of a crate's file inside the index.
func prefix(name string) string {
	switch len(name) {
	case 0:
		return ""
	case 1:
		return "1"
	case 2:
		return "2"
	case 3:
		return "3/" + name[:1]
	default:
		return name[:2] + "/" + name[2:4]
	}
}

// latestRelease returns the highest non-yanked release in an index file.
// Pre-releases are only chosen when the crate has no stable release.
func latestRelease(name string, data []byte) (release, bool, error) {
	var latest, latestPre release
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var entry indexEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			return release{}, false, zerr.With(zerr.Wrap(err, domain.ErrRegistryIndexParseFailed.Error()), "crate", name)
		}
		if entry.Yanked {
			continue
		}
		v, err := semver.StrictNewVersion(entry.Vers)
		if err != nil {
			parseErr := zerr.Wrap(err, domain.ErrRegistryIndexParseFailed.Error())
			return release{}, false, zerr.With(zerr.With(parseErr, "crate", name), "version", entry.Vers)
		}

		candidate := release{indexEntry: entry, version: v}
		if v.Prerelease() != "" {
			if latestPre.version == nil || v.GreaterThan(latestPre.version) {
				latestPre = candidate
			}
			continue
		}
		if latest.version == nil || v.GreaterThan(latest.version) {
			latest = candidate
		}
	}
	if err := scanner.Err(); err != nil {
		return release{}, false, zerr.With(zerr.Wrap(err, domain.ErrRegistryIndexParseFailed.Error()), "crate", name)
	}

	switch {
	case latest.version != nil:
		return latest, true, nil
	case latestPre.version != nil:
		return latestPre, true, nil
	default:
		return release{}, false, nil
	}
}

// downloadURL expands the dl template of the index for r.
func (c indexConfig) downloadURL(r release) string {
	dl := c.DL
	if !slices.ContainsFunc(dlMarkers, func(m string) bool { return strings.Contains(dl, m) }) {
		return strings.TrimSuffix(dl, "/") + "/" + r.Name + "/" + r.Vers + "/download"
	}

	return strings.NewReplacer(
		"{crate}", r.Name,
		"{version}", r.Vers,
		"{prefix}", prefix(r.Name),
		"{lowerprefix}", prefix(strings.ToLower(r.Name)),
		"{sha256-checksum}", r.Cksum,
	).Replace(dl)
}
