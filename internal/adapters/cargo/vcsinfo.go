package cargo

import (
	"encoding/json"
	"os"
)

// VcsInfoReader implements ports.VcsInfoReader for the .cargo_vcs_info.json file.
type VcsInfoReader struct{}

// NewVcsInfoReader creates a new VcsInfoReader.
func NewVcsInfoReader() *VcsInfoReader {
	return &VcsInfoReader{}
}

// ReadCommit returns the git commit recorded in the file.
// A missing, unreadable or malformed file yields no commit.
func (r *VcsInfoReader) ReadCommit(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}

	var info vcsInfoFile
	if err := json.Unmarshal(data, &info); err != nil {
		return "", false
	}
	if info.Git.Sha1 == "" {
		return "", false
	}
	return info.Git.Sha1, true
}
