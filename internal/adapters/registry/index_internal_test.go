//nolint:testpackage // Testing internal index parsing
package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/crier/internal/core/domain"
)

func TestIndexPath(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "a", want: "1/a"},
		{name: "ab", want: "2/ab"},
		{name: "abc", want: "3/a/abc"},
		{name: "serde", want: "se/rd/serde"},
		{name: "Inflector", want: "in/fl/inflector"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, indexPath(tt.name))
		})
	}
}

func TestLatestRelease(t *testing.T) {
	tests := []struct {
		name      string
		index     string
		wantVers  string
		wantFound bool
	}{
		{
			name: "highest non-yanked",
			index: `{"name":"foo","vers":"1.0.0","cksum":"a","yanked":false}
{"name":"foo","vers":"1.10.0","cksum":"b","yanked":false}
{"name":"foo","vers":"1.9.0","cksum":"c","yanked":false}
{"name":"foo","vers":"2.0.0","cksum":"d","yanked":true}
`,
			wantVers:  "1.10.0",
			wantFound: true,
		},
		{
			name: "stable wins over newer pre-release",
			index: `{"name":"foo","vers":"1.0.0","cksum":"a","yanked":false}
{"name":"foo","vers":"2.0.0-rc.1","cksum":"b","yanked":false}`,
			wantVers:  "1.0.0",
			wantFound: true,
		},
		{
			name:      "only pre-releases",
			index:     `{"name":"foo","vers":"0.1.0-alpha.1","cksum":"a","yanked":false}` + "\n" + `{"name":"foo","vers":"0.1.0-alpha.2","cksum":"b","yanked":false}`,
			wantVers:  "0.1.0-alpha.2",
			wantFound: true,
		},
		{
			name:  "all yanked",
			index: `{"name":"foo","vers":"1.0.0","cksum":"a","yanked":true}`,
		},
		{
			name:  "empty",
			index: "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, found, err := latestRelease("foo", []byte(tt.index))
			require.NoError(t, err)
			assert.Equal(t, tt.wantFound, found)
			if tt.wantFound {
				assert.Equal(t, tt.wantVers, r.Vers)
			}
		})
	}
}

func TestLatestRelease_InvalidEntry(t *testing.T) {
	_, _, err := latestRelease("foo", []byte(`{"name":"foo","vers":`))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrRegistryIndexParseFailed.Error())

	_, _, err = latestRelease("foo", []byte(`{"name":"foo","vers":"one","cksum":"a"}`))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrRegistryIndexParseFailed.Error())
}

func TestDownloadURL(t *testing.T) {
	r := release{indexEntry: indexEntry{Name: "Serde_Json", Vers: "1.0.1", Cksum: "abc"}}

	tests := []struct {
		name string
		dl   string
		want string
	}{
		{
			name: "no markers",
			dl:   "https://static.crates.io/crates",
			want: "https://static.crates.io/crates/Serde_Json/1.0.1/download",
		},
		{
			name: "trailing slash",
			dl:   "https://example.com/api/v1/crates/",
			want: "https://example.com/api/v1/crates/Serde_Json/1.0.1/download",
		},
		{
			name: "markers",
			dl:   "https://example.com/{prefix}/{lowerprefix}/{crate}-{version}.crate?sum={sha256-checksum}",
			want: "https://example.com/Se/rd/se/rd/Serde_Json-1.0.1.crate?sum=abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, indexConfig{DL: tt.dl}.downloadURL(r))
		})
	}
}
