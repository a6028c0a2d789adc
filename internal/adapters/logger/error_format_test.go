package logger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/crier/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func TestCollectErrorEntries(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantMessages []string
		wantMetadata []map[string]any
	}{
		{
			name:         "standard error",
			err:          errors.New("connection refused"),
			wantMessages: []string{"connection refused"},
			wantMetadata: []map[string]any{nil},
		},
		{
			name: "wrapped chain",
			err: zerr.Wrap(
				zerr.Wrap(errors.New("exit status 128"), "git command failed"),
				"failed to create worktree",
			),
			wantMessages: []string{"failed to create worktree", "git command failed", "exit status 128"},
			wantMetadata: []map[string]any{{}, {}, nil},
		},
		{
			name: "fields on each link",
			err: func() error {
				inner := zerr.With(zerr.New("crate checksum mismatch"), "crate", "serde")
				outer := zerr.Wrap(inner, "failed to download packages from registry")
				return zerr.With(outer, "registry", "corp")
			}(),
			wantMessages: []string{"failed to download packages from registry", "crate checksum mismatch"},
			wantMetadata: []map[string]any{
				{"registry": "corp"},
				{"crate": "serde"},
			},
		},
		{
			name:         "fields on a standard error move to its entry",
			err:          zerr.With(errors.New("no such host"), "url", "https://index.example"),
			wantMessages: []string{"no such host"},
			wantMetadata: []map[string]any{{"url": "https://index.example"}},
		},
		{
			name: "nil error",
			err:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := logger.CollectErrorEntriesExported(tt.err)

			if tt.err == nil {
				assert.Empty(t, entries)
				return
			}

			assert.Len(t, entries, len(tt.wantMessages))
			for i, wantMsg := range tt.wantMessages {
				assert.Equal(t, wantMsg, entries[i].Message, "message mismatch at index %d", i)
				assert.Equal(t, tt.wantMetadata[i], entries[i].Metadata, "metadata mismatch at index %d", i)
			}
		})
	}
}

func TestFormatErrorEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []logger.ErrorEntry
		want    string
	}{
		{
			name:    "single entry",
			entries: []logger.ErrorEntry{{Message: "single error"}},
			want:    "Error: single error",
		},
		{
			name:    "causes",
			entries: []logger.ErrorEntry{{Message: "first"}, {Message: "second"}, {Message: "third"}},
			want:    "Error: first\n\n  Caused by:\n    → second\n    → third",
		},
		{
			name: "fields sorted by key",
			entries: []logger.ErrorEntry{
				{Message: "error", Metadata: map[string]any{"tag": "a@1.0.0", "package": "a", "repository": "/src"}},
			},
			want: "Error: error\n       package: a\n       repository: /src\n       tag: a@1.0.0",
		},
		{
			name: "fields on a cause",
			entries: []logger.ErrorEntry{
				{Message: "main"},
				{Message: "cause", Metadata: map[string]any{"status": 503}},
			},
			want: "Error: main\n\n  Caused by:\n    → cause\n      status: 503",
		},
		{
			name: "multiline messages",
			entries: []logger.ErrorEntry{
				{Message: "line1\nline2"},
				{Message: "fatal: bad ref\nhint: check the tag"},
			},
			want: "Error: line1\n       line2\n\n  Caused by:\n    → fatal: bad ref\n      hint: check the tag",
		},
		{
			name:    "no entries",
			entries: []logger.ErrorEntry{},
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.FormatErrorEntriesExported(tt.entries))
		})
	}
}
