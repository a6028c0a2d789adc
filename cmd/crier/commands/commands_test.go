package commands_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/crier/cmd/crier/commands"
	"go.trai.ch/crier/internal/app"
	"go.trai.ch/crier/internal/build"
)

type mockApp struct {
	publishedFunc func(ctx context.Context, opts app.PublishedOptions) ([]app.PackageStatus, error)
	cleanFunc     func(ctx context.Context) error
}

func (m *mockApp) Published(ctx context.Context, opts app.PublishedOptions) ([]app.PackageStatus, error) {
	if m.publishedFunc != nil {
		return m.publishedFunc(ctx, opts)
	}
	return nil, nil
}

func (m *mockApp) Clean(ctx context.Context) error {
	if m.cleanFunc != nil {
		return m.cleanFunc(ctx)
	}
	return nil
}

type fakeLogFormat struct {
	json bool
}

func (f *fakeLogFormat) SetJSON(enable bool) {
	f.json = enable
}

var sampleStatuses = []app.PackageStatus{
	{Name: "core", LocalVersion: "1.1.0", Source: app.SourceRegistry, Published: true, PublishedVersion: "1.0.0"},
	{
		Name: "corp-lib", LocalVersion: "0.3.0", Source: app.SourceRegistry,
		Published: true, PublishedVersion: "0.2.0", OriginCommit: "0123456789abcdef0123",
	},
	{
		Name: "tool", LocalVersion: "1.3.0", Source: app.SourceGitTag,
		Published: true, PublishedVersion: "1.2.0", OriginCommit: "deadbeef",
	},
	{Name: "internal", LocalVersion: "0.1.0", Source: app.SourceGitTag},
}

func runCLI(t *testing.T, a commands.Application, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(a)
	out := new(bytes.Buffer)
	cli.SetOutput(out, new(bytes.Buffer))
	cli.SetArgs(args)
	err := cli.Execute(t.Context())
	return out.String(), err
}

func TestCommands_Published(t *testing.T) {
	t.Run("prints a table", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		mock := &mockApp{
			publishedFunc: func(context.Context, app.PublishedOptions) ([]app.PackageStatus, error) {
				return sampleStatuses, nil
			},
		}

		out, err := runCLI(t, mock, "published")
		require.NoError(t, err)

		g := goldie.New(t)
		g.Assert(t, "published_table", []byte(out))
	})

	t.Run("prints JSON and switches the log format", func(t *testing.T) {
		mock := &mockApp{
			publishedFunc: func(context.Context, app.PublishedOptions) ([]app.PackageStatus, error) {
				return sampleStatuses[2:], nil
			},
		}
		logFormat := &fakeLogFormat{}

		cli := commands.New(mock)
		cli.SetLogFormat(logFormat)
		out := new(bytes.Buffer)
		cli.SetOutput(out, new(bytes.Buffer))
		cli.SetArgs([]string{"published", "--json"})
		require.NoError(t, cli.Execute(t.Context()))

		assert.True(t, logFormat.json)
		assert.JSONEq(t, `[
			{"name": "tool", "local_version": "1.3.0", "source": "git", "published": true,
			 "published_version": "1.2.0", "origin_commit": "deadbeef"},
			{"name": "internal", "local_version": "0.1.0", "source": "git", "published": false}
		]`, out.String())
	})

	t.Run("wires flags", func(t *testing.T) {
		var captured app.PublishedOptions
		mock := &mockApp{
			publishedFunc: func(_ context.Context, opts app.PublishedOptions) ([]app.PackageStatus, error) {
				captured = opts
				return nil, nil
			},
		}

		_, err := runCLI(t, mock, "published",
			"--config", "/ws/crier.yaml",
			"--registry", "corp",
			"--registry-manifest", "published/Cargo.toml",
			"--trace-file", "/tmp/trace.json",
		)
		require.NoError(t, err)

		abs, err := filepath.Abs("published/Cargo.toml")
		require.NoError(t, err)
		assert.Equal(t, app.PublishedOptions{
			ConfigPath:       "/ws/crier.yaml",
			Registry:         "corp",
			RegistryManifest: abs,
			TraceFile:        "/tmp/trace.json",
		}, captured)
	})

	t.Run("reads flags from the environment", func(t *testing.T) {
		t.Setenv("CRIER_REGISTRY", "mirror")
		t.Setenv("CRIER_REGISTRY_MANIFEST", "/published/Cargo.toml")
		t.Setenv("CRIER_CONFIG", "/ws/crier.yaml")

		var captured app.PublishedOptions
		mock := &mockApp{
			publishedFunc: func(_ context.Context, opts app.PublishedOptions) ([]app.PackageStatus, error) {
				captured = opts
				return nil, nil
			},
		}

		_, err := runCLI(t, mock, "published")
		require.NoError(t, err)
		assert.Equal(t, "mirror", captured.Registry)
		assert.Equal(t, "/published/Cargo.toml", captured.RegistryManifest)
		assert.Equal(t, "/ws/crier.yaml", captured.ConfigPath)
	})

	t.Run("flags win over the environment", func(t *testing.T) {
		t.Setenv("CRIER_REGISTRY", "mirror")

		var captured app.PublishedOptions
		mock := &mockApp{
			publishedFunc: func(_ context.Context, opts app.PublishedOptions) ([]app.PackageStatus, error) {
				captured = opts
				return nil, nil
			},
		}

		_, err := runCLI(t, mock, "published", "--registry", "corp")
		require.NoError(t, err)
		assert.Equal(t, "corp", captured.Registry)
	})

	t.Run("returns the application error", func(t *testing.T) {
		mock := &mockApp{
			publishedFunc: func(context.Context, app.PublishedOptions) ([]app.PackageStatus, error) {
				return nil, errors.New("simulated error")
			},
		}

		out, err := runCLI(t, mock, "published")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
		assert.Empty(t, out)
	})

	t.Run("rejects arguments", func(t *testing.T) {
		_, err := runCLI(t, &mockApp{}, "published", "extra")
		require.Error(t, err)
	})
}

func TestCommands_Clean(t *testing.T) {
	called := false
	mock := &mockApp{
		cleanFunc: func(context.Context) error {
			called = true
			return nil
		},
	}

	_, err := runCLI(t, mock, "clean")
	require.NoError(t, err)
	assert.True(t, called)

	mock.cleanFunc = func(context.Context) error { return errors.New("permission denied") }
	_, err = runCLI(t, mock, "clean")
	require.ErrorContains(t, err, "permission denied")
}

func TestCommands_Version(t *testing.T) {
	out, err := runCLI(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Equal(t, "crier version "+build.Version+" (commit: "+build.Commit+", date: "+build.Date+")\n", out)
}

func TestCommands_VersionFlag(t *testing.T) {
	out, err := runCLI(t, &mockApp{}, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "crier version "+build.Version)
}
