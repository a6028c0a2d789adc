// Package git implements the git ports with the git CLI.
package git

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	"go.trai.ch/crier/internal/core/domain"
	"go.trai.ch/zerr"
)

const defaultBinary = "git"

// identityHints are printed by git when it cannot determine an author identity.
var identityHints = []string{
	"Author identity unknown",
	"Committer identity unknown",
	"Please tell me who you are",
}

// Runner implements ports.Git by running the git binary.
type Runner struct {
	binary string
}

// NewRunner creates a Runner that uses the git binary found on PATH.
func NewRunner() *Runner {
	return &Runner{binary: defaultBinary}
}

// Run executes `git <args>` inside dir and returns its trimmed standard output.
func (r *Runner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	//nolint:gosec // args are assembled by the resolver, not taken from user input
	cmd := exec.CommandContext(ctx, r.binary, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	output, err := cmd.Output()
	if err != nil {
		var stderr string
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			stderr = strings.TrimSpace(string(exitErr.Stderr))
		}
		return "", commandError(err, stderr, dir, args)
	}

	return strings.TrimSpace(string(output)), nil
}

func commandError(err error, stderr, dir string, args []string) error {
	var gitErr error
	if isIdentityUnknown(stderr) {
		gitErr = zerr.Wrap(domain.ErrGitIdentityUnknown, domain.ErrGitCommandFailed.Error())
	} else {
		gitErr = zerr.Wrap(err, domain.ErrGitCommandFailed.Error())
	}
	gitErr = zerr.With(gitErr, "args", strings.Join(args, " "))
	gitErr = zerr.With(gitErr, "dir", dir)
	if stderr != "" {
		gitErr = zerr.With(gitErr, "stderr", stderr)
	}
	return gitErr
}

func isIdentityUnknown(stderr string) bool {
	for _, hint := range identityHints {
		if strings.Contains(stderr, hint) {
			return true
		}
	}
	return false
}
