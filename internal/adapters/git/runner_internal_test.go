//nolint:testpackage // Testing internal error classification
package git

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/crier/internal/core/domain"
)

func TestCommandError_ClassifiesIdentityUnknown(t *testing.T) {
	stderr := "Author identity unknown\n\n*** Please tell me who you are.\n\nRun\n\n  git config --global user.email \"you@example.com\""

	err := commandError(errors.New("exit status 128"), stderr, "/tmp/pkg", []string{"commit", "-m", "init"})

	assert.ErrorIs(t, err, domain.ErrGitIdentityUnknown)
	assert.ErrorContains(t, err, domain.ErrGitCommandFailed.Error())
}

func TestCommandError_OtherFailures(t *testing.T) {
	cause := errors.New("exit status 128")

	err := commandError(cause, "fatal: not a git repository", "/tmp", []string{"status"})

	assert.NotErrorIs(t, err, domain.ErrGitIdentityUnknown)
	assert.ErrorIs(t, err, cause)
	assert.ErrorContains(t, err, domain.ErrGitCommandFailed.Error())
}
