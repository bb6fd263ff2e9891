package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/harrison/sandman/internal/launcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	status  int
	program string
	args    []string
}

func (r *fakeRunner) Run(ctx context.Context, program string, args []string) int {
	r.program = program
	r.args = args
	return r.status
}

func TestLaunchCommandRunsFixedInvocation(t *testing.T) {
	runner := &fakeRunner{}
	cmd := newLaunchCommand(runner)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(nil)

	require.NoError(t, cmd.Execute())
	assert.Equal(t, launcher.DefaultProgram, runner.program)
	assert.Equal(t, launcher.Defaults().Args(), runner.args)
	// A buffer is not a terminal, so nothing is cleared
	assert.Empty(t, out.String())
}

func TestLaunchCommandPassesExitStatus(t *testing.T) {
	cmd := newLaunchCommand(&fakeRunner{status: 3})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(nil)

	err := cmd.Execute()
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, exitErr.Code)
	assert.Nil(t, exitErr.Err)
}

func TestLaunchCommandRejectsArguments(t *testing.T) {
	runner := &fakeRunner{}
	cmd := newLaunchCommand(runner)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"/elsewhere"})

	assert.Error(t, cmd.Execute())
	assert.Empty(t, runner.program)
}
