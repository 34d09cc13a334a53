package toolcheck

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/myblog/djscaffold/internal/errors"
	"github.com/myblog/djscaffold/internal/runner"
)

var (
	docker = Tool{
		Name:       "docker",
		Command:    []string{"docker", "--version"},
		MinVersion: ">= 20.10",
		Hint:       "Install Docker",
	}
	compose = Tool{
		Name:    "docker-compose",
		Command: []string{"docker-compose", "--version"},
		Hint:    "Install Docker Compose",
	}
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		out     string
		want    string
		wantErr bool
	}{
		{"Docker version 24.0.7, build afdd53b", "24.0.7", false},
		{"docker-compose version 1.29.2, build 5becea4c", "1.29.2", false},
		{"Docker Compose version v2.23.0-desktop.1", "2.23.0", false},
		{"Python 3.11", "3.11.0", false},
		{"command not found", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.out, func(t *testing.T) {
			v, err := ParseVersion(tt.out)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.String())
		})
	}
}

func TestRun_AllPresent(t *testing.T) {
	fake := runner.NewFake().
		On("docker --version", runner.OK("Docker version 24.0.7, build afdd53b\n")).
		On("docker-compose --version", runner.OK("Docker Compose version v2.23.0\n"))

	checks, err := Run(context.Background(), fake, []Tool{docker, compose})
	require.NoError(t, err)
	require.Len(t, checks, 2)
	assert.Equal(t, "24.0.7", checks[0].Version.String())
	assert.Empty(t, checks[1].Warning)
}

func TestRun_MissingTool(t *testing.T) {
	fake := runner.NewFake().
		On("docker --version", runner.FakeResponse{
			Result: runner.Result{ExitCode: -1},
			Err:    errors.New(`exec: "docker": executable file not found in $PATH`),
		})

	checks, err := Run(context.Background(), fake, []Tool{docker, compose})
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrPrecondition)
	assert.Equal(t, oerrors.ExitPreconditionFailed, oerrors.ExitCodeFromError(err))
	assert.Empty(t, checks)

	var detail *oerrors.DetailError
	require.ErrorAs(t, err, &detail)
	assert.Equal(t, "Install Docker", detail.Hint)

	// Fail fast: compose is never checked.
	assert.Equal(t, []string{"docker --version"}, fake.Lines())
}

func TestRun_NonZeroExit(t *testing.T) {
	fake := runner.NewFake().
		On("docker --version", runner.OK("Docker version 24.0.7")).
		On("docker-compose --version", runner.Fail(127, "not found"))

	checks, err := Run(context.Background(), fake, []Tool{docker, compose})
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrPrecondition)
	assert.Contains(t, err.Error(), "exit code 127")
	assert.Contains(t, err.Error(), "Stderr: not found")
	assert.Len(t, checks, 1)
}

func TestRun_TooOld(t *testing.T) {
	fake := runner.NewFake().On("docker --version", runner.OK("Docker version 19.03.12, build 48a66213fe"))

	_, err := Run(context.Background(), fake, []Tool{docker})
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrPrecondition)
	assert.Contains(t, err.Error(), "does not satisfy >= 20.10")
}

func TestRun_UnparsableVersionWarns(t *testing.T) {
	fake := runner.NewFake().On("docker --version", runner.OK("Docker (custom build)"))

	checks, err := Run(context.Background(), fake, []Tool{docker})
	require.NoError(t, err)
	require.Len(t, checks, 1)
	assert.Nil(t, checks[0].Version)
	assert.Contains(t, checks[0].Warning, "could not determine docker version")
}

func TestRun_NoCommand(t *testing.T) {
	_, err := Run(context.Background(), runner.NewFake(), []Tool{{Name: "empty"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrValidation)
}
