package runner

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/myblog/djscaffold/internal/errors"
)

func TestReporter_StepSuccess(t *testing.T) {
	fake := NewFake().On("docker-compose build", OK("built 3 images\n"))
	var buf bytes.Buffer

	res, err := NewReporter(fake, &buf, 0).Step(context.Background(), Command{
		Name:        "docker-compose",
		Args:        []string{"build"},
		Description: "Building images",
	})
	require.NoError(t, err)
	assert.True(t, res.Success())

	out := buf.String()
	assert.Contains(t, out, "→")
	assert.Contains(t, out, "Building images")
	assert.Contains(t, out, "$ docker-compose build")
	assert.Contains(t, out, "✔")
	assert.Contains(t, out, "built 3 images")
	assert.NotContains(t, out, "✗")
}

func TestReporter_StepFailure(t *testing.T) {
	fake := NewFake().On("docker-compose build", FakeResponse{
		Result: Result{ExitCode: 2, Stdout: "step 1/4", Stderr: "no such file"},
	})
	var buf bytes.Buffer

	res, err := NewReporter(fake, &buf, 0).Step(context.Background(), Command{
		Name: "docker-compose",
		Args: []string{"build"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrStepFailed)
	assert.Equal(t, 2, res.ExitCode)

	var cmdErr *CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, 2, cmdErr.Result.ExitCode)

	out := buf.String()
	assert.Contains(t, out, "✗")
	assert.Contains(t, out, "exit code 2")
	assert.Contains(t, out, "stderr: no such file")
	assert.Contains(t, out, "stdout: step 1/4")
}

func TestReporter_StepStartError(t *testing.T) {
	startErr := errors.New("executable file not found")
	fake := NewFake().On("docker --version", FakeResponse{Result: Result{ExitCode: -1}, Err: startErr})
	var buf bytes.Buffer

	_, err := NewReporter(fake, &buf, 0).Step(context.Background(), Command{Name: "docker", Args: []string{"--version"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrStepFailed)
	assert.ErrorIs(t, err, startErr)
	assert.Contains(t, buf.String(), "executable file not found")
}

func TestReporter_DefaultTimeout(t *testing.T) {
	fake := NewFake()
	rep := NewReporter(fake, &bytes.Buffer{}, time.Minute)

	_, err := rep.Step(context.Background(), Command{Name: "true"})
	require.NoError(t, err)
	_, err = rep.Step(context.Background(), Command{Name: "true", Timeout: time.Second})
	require.NoError(t, err)

	calls := fake.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, time.Minute, calls[0].Timeout)
	assert.Equal(t, time.Second, calls[1].Timeout)
}

func TestFake_ResponsesConsumedInOrder(t *testing.T) {
	fake := NewFake().On("probe", Fail(1, "not yet"), OK("ready"))
	ctx := context.Background()

	res, err := fake.Run(ctx, Command{Name: "probe"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.ExitCode)

	for i := 0; i < 2; i++ {
		res, err = fake.Run(ctx, Command{Name: "probe"})
		require.NoError(t, err)
		assert.Equal(t, "ready", res.Stdout)
	}

	assert.Equal(t, []string{"probe", "probe", "probe"}, fake.Lines())
}

func TestStepError(t *testing.T) {
	cmd := Command{Name: "pip", Args: []string{"install", "django"}, Description: "Installing django"}
	err := StepError(&CommandError{Command: cmd, Result: Result{ExitCode: 1}})

	var detail *oerrors.DetailError
	require.ErrorAs(t, err, &detail)
	assert.ErrorIs(t, err, oerrors.ErrStepFailed)
	assert.Equal(t, "Installing django", detail.Context["Step"])
	assert.Equal(t, "pip install django", detail.Context["Command"])
	assert.Equal(t, "1", detail.Context["ExitCode"])

	plain := errors.New("boom")
	assert.Same(t, plain, StepError(plain))
}
