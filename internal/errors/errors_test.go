//nolint:revive // Package name matches the package it tests
package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	sentinels := []error{
		ErrValidation, ErrPrecondition, ErrDeclined, ErrStepFailed,
		ErrNotReady, ErrPermission, ErrNotFound,
	}
	for i := range sentinels {
		for j := range sentinels {
			if i != j {
				assert.NotEqual(t, sentinels[i], sentinels[j])
			}
		}
	}
}

func TestDetailErrorError(t *testing.T) {
	detail := &DetailError{
		Type:     "step failed",
		Message:  "docker-compose build exited with code 1",
		Location: "/tmp/myblog_backend",
		Context:  map[string]string{"Step": "BUILD_IMAGES", "Command": "docker-compose build"},
		Hint:     "Inspect the Dockerfile",
	}

	output := detail.Error()

	assert.Contains(t, output, "Error: step failed")
	assert.Contains(t, output, "Location: /tmp/myblog_backend")
	assert.Contains(t, output, "Step: BUILD_IMAGES")
	assert.Contains(t, output, "Command: docker-compose build")
	assert.Contains(t, output, "exited with code 1")
	assert.Contains(t, output, "Hint: Inspect the Dockerfile")
	assert.Less(t, strings.Index(output, "Command:"), strings.Index(output, "Step:"), "context keys are sorted")
}

func TestDetailErrorUnwrap(t *testing.T) {
	detail := &DetailError{Type: "test", Message: "test message", Cause: ErrDeclined}

	assert.True(t, errors.Is(detail, ErrDeclined))
	assert.Equal(t, ErrDeclined, detail.Unwrap())
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		typ      string
	}{
		{"validation", NewValidationError("bad", "config.yaml", "fix it"), ErrValidation, "validation failed"},
		{"precondition", NewPreconditionError("docker", "not found", "install docker"), ErrPrecondition, "precondition failed"},
		{"not found", NewNotFoundError("missing", "docker-setup", ""), ErrNotFound, "not found"},
		{"step", NewStepError("BUILD_IMAGES", "exit 1", nil), ErrStepFailed, "step failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.err)
			assert.True(t, errors.Is(tt.err, tt.sentinel))

			var detail *DetailError
			require.True(t, errors.As(tt.err, &detail))
			assert.Equal(t, tt.typ, detail.Type)
		})
	}
}

func TestNewStepError_MergesContext(t *testing.T) {
	err := NewStepError("RUN_MIGRATIONS", "failed", map[string]string{"Command": "migrate"})

	var detail *DetailError
	require.True(t, errors.As(err, &detail))
	assert.Equal(t, "RUN_MIGRATIONS", detail.Context["Step"])
	assert.Equal(t, "migrate", detail.Context["Command"])
}

func TestWithContext(t *testing.T) {
	err := WithContext(NewPreconditionError("docker", "docker failed", ""), map[string]string{"Stderr": "daemon not running"})

	var detail *DetailError
	require.True(t, errors.As(err, &detail))
	assert.Equal(t, "docker", detail.Context["Tool"])
	assert.Equal(t, "daemon not running", detail.Context["Stderr"])
	assert.Contains(t, err.Error(), "Stderr: daemon not running")

	plain := errors.New("plain")
	assert.Same(t, plain, WithContext(plain, map[string]string{"k": "v"}))

	validation := WithContext(NewValidationError("bad", "", ""), map[string]string{"k": "v"})
	require.True(t, errors.As(validation, &detail))
	assert.Equal(t, "v", detail.Context["k"])
}

func TestWrap(t *testing.T) {
	wrapped := Wrap(ErrNotReady, "postgres did not answer")

	assert.True(t, errors.Is(wrapped, ErrNotReady))
	assert.Contains(t, wrapped.Error(), "postgres did not answer")
}

func TestWrapFS(t *testing.T) {
	denied := &fs.PathError{Op: "mkdir", Path: "/etc/djscaffold", Err: fs.ErrPermission}
	err := WrapFS(denied, "creating /etc/djscaffold")
	assert.ErrorIs(t, err, ErrPermission)
	assert.ErrorIs(t, err, denied)
	assert.Equal(t, ExitPermissionDenied, ExitCodeFromError(err))

	full := &fs.PathError{Op: "write", Path: "config.yaml", Err: errors.New("no space left on device")}
	err = WrapFS(full, "writing config.yaml")
	assert.NotErrorIs(t, err, ErrPermission)
	assert.ErrorIs(t, err, full)
	assert.Contains(t, err.Error(), "no space left on device")
	assert.Equal(t, ExitGeneralError, ExitCodeFromError(err))
}

func TestExitCodeFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"nil error returns success", nil, ExitSuccess},
		{"validation error", ErrValidation, ExitValidationError},
		{"wrapped validation error", Wrap(ErrValidation, "bad config"), ExitValidationError},
		{"precondition", NewPreconditionError("docker", "missing", ""), ExitPreconditionFailed},
		{"permission sentinel", ErrPermission, ExitPermissionDenied},
		{"os permission", fmt.Errorf("mkdir: %w", fs.ErrPermission), ExitPermissionDenied},
		{"not found", ErrNotFound, ExitNotFound},
		{"declined", Wrap(ErrDeclined, "keep existing directory"), ExitDeclined},
		{"step failed", NewStepError("BUILD_IMAGES", "x", nil), ExitStepFailed},
		{"not ready", ErrNotReady, ExitNotReady},
		{"explicit exit error", &ExitError{Code: 42, Err: errors.New("x")}, 42},
		{"unknown error returns general error", errors.New("unknown error"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, ExitCodeFromError(tt.err))
		})
	}
}

func TestExitCodeConstants(t *testing.T) {
	assert.Equal(t, 0, ExitSuccess)
	assert.Equal(t, 1, ExitGeneralError)
	assert.Equal(t, 2, ExitValidationError)
	assert.Equal(t, 3, ExitPreconditionFailed)
	assert.Equal(t, 4, ExitPermissionDenied)
	assert.Equal(t, 5, ExitNotFound)
	assert.Equal(t, 6, ExitDeclined)
	assert.Equal(t, 7, ExitStepFailed)
	assert.Equal(t, 8, ExitNotReady)
}

func TestExitError(t *testing.T) {
	inner := Wrap(ErrDeclined, "kept directory")
	exitErr := NewExitError(inner, true)

	assert.Equal(t, ExitDeclined, exitErr.Code)
	assert.True(t, exitErr.Printed)
	assert.True(t, errors.Is(exitErr, ErrDeclined))
	assert.Equal(t, inner.Error(), exitErr.Error())
	assert.Equal(t, "Step Failed", (&ExitError{Code: ExitStepFailed}).Error())
}
