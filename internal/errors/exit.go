package errors

import (
	"errors"
	"io/fs"
)

// Exit codes returned by the djscaffold binary.
const (
	ExitSuccess            = 0
	ExitGeneralError       = 1
	ExitValidationError    = 2 // bad config or arguments
	ExitPreconditionFailed = 3 // required tool missing or too old
	ExitPermissionDenied   = 4
	ExitNotFound           = 5 // template directory or file missing
	ExitDeclined           = 6 // operator declined a destructive action
	ExitStepFailed         = 7
	ExitNotReady           = 8 // datastore never became ready
)

// ExitError carries a process exit code alongside the error that caused it.
// Printed is set once the command layer has rendered Err, so main only
// needs to exit.
type ExitError struct {
	Code    int
	Err     error
	Printed bool
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return ExitCodeName(e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// NewExitError wraps err with the exit code derived from it.
func NewExitError(err error, printed bool) *ExitError {
	return &ExitError{Code: ExitCodeFromError(err), Err: err, Printed: printed}
}

// Checked in order; the first match decides the code.
var sentinelCodes = []struct {
	err  error
	code int
}{
	{ErrValidation, ExitValidationError},
	{ErrPrecondition, ExitPreconditionFailed},
	{ErrPermission, ExitPermissionDenied},
	{fs.ErrPermission, ExitPermissionDenied},
	{ErrNotFound, ExitNotFound},
	{ErrDeclined, ExitDeclined},
	{ErrStepFailed, ExitStepFailed},
	{ErrNotReady, ExitNotReady},
}

// ExitCodeFromError maps an error to an exit code. An ExitError anywhere
// in the chain keeps its code; otherwise the wrapped sentinel decides.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	for _, sc := range sentinelCodes {
		if errors.Is(err, sc.err) {
			return sc.code
		}
	}
	return ExitGeneralError
}

var exitCodeNames = map[int]string{
	ExitSuccess:            "Success",
	ExitGeneralError:       "General Error",
	ExitValidationError:    "Validation Error",
	ExitPreconditionFailed: "Precondition Failed",
	ExitPermissionDenied:   "Permission Denied",
	ExitNotFound:           "Not Found",
	ExitDeclined:           "Declined",
	ExitStepFailed:         "Step Failed",
	ExitNotReady:           "Datastore Not Ready",
}

// ExitCodeName returns a human-readable name for code.
func ExitCodeName(code int) string {
	if name, ok := exitCodeNames[code]; ok {
		return name
	}
	return "Unknown"
}
