// Package errors provides sentinel errors, detailed error rendering, and
// exit-code mapping for djscaffold.
package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"slices"
	"strings"
)

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates invalid configuration or arguments.
	ErrValidation = errors.New("validation error")

	// ErrPrecondition indicates a required external tool is missing or too old.
	ErrPrecondition = errors.New("precondition failed")

	// ErrDeclined indicates the operator declined a destructive action.
	ErrDeclined = errors.New("declined by operator")

	// ErrStepFailed indicates a mutating pipeline step failed.
	ErrStepFailed = errors.New("step failed")

	// ErrNotReady indicates a datastore did not become ready in time.
	ErrNotReady = errors.New("datastore not ready")

	// ErrPermission indicates insufficient filesystem permissions.
	ErrPermission = errors.New("permission denied")

	// ErrNotFound indicates a template directory or file was not found.
	ErrNotFound = errors.New("not found")
)

// DetailError is an error with enough structure to render a readable
// report: a category line, optional location and context, the message and
// a hint. Cause carries the sentinel used for exit-code mapping.
type DetailError struct {
	Type     string
	Message  string
	Location string
	Context  map[string]string
	Hint     string
	Cause    error
}

func (e *DetailError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Error: %s\n", e.Type)
	if e.Location != "" {
		fmt.Fprintf(&b, "  Location: %s\n", e.Location)
	}
	for _, k := range slices.Sorted(maps.Keys(e.Context)) {
		fmt.Fprintf(&b, "  %s: %s\n", k, e.Context[k])
	}
	fmt.Fprintf(&b, "\n  %s\n", e.Message)
	if e.Hint != "" {
		fmt.Fprintf(&b, "\nHint: %s\n", e.Hint)
	}
	return b.String()
}

func (e *DetailError) Unwrap() error { return e.Cause }

func detail(cause error, typ, message string) *DetailError {
	return &DetailError{Type: typ, Message: message, Cause: cause}
}

// NewValidationError reports bad configuration or arguments.
func NewValidationError(message, location, hint string) error {
	d := detail(ErrValidation, "validation failed", message)
	d.Location, d.Hint = location, hint
	return d
}

// NewPreconditionError reports a missing or unusable tool.
func NewPreconditionError(tool, message, hint string) error {
	d := detail(ErrPrecondition, "precondition failed", message)
	d.Context = map[string]string{"Tool": tool}
	d.Hint = hint
	return d
}

// NewNotFoundError reports a missing template directory or file.
func NewNotFoundError(message, location, hint string) error {
	d := detail(ErrNotFound, "not found", message)
	d.Location, d.Hint = location, hint
	return d
}

// NewStepError reports a failed pipeline step. Extra context is merged
// under the Step key.
func NewStepError(step, message string, extra map[string]string) error {
	d := detail(ErrStepFailed, "step failed", message)
	d.Context = map[string]string{"Step": step}
	maps.Copy(d.Context, extra)
	return d
}

// WithContext merges kv into the context of the DetailError in err's chain.
// Errors without one are returned unchanged.
func WithContext(err error, kv map[string]string) error {
	var d *DetailError
	if len(kv) == 0 || !errors.As(err, &d) {
		return err
	}
	if d.Context == nil {
		d.Context = make(map[string]string, len(kv))
	}
	maps.Copy(d.Context, kv)
	return err
}

// WrapFS annotates a filesystem error with action, keeping the cause in the
// chain. Permission failures additionally wrap ErrPermission; anything
// else (ENOSPC, EROFS) maps to the general exit code.
func WrapFS(err error, action string) error {
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%s: %w: %w", action, err, ErrPermission)
	}
	return fmt.Errorf("%s: %w", action, err)
}

// Wrap annotates a sentinel with a message, keeping it matchable by errors.Is.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}
