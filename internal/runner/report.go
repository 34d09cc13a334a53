package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	oerrors "github.com/myblog/djscaffold/internal/errors"
	"github.com/myblog/djscaffold/internal/output"
)

// CommandError describes a command that failed to start or exited non-zero.
type CommandError struct {
	Command Command
	Result  Result

	// Cause is set when the command could not be started.
	Cause error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	switch {
	case e.Cause != nil:
		return fmt.Sprintf("%s: %v", e.Command.Label(), e.Cause)
	case e.Result.TimedOut:
		return fmt.Sprintf("%s: timed out after %s", e.Command.Label(), e.Command.Timeout)
	default:
		return fmt.Sprintf("%s: exited with code %d", e.Command.Label(), e.Result.ExitCode)
	}
}

// Unwrap returns ErrStepFailed, or the start error when there is one.
func (e *CommandError) Unwrap() []error {
	if e.Cause != nil {
		return []error{oerrors.ErrStepFailed, e.Cause}
	}
	return []error{oerrors.ErrStepFailed}
}

// Reporter runs commands and writes a human-readable report for each.
type Reporter struct {
	runner  Runner
	out     io.Writer
	timeout time.Duration
}

// NewReporter creates a Reporter writing to out.
// timeout applies to commands that do not set their own; zero means none.
func NewReporter(r Runner, out io.Writer, timeout time.Duration) *Reporter {
	return &Reporter{runner: r, out: out, timeout: timeout}
}

// Runner returns the underlying runner.
func (r *Reporter) Runner() Runner {
	return r.runner
}

// Step runs cmd and reports the outcome. It returns nil only when the
// command exited 0; failures are reported but never retried.
func (r *Reporter) Step(ctx context.Context, cmd Command) (Result, error) {
	if cmd.Timeout == 0 {
		cmd.Timeout = r.timeout
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, output.FormatInfo(output.StyleAction.Render(cmd.Label())))
	fmt.Fprintln(r.out, output.StyleDim.Render("  $ "+cmd.String()))
	output.Debug("running command", "cmd", cmd.String(), "dir", cmd.Dir)

	res, err := r.runner.Run(ctx, cmd)
	if err != nil {
		fmt.Fprintln(r.out, output.FormatFailure(fmt.Sprintf("%s: %v", cmd.Label(), err)))
		if ctx.Err() != nil {
			return res, err
		}
		return res, &CommandError{Command: cmd, Result: res, Cause: err}
	}

	if res.Success() {
		fmt.Fprintln(r.out, output.FormatCheckmark(fmt.Sprintf("%s %s", cmd.Label(),
			output.StyleDim.Render("("+res.Duration.Round(time.Millisecond).String()+")"))))
		if out := strings.TrimSpace(res.Stdout); out != "" {
			fmt.Fprintln(r.out, out)
		}
		return res, nil
	}

	reason := fmt.Sprintf("exit code %d", res.ExitCode)
	if res.TimedOut {
		reason = "timed out"
	}
	fmt.Fprintln(r.out, output.FormatFailure(fmt.Sprintf("%s (%s)", cmd.Label(), reason)))
	if stderr := strings.TrimSpace(res.Stderr); stderr != "" {
		fmt.Fprintln(r.out, "  stderr: "+stderr)
	}
	if stdout := strings.TrimSpace(res.Stdout); stdout != "" {
		fmt.Fprintln(r.out, "  stdout: "+stdout)
	}

	return res, &CommandError{Command: cmd, Result: res}
}

// StepError converts a Step failure into a DetailError naming the command.
// Other errors are returned unchanged.
func StepError(err error) error {
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		return err
	}
	return oerrors.NewStepError(cmdErr.Command.Label(), cmdErr.Error(), map[string]string{
		"Command":  cmdErr.Command.String(),
		"ExitCode": strconv.Itoa(cmdErr.Result.ExitCode),
	})
}
