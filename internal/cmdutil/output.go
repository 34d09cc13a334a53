// Package cmdutil provides shared command utilities: error reporting,
// confirmation setup, project directory resolution and command reporters.
package cmdutil

import (
	"errors"
	"io"
	"path/filepath"

	"github.com/myblog/djscaffold/internal/cmdtypes"
	"github.com/myblog/djscaffold/internal/config"
	oerrors "github.com/myblog/djscaffold/internal/errors"
	"github.com/myblog/djscaffold/internal/output"
	"github.com/myblog/djscaffold/internal/prompt"
	"github.com/myblog/djscaffold/internal/runner"
	"github.com/myblog/djscaffold/internal/workspace"
)

// PrintError logs msg and, for detailed errors, the structured details.
func PrintError(msg string, err error) {
	var detail *oerrors.DetailError
	if errors.As(err, &detail) {
		output.Error(msg + ": " + detail.Type)
		output.Details(detail.Error())
		return
	}
	output.Error(msg, "error", err)
}

// Fail prints err and wraps it in an ExitError carrying its exit code.
// Declines are not failures of the tool and are reported as warnings.
func Fail(msg string, err error) error {
	if errors.Is(err, oerrors.ErrDeclined) {
		output.Warn("cancelled, nothing was changed")
	} else {
		PrintError(msg, err)
	}
	return oerrors.NewExitError(err, true)
}

// Confirmer returns the confirmation source: automatic with --yes,
// otherwise a line read from in.
func Confirmer(yes bool, in io.Reader, out io.Writer) prompt.Confirmer {
	if yes {
		return prompt.Always(true)
	}
	return prompt.NewReader(in, out)
}

// ResolveTarget picks the project directory from the --dir flag or the
// configuration and opens its parent as the workspace base.
func ResolveTarget(cfg *config.Config, dirFlag string) (*workspace.Base, string, error) {
	target := dirFlag
	if target == "" {
		target = cfg.Project.TargetDir
	}

	expanded, err := config.ExpandPath(target)
	if err != nil {
		return nil, "", err
	}
	return workspace.OpenOS(filepath.Clean(expanded))
}

// NewReporter creates a command reporter on out using the global runner
// and the configured per-command timeout.
func NewReporter(gc *cmdtypes.GlobalConfig, cfg *config.Config, out io.Writer) *runner.Reporter {
	r := gc.Runner
	if r == nil {
		r = runner.NewExecRunner()
	}
	return runner.NewReporter(r, out, cfg.CommandTimeoutDuration())
}
