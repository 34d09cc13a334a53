// Package toolcheck verifies external tools are installed and recent enough.
package toolcheck

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"

	oerrors "github.com/myblog/djscaffold/internal/errors"
	"github.com/myblog/djscaffold/internal/output"
	"github.com/myblog/djscaffold/internal/runner"
)

// versionPattern finds the first dotted version, with or without a "v".
var versionPattern = regexp.MustCompile(`v?(\d+\.\d+(?:\.\d+)?)`)

// Tool is an external tool to verify.
type Tool struct {
	Name string

	// Command prints the version and exits 0, e.g. ["docker", "--version"].
	Command []string

	// MinVersion is an optional semver constraint such as ">= 20.10".
	MinVersion string

	// Hint is shown when the tool is missing or too old.
	Hint string
}

// Check is the outcome for one tool.
type Check struct {
	Tool    Tool
	Output  string
	Version *semver.Version

	// Warning is set when the version could not be determined.
	Warning string
}

// Run checks every tool in order and stops at the first one that is
// missing or does not satisfy its constraint.
func Run(ctx context.Context, r runner.Runner, tools []Tool) ([]Check, error) {
	checks := make([]Check, 0, len(tools))
	for _, tool := range tools {
		check, err := checkTool(ctx, r, tool)
		if err != nil {
			return checks, err
		}
		checks = append(checks, check)
	}
	return checks, nil
}

func checkTool(ctx context.Context, r runner.Runner, tool Tool) (Check, error) {
	check := Check{Tool: tool}
	if len(tool.Command) == 0 {
		return check, oerrors.NewValidationError(fmt.Sprintf("tool %s has no version command", tool.Name), "", "")
	}

	cmd := runner.Command{Name: tool.Command[0], Args: tool.Command[1:]}
	res, err := r.Run(ctx, cmd)
	if ctx.Err() != nil {
		return check, ctx.Err()
	}
	if err != nil || !res.Success() {
		reason := fmt.Sprintf("exit code %d", res.ExitCode)
		if err != nil {
			reason = err.Error()
		}
		output.Debug("tool check failed", "tool", tool.Name, "cmd", cmd.String(), "reason", reason)
		return check, oerrors.WithContext(
			oerrors.NewPreconditionError(tool.Name, fmt.Sprintf("%s is not installed or not working (%s)", tool.Name, reason), tool.Hint),
			res.OutputContext())
	}

	check.Output = strings.TrimSpace(res.Stdout)
	if check.Output == "" {
		check.Output = strings.TrimSpace(res.Stderr)
	}

	version, err := ParseVersion(check.Output)
	if err != nil {
		check.Warning = fmt.Sprintf("could not determine %s version from %q", tool.Name, check.Output)
		output.Warn("could not determine tool version", "tool", tool.Name, "output", check.Output)
		return check, nil
	}
	check.Version = version

	if tool.MinVersion == "" {
		return check, nil
	}

	constraint, err := semver.NewConstraint(tool.MinVersion)
	if err != nil {
		return check, oerrors.NewValidationError(
			fmt.Sprintf("invalid version constraint %q for %s: %v", tool.MinVersion, tool.Name, err), "", "")
	}
	if ok, errs := constraint.Validate(version); !ok {
		msg := fmt.Sprintf("%s %s does not satisfy %s", tool.Name, version, tool.MinVersion)
		if len(errs) > 0 {
			msg = fmt.Sprintf("%s: %v", msg, errs[0])
		}
		return check, oerrors.NewPreconditionError(tool.Name, msg, tool.Hint)
	}

	return check, nil
}

// ParseVersion extracts a semantic version from tool output such as
// "Docker version 24.0.7, build afdd53b".
func ParseVersion(out string) (*semver.Version, error) {
	m := versionPattern.FindStringSubmatch(out)
	if m == nil {
		return nil, fmt.Errorf("no version found in %q", out)
	}
	return semver.NewVersion(m[1])
}
