package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/myblog/djscaffold/internal/cmdtypes"
	"github.com/myblog/djscaffold/internal/config"
	"github.com/myblog/djscaffold/internal/output"
	"github.com/myblog/djscaffold/internal/runner"
	"github.com/myblog/djscaffold/internal/toolcheck"
	"github.com/myblog/djscaffold/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show djscaffold version information.

Displays:
  - djscaffold version, commit, and build date
  - Versions of the external tools setup depends on`,
		RunE: func(c *cobra.Command, _ []string) error {
			return runVersion(c, gc)
		},
	}
}

func runVersion(c *cobra.Command, gc *cmdtypes.GlobalConfig) error {
	out := c.OutOrStdout()
	fmt.Fprintln(out, version.GetInfo().String())

	cfg := gc.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	r := gc.Runner
	if r == nil {
		r = runner.NewExecRunner()
	}

	ctx := c.Context()
	fmt.Fprintln(out, "\nTools:")
	for _, t := range cfg.Tools {
		tool := toolcheck.Tool{Name: t.Name, Command: t.Command, MinVersion: t.MinVersion, Hint: t.Hint}
		checks, err := toolcheck.Run(ctx, r, []toolcheck.Tool{tool})
		switch {
		case err != nil && ctx.Err() != nil:
			return ctx.Err()
		case err != nil:
			fmt.Fprintf(out, "  %-16s %s\n", t.Name, output.StatusStyle(output.StatusFailed).Render("not found or unsupported"))
		case checks[0].Version != nil:
			fmt.Fprintf(out, "  %-16s %s\n", t.Name, checks[0].Version.String())
		default:
			fmt.Fprintf(out, "  %-16s %s\n", t.Name, checks[0].Output)
		}
	}
	return nil
}
