// Package scaffold provides the project creation commands: provision,
// structure and setup.
package scaffold

import (
	"github.com/spf13/cobra"

	"github.com/myblog/djscaffold/internal/cmdtypes"
	"github.com/myblog/djscaffold/internal/cmdutil"
	"github.com/myblog/djscaffold/internal/provision"
)

// NewProvisionCmd creates the provision command.
func NewProvisionCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var (
		dirFlag string
		yesFlag bool
	)

	c := &cobra.Command{
		Use:   "provision",
		Short: "Create a Django project in a local virtualenv",
		Long: `Create a Django project in a local Python virtual environment.

Steps:
  1. python -m venv venv
  2. pip install --upgrade pip
  3. pip install each configured package
  4. django-admin startproject <project> .
  5. python manage.py startapp <app>

An existing project directory is removed only after confirmation.

Examples:
  # Provision into ./myblog_backend
  djscaffold provision

  # Provision into another directory without prompting
  djscaffold provision --dir ../shop_backend --yes`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runProvision(c, gc, dirFlag, yesFlag)
		},
	}

	c.Flags().StringVarP(&dirFlag, "dir", "d", "", "Project directory (default: project.targetDir)")
	c.Flags().BoolVarP(&yesFlag, "yes", "y", false, "Remove an existing project directory without asking")

	return c
}

func runProvision(c *cobra.Command, gc *cmdtypes.GlobalConfig, dir string, yes bool) error {
	cfg, err := gc.RequireConfig()
	if err != nil {
		return cmdutil.Fail("invalid configuration", err)
	}

	base, name, err := cmdutil.ResolveTarget(cfg, dir)
	if err != nil {
		return cmdutil.Fail("resolving project directory", err)
	}

	out := c.OutOrStdout()
	p := provision.New(cmdutil.NewReporter(gc, cfg, out), provision.Options{
		Python:   cfg.Python.Binary,
		VenvDir:  cfg.Python.VenvDir,
		Packages: cfg.Python.Packages,
		Project:  cfg.Project.Name,
		App:      cfg.Project.App,
	}, out)

	ws, err := p.Run(c.Context(), base, name, cmdutil.Confirmer(yes, c.InOrStdin(), out))
	if err != nil {
		return cmdutil.Fail("provisioning failed", err)
	}

	p.PrintNextSteps(ws)
	return nil
}
