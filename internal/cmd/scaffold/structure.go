package scaffold

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/myblog/djscaffold/internal/cmdtypes"
	"github.com/myblog/djscaffold/internal/cmdutil"
	"github.com/myblog/djscaffold/internal/compose"
	"github.com/myblog/djscaffold/internal/config"
	"github.com/myblog/djscaffold/internal/layout"
	"github.com/myblog/djscaffold/internal/output"
)

// NewStructureCmd creates the structure command.
func NewStructureCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var dirFlag string

	c := &cobra.Command{
		Use:   "structure",
		Short: "Create the project directory tree",
		Long: `Create the Django project directory tree, package markers and manage.py.

The command is idempotent: existing directories and files other than
manage.py are left as they are. No external commands are run.

Examples:
  djscaffold structure
  djscaffold structure --dir ./myblog_backend`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runStructure(c, gc, dirFlag)
		},
	}

	c.Flags().StringVarP(&dirFlag, "dir", "d", "", "Project directory (default: project.targetDir)")

	return c
}

func runStructure(c *cobra.Command, gc *cmdtypes.GlobalConfig, dir string) error {
	cfg, err := gc.RequireConfig()
	if err != nil {
		return cmdutil.Fail("invalid configuration", err)
	}

	base, name, err := cmdutil.ResolveTarget(cfg, dir)
	if err != nil {
		return cmdutil.Fail("resolving project directory", err)
	}

	ws, err := base.Ensure(name)
	if err != nil {
		return cmdutil.Fail("creating project directory", err)
	}

	l := layout.New(cfg.Project.Name, cfg.Project.App)
	report, err := l.Build(ws.FS)
	if err != nil {
		return cmdutil.Fail("creating project structure", err)
	}

	tree := make(map[string]string, len(report.Directories)+len(report.Files))
	described := l.Tree()
	for _, d := range report.Directories {
		tree[d+"/"] = described[d+"/"]
	}
	for _, f := range report.Files {
		tree[f] = described[f]
	}

	out := c.OutOrStdout()
	fmt.Fprintln(out, output.FormatCheckmark("Project structure ready in "+output.StyleNoun.Render(ws.Root)))
	fmt.Fprintln(out)
	fmt.Fprint(out, output.RenderFileTree(name, tree))

	fmt.Fprintln(out, "\nNext steps:")
	for i, step := range structureNextSteps(cfg, ws.Root) {
		fmt.Fprintf(out, "  %d. %s\n", i+1, step)
	}
	return nil
}

// structureNextSteps lists the compose commands that bring the bare tree up.
func structureNextSteps(cfg *config.Config, root string) []string {
	dc := compose.New(cfg.Compose.Command, cfg.Compose.File, root)
	backend := cfg.Compose.Backend

	var datastores []string
	for _, d := range cfg.Compose.Datastores {
		datastores = append(datastores, d.Service)
	}

	project := cfg.Project.Name
	steps := []string{fmt.Sprintf("Add %s/settings.py and %s/urls.py", project, project)}
	if len(datastores) > 0 {
		steps = append(steps, dc.Up("", datastores...).String())
	}
	return append(steps,
		dc.Migrate(backend).String(),
		dc.Run("", backend, "python", "manage.py", "createsuperuser").String(),
		dc.Up("").String(),
	)
}
