package scaffold

import (
	"github.com/spf13/cobra"

	"github.com/myblog/djscaffold/internal/cmdtypes"
	"github.com/myblog/djscaffold/internal/cmdutil"
	"github.com/myblog/djscaffold/internal/orchestrator"
)

// NewSetupCmd creates the setup command.
func NewSetupCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var (
		dirFlag        string
		templatesFlag  string
		yesFlag        bool
		skipDockerFlag bool
	)

	c := &cobra.Command{
		Use:   "setup",
		Short: "Create the project and run it with docker-compose",
		Long: `Create the Django project from the template directory and start it with
docker-compose.

Stages:
  CHECK_DEPS             docker and docker-compose are installed
  CREATE_STRUCTURE       project directory tree (asks before replacing)
  COPY_DOCKER_FILES      container templates and .env
  COPY_APP_FILES         settings.py and urls.py, when present
  WRITE_BOOTSTRAP_FILES  manage.py and wsgi.py
  BUILD_IMAGES           docker-compose build
  START_DATASTORES       docker-compose up -d <datastores>
  WAIT_DATASTORES        probe datastores until ready
  RUN_MIGRATIONS         manage.py migrate (failure is a warning)
  START_ALL_SERVICES     docker-compose up -d
  REPORT                 endpoints and next steps

Examples:
  # Full setup
  djscaffold setup

  # Generate files only
  djscaffold setup --skip-docker

  # Use another template directory and replace without asking
  djscaffold setup --templates ../docker-setup --yes`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runSetup(c, gc, setupFlags{
				dir:        dirFlag,
				templates:  templatesFlag,
				yes:        yesFlag,
				skipDocker: skipDockerFlag,
			})
		},
	}

	c.Flags().StringVarP(&dirFlag, "dir", "d", "", "Project directory (default: project.targetDir)")
	c.Flags().StringVarP(&templatesFlag, "templates", "t", "", "Template source directory (default: templates.dir)")
	c.Flags().BoolVarP(&yesFlag, "yes", "y", false, "Remove an existing project directory without asking")
	c.Flags().BoolVar(&skipDockerFlag, "skip-docker", false, "Only generate files; do not build or start containers")

	return c
}

type setupFlags struct {
	dir        string
	templates  string
	yes        bool
	skipDocker bool
}

func runSetup(c *cobra.Command, gc *cmdtypes.GlobalConfig, flags setupFlags) error {
	cfg, err := gc.RequireConfig()
	if err != nil {
		return cmdutil.Fail("invalid configuration", err)
	}

	base, name, err := cmdutil.ResolveTarget(cfg, flags.dir)
	if err != nil {
		return cmdutil.Fail("resolving project directory", err)
	}

	opts := orchestrator.OptionsFromConfig(cfg, name)
	opts.SkipDocker = flags.skipDocker
	if flags.templates != "" {
		opts.TemplateDir = flags.templates
	}

	out := c.OutOrStdout()
	o := orchestrator.New(
		cmdutil.NewReporter(gc, cfg, out),
		cmdutil.Confirmer(flags.yes, c.InOrStdin(), out),
		out,
		opts,
	)

	if _, err := o.Run(c.Context(), base); err != nil {
		return cmdutil.Fail("setup failed", err)
	}
	return nil
}
