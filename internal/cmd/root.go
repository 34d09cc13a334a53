// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/myblog/djscaffold/internal/cmd/config"
	"github.com/myblog/djscaffold/internal/cmd/scaffold"
	"github.com/myblog/djscaffold/internal/cmdtypes"
	cfgpkg "github.com/myblog/djscaffold/internal/config"
	"github.com/myblog/djscaffold/internal/output"
	"github.com/myblog/djscaffold/internal/runner"
)

// NewRootCmd creates the root command for the djscaffold CLI.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&cmdtypes.GlobalConfig{Runner: runner.NewExecRunner()})
}

func newRootCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var (
		configFlag     string
		verboseFlag    bool
		timestampsFlag bool
	)

	rootCmd := &cobra.Command{
		Use:   "djscaffold",
		Short: "Scaffold and run a Django REST backend",
		Long: `djscaffold generates a Django REST Framework backend skeleton and
optionally builds and starts it with docker-compose.

Commands:
  provision   Create a local virtualenv project with django-admin
  structure   Create the project directory tree only
  setup       Create the project and run it with docker-compose`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			return initializeGlobals(c, gc, configFlag, verboseFlag, timestampsFlag)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (env: DJSCAFFOLD_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(
		scaffold.NewProvisionCmd(gc),
		scaffold.NewStructureCmd(gc),
		scaffold.NewSetupCmd(gc),
		config.NewConfigCmd(gc),
		NewVersionCmd(gc),
	)

	return rootCmd
}

// initializeGlobals loads configuration into gc and sets up logging.
func initializeGlobals(c *cobra.Command, gc *cmdtypes.GlobalConfig, configFlag string, verbose, timestamps bool) error {
	gc.Verbose = verbose

	resolved, err := cfgpkg.ResolveConfigPath(configFlag)
	if err != nil {
		return err
	}
	gc.ConfigPath = resolved.Path
	gc.ConfigSource = resolved.Source

	// Commands that do not need a configuration still work when it is broken.
	cfg, err := cfgpkg.NewLoader().LoadWithDefaults(resolved.Path)
	gc.Config = cfg
	gc.ConfigErr = err

	logCfg := output.LogConfig{Verbose: verbose}
	if c.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(timestamps)
	} else if cfg != nil && cfg.Log.Timestamps != nil {
		logCfg.Timestamps = cfg.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	if err != nil {
		output.Debug("config load error", "path", resolved.Path, "error", err)
	}
	output.Debug("initializing CLI",
		"config", resolved.Path,
		"source", resolved.Source,
		"shadowed", len(resolved.Shadowed),
	)

	return nil
}
