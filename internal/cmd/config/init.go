package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/myblog/djscaffold/internal/cmdtypes"
	"github.com/myblog/djscaffold/internal/cmdutil"
	"github.com/myblog/djscaffold/internal/config"
	oerrors "github.com/myblog/djscaffold/internal/errors"
)

// NewConfigInitCmd writes the default config to the resolved config path.
func NewConfigInitCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default values",
		Long: `Write a djscaffold config file holding every default value.

The target is the same file the other commands read: --config, then
$DJSCAFFOLD_CONFIG, then ~/.djscaffold/config.yaml. An existing file is
left alone unless --force is given.`,
		Example: `  djscaffold config init
  djscaffold config init --force`,
		RunE: func(c *cobra.Command, _ []string) error {
			return runInit(c, gc, force)
		},
	}
	c.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config file")
	return c
}

func runInit(c *cobra.Command, gc *cmdtypes.GlobalConfig, force bool) error {
	const failMsg = "config init failed"

	resolved, err := config.ResolveConfigPath(gc.ConfigPath)
	if err != nil {
		return cmdutil.Fail(failMsg, err)
	}
	path, err := config.ExpandPath(resolved.Path)
	if err != nil {
		return cmdutil.Fail(failMsg, err)
	}

	exists, err := config.ConfigFileExists(path)
	if err != nil {
		return cmdutil.Fail(failMsg, err)
	}
	if exists && !force {
		return cmdutil.Fail(failMsg, oerrors.NewValidationError(
			"configuration already exists", path,
			"Use --force to overwrite it."))
	}

	data, err := config.DefaultConfigFile()
	if err != nil {
		return cmdutil.Fail(failMsg, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return cmdutil.Fail(failMsg, oerrors.WrapFS(err, "creating "+filepath.Dir(path)))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return cmdutil.Fail(failMsg, oerrors.WrapFS(err, "writing "+path))
	}

	fmt.Fprintf(c.OutOrStdout(), "Config file created: %s\n", path)
	return nil
}
