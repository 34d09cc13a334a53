package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/myblog/djscaffold/internal/cmdtypes"
	"github.com/myblog/djscaffold/internal/cmdutil"
	"github.com/myblog/djscaffold/internal/config"
)

// NewConfigShowCmd creates the config show command.
func NewConfigShowCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the effective configuration as YAML: the config file merged with
DJSCAFFOLD_* environment variables and defaults.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runShow(c, gc)
		},
	}
}

func runShow(c *cobra.Command, gc *cmdtypes.GlobalConfig) error {
	cfg, err := gc.RequireConfig()
	if err != nil {
		return cmdutil.Fail("invalid configuration", err)
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}

	out := c.OutOrStdout()
	if gc.ConfigPath != "" {
		fmt.Fprintf(out, "# source: %s (%s)\n", gc.ConfigPath, gc.ConfigSource)
	}
	_, err = out.Write(data)
	return err
}
