// Package config holds the "config" command group: writing a starter
// config file and showing the effective one.
package config

import (
	"github.com/spf13/cobra"

	"github.com/myblog/djscaffold/internal/cmdtypes"
)

func NewConfigCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Manage the djscaffold config file",
		Long: `Manage the djscaffold config file.

The file is looked up at --config, then $DJSCAFFOLD_CONFIG, then
~/.djscaffold/config.yaml. DJSCAFFOLD_* variables override its values.`,
		Example: `  djscaffold config init
  djscaffold config show --config ./djscaffold.yaml`,
	}
	c.AddCommand(NewConfigInitCmd(gc), NewConfigShowCmd(gc))
	return c
}
