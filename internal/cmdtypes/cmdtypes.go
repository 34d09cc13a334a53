// Package cmdtypes provides shared types for the cmd package and its sub-packages.
// It is separate from internal/cmd to avoid import cycles between internal/cmd
// and its sub-packages (internal/cmd/scaffold, internal/cmd/config).
package cmdtypes

import (
	"github.com/myblog/djscaffold/internal/config"
	oerrors "github.com/myblog/djscaffold/internal/errors"
	"github.com/myblog/djscaffold/internal/runner"
)

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed explicitly into every sub-command
// constructor.
type GlobalConfig struct {
	// Config is the loaded configuration with defaults applied. It is nil
	// when loading failed; see ConfigErr.
	Config *config.Config

	// ConfigErr is the load or validation error, if any. Commands that do
	// not need a configuration ignore it.
	ConfigErr error

	// ConfigPath is the resolved --config path and where it came from.
	ConfigPath   string
	ConfigSource config.ConfigSource

	Verbose bool

	// Runner executes external commands. Tests replace it with a fake.
	Runner runner.Runner
}

// RequireConfig returns the loaded configuration or the error that
// prevented loading it.
func (g *GlobalConfig) RequireConfig() (*config.Config, error) {
	if g.ConfigErr != nil {
		return nil, g.ConfigErr
	}
	if g.Config == nil {
		return config.DefaultConfig(), nil
	}
	return g.Config, nil
}

// ExitError is a type alias to internal/errors.ExitError.
type ExitError = oerrors.ExitError
