package orchestrator

import (
	"github.com/myblog/djscaffold/internal/config"
	"github.com/myblog/djscaffold/internal/layout"
	"github.com/myblog/djscaffold/internal/propagate"
	"github.com/myblog/djscaffold/internal/readiness"
	"github.com/myblog/djscaffold/internal/toolcheck"
)

// Datastore is a compose service started and probed before migrations.
type Datastore struct {
	Service string

	// Probe runs inside the container. Empty falls back to the service's
	// compose healthcheck; without one the service is not probed.
	Probe []string
}

// Options configures a setup run.
type Options struct {
	// TargetDir is the project directory name inside the base directory.
	TargetDir string

	Layout layout.Layout

	// TemplateDir is the host template source directory.
	TemplateDir   string
	TemplateFiles []string
	EnvTemplate   string
	EnvFile       string
	AppDir        string
	AppFiles      []propagate.Mapping

	ComposeCommand []string
	ComposeFile    string
	Backend        string
	Datastores     []Datastore
	Readiness      readiness.Options

	Tools     []toolcheck.Tool
	Endpoints []string

	// SkipDocker stops after the bootstrap files are written.
	SkipDocker bool
}

// OptionsFromConfig maps the loaded configuration onto Options.
// targetDir is the project directory name relative to the base directory.
func OptionsFromConfig(cfg *config.Config, targetDir string) Options {
	opts := Options{
		TargetDir:      targetDir,
		Layout:         layout.New(cfg.Project.Name, cfg.Project.App),
		TemplateDir:    cfg.Templates.Dir,
		TemplateFiles:  cfg.Templates.Files,
		EnvTemplate:    cfg.Templates.EnvTemplate,
		EnvFile:        cfg.Templates.EnvFile,
		AppDir:         cfg.Templates.AppDir,
		ComposeCommand: cfg.Compose.Command,
		ComposeFile:    cfg.Compose.File,
		Backend:        cfg.Compose.Backend,
		Readiness: readiness.Options{
			Interval: cfg.ReadinessInterval(),
			Timeout:  cfg.ReadinessTimeout(),
		},
		Endpoints: cfg.Endpoints,
	}

	for _, m := range cfg.Templates.AppFiles {
		opts.AppFiles = append(opts.AppFiles, propagate.Mapping{From: m.From, To: m.To})
	}
	for _, d := range cfg.Compose.Datastores {
		opts.Datastores = append(opts.Datastores, Datastore{Service: d.Service, Probe: d.Probe})
	}
	for _, t := range cfg.Tools {
		opts.Tools = append(opts.Tools, toolcheck.Tool{
			Name:       t.Name,
			Command:    t.Command,
			MinVersion: t.MinVersion,
			Hint:       t.Hint,
		})
	}

	return opts
}

// datastoreServices returns the datastore service names in order.
func (o Options) datastoreServices() []string {
	names := make([]string, len(o.Datastores))
	for i, d := range o.Datastores {
		names[i] = d.Service
	}
	return names
}
