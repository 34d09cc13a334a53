// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"time"

	"github.com/Masterminds/semver/v3"

	oerrors "github.com/myblog/djscaffold/internal/errors"
)

// ProjectConfig names the generated project and where it is written.
type ProjectConfig struct {
	// TargetDir is the project directory, relative to the working directory
	// unless absolute. Env: DJSCAFFOLD_PROJECT_TARGETDIR, Default: myblog_backend
	TargetDir string `json:"targetDir"`

	// Name is the Django project package. Default: myblog
	Name string `json:"name"`

	// App is the Django application package. Default: blog
	App string `json:"app"`
}

// FileMapping copies From (relative to the source) to To (relative to the target).
type FileMapping struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// TemplatesConfig describes the template source tree.
type TemplatesConfig struct {
	// Dir is the template source directory. Default: docker-setup
	Dir string `json:"dir"`

	// Files are copied verbatim into the project root.
	Files []string `json:"files,omitempty"`

	// EnvTemplate is copied to EnvFile after Files are propagated.
	EnvTemplate string `json:"envTemplate"`
	EnvFile     string `json:"envFile"`

	// AppDir is an optional subdirectory of Dir with application files.
	AppDir string `json:"appDir"`

	// AppFiles maps files inside AppDir to destinations in the project.
	// Destinations may reference the project package as {{.Project}}.
	AppFiles []FileMapping `json:"appFiles,omitempty"`
}

// PythonConfig configures the local virtualenv provisioner.
type PythonConfig struct {
	// Binary is the interpreter used to create the virtualenv. Default: python3
	Binary string `json:"binary"`

	// VenvDir is the virtualenv directory inside the project. Default: venv
	VenvDir string `json:"venvDir"`

	// Packages are installed one by one, in order.
	Packages []string `json:"packages,omitempty"`
}

// DatastoreConfig names a compose service started ahead of migrations.
type DatastoreConfig struct {
	// Service is the compose service name.
	Service string `json:"service"`

	// Probe is executed inside the service container and must exit 0 once ready.
	Probe []string `json:"probe,omitempty"`
}

// ComposeConfig configures the container orchestration CLI.
type ComposeConfig struct {
	// Command is the compose invocation. Default: [docker-compose]
	Command []string `json:"command,omitempty"`

	// Backend is the service migrations run in. Default: backend
	Backend string `json:"backend"`

	// File is the compose manifest inside the project. Default: docker-compose.yml
	File string `json:"file"`

	// Datastores are started and probed before migrations.
	Datastores []DatastoreConfig `json:"datastores,omitempty"`
}

// ReadinessConfig bounds the datastore readiness poll.
type ReadinessConfig struct {
	// Interval between probes. Default: 2s
	Interval string `json:"interval"`

	// Timeout for all datastores to become ready. Default: 60s
	Timeout string `json:"timeout"`
}

// ToolConfig describes an external tool checked before setup.
type ToolConfig struct {
	// Name is the human-readable tool name.
	Name string `json:"name"`

	// Command prints the tool version and exits 0.
	Command []string `json:"command,omitempty"`

	// MinVersion is an optional semver constraint (e.g. ">= 20.10").
	MinVersion string `json:"minVersion,omitempty"`

	// Hint is shown when the tool is missing.
	Hint string `json:"hint,omitempty"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `json:"timestamps,omitempty"`
}

// Config represents the djscaffold configuration.
// Loaded from ~/.djscaffold/config.yaml, overridden by DJSCAFFOLD_* env vars.
type Config struct {
	Project   ProjectConfig   `json:"project"`
	Templates TemplatesConfig `json:"templates"`
	Python    PythonConfig    `json:"python"`
	Compose   ComposeConfig   `json:"compose"`
	Readiness ReadinessConfig `json:"readiness"`
	Tools     []ToolConfig    `json:"tools,omitempty"`

	// Endpoints are printed after a successful setup. Never probed.
	Endpoints []string `json:"endpoints,omitempty"`

	// CommandTimeout bounds each external command. Empty means no timeout.
	CommandTimeout string `json:"commandTimeout,omitempty"`

	Log LogConfig `json:"log,omitempty"`
}

// DefaultConfig returns a Config with all default values populated.
func DefaultConfig() *Config {
	return &Config{
		Project: ProjectConfig{
			TargetDir: "myblog_backend",
			Name:      "myblog",
			App:       "blog",
		},
		Templates: TemplatesConfig{
			Dir: "docker-setup",
			Files: []string{
				"Dockerfile",
				"docker-compose.yml",
				"docker-compose.prod.yml",
				"requirements.txt",
				"nginx.conf",
				".env.template",
				"start.sh",
			},
			EnvTemplate: ".env.template",
			EnvFile:     ".env",
			AppDir:      "django_files",
			AppFiles: []FileMapping{
				{From: "settings.py", To: "{{.Project}}/settings.py"},
				{From: "urls.py", To: "{{.Project}}/urls.py"},
			},
		},
		Python: PythonConfig{
			Binary:  "python3",
			VenvDir: "venv",
			Packages: []string{
				"django>=4.2.0",
				"djangorestframework>=3.14.0",
				"djangorestframework-simplejwt>=5.3.0",
				"django-cors-headers>=4.3.0",
				"pillow>=10.0.0",
				"python-decouple>=3.8",
			},
		},
		Compose: ComposeConfig{
			Command: []string{"docker-compose"},
			Backend: "backend",
			File:    "docker-compose.yml",
			Datastores: []DatastoreConfig{
				{Service: "postgres", Probe: []string{"pg_isready", "-U", "postgres"}},
				{Service: "redis", Probe: []string{"redis-cli", "ping"}},
			},
		},
		Readiness: ReadinessConfig{
			Interval: "2s",
			Timeout:  "60s",
		},
		Tools: []ToolConfig{
			{
				Name:       "docker",
				Command:    []string{"docker", "--version"},
				MinVersion: ">= 20.10",
				Hint:       "Install Docker Desktop: https://www.docker.com/products/docker-desktop/",
			},
			{
				Name:    "docker-compose",
				Command: []string{"docker-compose", "--version"},
				Hint:    "Install Docker Compose: https://docs.docker.com/compose/install/",
			},
		},
		Endpoints: []string{
			"API: http://localhost:8000/api/",
			"Admin: http://localhost:8000/admin/",
			"Swagger: http://localhost:8000/api/swagger/",
		},
	}
}

// WithDefaults fills empty fields from DefaultConfig and returns c.
func (c *Config) WithDefaults() *Config {
	d := DefaultConfig()

	if c.Project.TargetDir == "" {
		c.Project.TargetDir = d.Project.TargetDir
	}
	if c.Project.Name == "" {
		c.Project.Name = d.Project.Name
	}
	if c.Project.App == "" {
		c.Project.App = d.Project.App
	}
	if c.Templates.Dir == "" {
		c.Templates.Dir = d.Templates.Dir
	}
	if len(c.Templates.Files) == 0 {
		c.Templates.Files = d.Templates.Files
	}
	if c.Templates.EnvTemplate == "" {
		c.Templates.EnvTemplate = d.Templates.EnvTemplate
	}
	if c.Templates.EnvFile == "" {
		c.Templates.EnvFile = d.Templates.EnvFile
	}
	if c.Templates.AppDir == "" {
		c.Templates.AppDir = d.Templates.AppDir
	}
	if len(c.Templates.AppFiles) == 0 {
		c.Templates.AppFiles = d.Templates.AppFiles
	}
	if c.Python.Binary == "" {
		c.Python.Binary = d.Python.Binary
	}
	if c.Python.VenvDir == "" {
		c.Python.VenvDir = d.Python.VenvDir
	}
	if len(c.Python.Packages) == 0 {
		c.Python.Packages = d.Python.Packages
	}
	if len(c.Compose.Command) == 0 {
		c.Compose.Command = d.Compose.Command
	}
	if c.Compose.Backend == "" {
		c.Compose.Backend = d.Compose.Backend
	}
	if c.Compose.File == "" {
		c.Compose.File = d.Compose.File
	}
	if len(c.Compose.Datastores) == 0 {
		c.Compose.Datastores = d.Compose.Datastores
	}
	if c.Readiness.Interval == "" {
		c.Readiness.Interval = d.Readiness.Interval
	}
	if c.Readiness.Timeout == "" {
		c.Readiness.Timeout = d.Readiness.Timeout
	}
	if len(c.Tools) == 0 {
		c.Tools = d.Tools
	}
	if len(c.Endpoints) == 0 {
		c.Endpoints = d.Endpoints
	}

	return c
}

// ReadinessInterval returns the parsed probe interval.
func (c *Config) ReadinessInterval() time.Duration {
	d, _ := time.ParseDuration(c.Readiness.Interval)
	return d
}

// ReadinessTimeout returns the parsed readiness timeout.
func (c *Config) ReadinessTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Readiness.Timeout)
	return d
}

// CommandTimeoutDuration returns the per-command timeout, zero when unset.
func (c *Config) CommandTimeoutDuration() time.Duration {
	if c.CommandTimeout == "" {
		return 0
	}
	d, _ := time.ParseDuration(c.CommandTimeout)
	return d
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks the configuration for values the pipelines cannot use.
func (c *Config) Validate() error {
	if !identifierPattern.MatchString(c.Project.Name) {
		return oerrors.NewValidationError(
			fmt.Sprintf("project name %q is not a valid Python package name", c.Project.Name),
			"project.name", "Use letters, digits and underscores, starting with a letter.")
	}
	if !identifierPattern.MatchString(c.Project.App) {
		return oerrors.NewValidationError(
			fmt.Sprintf("app name %q is not a valid Python package name", c.Project.App),
			"project.app", "Use letters, digits and underscores, starting with a letter.")
	}
	if c.Project.Name == c.Project.App {
		return oerrors.NewValidationError(
			fmt.Sprintf("project and app share the name %q", c.Project.Name),
			"project.app", "Django requires distinct project and app packages.")
	}
	if c.Project.TargetDir == "" || filepath.Clean(c.Project.TargetDir) == "." {
		return oerrors.NewValidationError("target directory must name a subdirectory",
			"project.targetDir", "Set project.targetDir to e.g. myblog_backend.")
	}
	if len(c.Compose.Command) == 0 {
		return oerrors.NewValidationError("compose command is empty", "compose.command",
			"Use [docker-compose] or [docker, compose].")
	}

	for key, value := range map[string]string{
		"readiness.interval": c.Readiness.Interval,
		"readiness.timeout":  c.Readiness.Timeout,
	} {
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return oerrors.NewValidationError(
				fmt.Sprintf("invalid duration %q", value), key, "Use Go duration syntax, e.g. 2s or 1m30s.")
		}
	}
	if c.CommandTimeout != "" {
		if d, err := time.ParseDuration(c.CommandTimeout); err != nil || d < 0 {
			return oerrors.NewValidationError(
				fmt.Sprintf("invalid duration %q", c.CommandTimeout), "commandTimeout",
				"Use Go duration syntax, or leave empty for no timeout.")
		}
	}

	for _, ds := range c.Compose.Datastores {
		if ds.Service == "" {
			return oerrors.NewValidationError("datastore without a service name", "compose.datastores", "")
		}
	}
	for _, tool := range c.Tools {
		if len(tool.Command) == 0 {
			return oerrors.NewValidationError(
				fmt.Sprintf("tool %q has no version command", tool.Name), "tools", "")
		}
		if tool.MinVersion != "" {
			if _, err := semver.NewConstraint(tool.MinVersion); err != nil {
				return oerrors.NewValidationError(
					fmt.Sprintf("tool %q: invalid version constraint %q", tool.Name, tool.MinVersion),
					"tools", "Use a semver constraint such as \">= 20.10\".")
			}
		}
	}

	return nil
}
