package compose

import (
	"github.com/myblog/djscaffold/internal/runner"
)

// Compose builds compose command lines run from a project directory.
type Compose struct {
	// Binary is the compose invocation, e.g. ["docker-compose"] or
	// ["docker", "compose"].
	Binary []string

	// File is passed with -f unless it is the default manifest.
	File string

	// Dir is the project directory commands run in.
	Dir string
}

// New creates a Compose for the project directory dir.
func New(binary []string, file, dir string) *Compose {
	if len(binary) == 0 {
		binary = []string{"docker-compose"}
	}
	return &Compose{Binary: binary, File: file, Dir: dir}
}

// Build builds all service images.
func (c *Compose) Build() runner.Command {
	return c.command("Building container images", "build")
}

// Up starts services detached. No services means all of them.
func (c *Compose) Up(description string, services ...string) runner.Command {
	return c.command(description, append([]string{"up", "-d"}, services...)...)
}

// Run runs a one-off container for service and removes it afterwards.
func (c *Compose) Run(description, service string, args ...string) runner.Command {
	return c.command(description, append([]string{"run", "--rm", service}, args...)...)
}

// Migrate applies Django migrations in a one-off backend container.
func (c *Compose) Migrate(service string) runner.Command {
	return c.Run("Applying migrations", service, "python", "manage.py", "migrate")
}

// Exec runs args inside the running service container without a TTY.
func (c *Compose) Exec(description, service string, args ...string) runner.Command {
	return c.command(description, append([]string{"exec", "-T", service}, args...)...)
}

func (c *Compose) command(description string, args ...string) runner.Command {
	argv := append([]string{}, c.Binary[1:]...)
	if c.File != "" && c.File != DefaultFile {
		argv = append(argv, "-f", c.File)
	}
	argv = append(argv, args...)

	return runner.Command{
		Name:        c.Binary[0],
		Args:        argv,
		Dir:         c.Dir,
		Description: description,
	}
}
