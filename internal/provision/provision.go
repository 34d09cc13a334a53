// Package provision creates a local Django project in a Python virtualenv.
package provision

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"

	oerrors "github.com/myblog/djscaffold/internal/errors"
	"github.com/myblog/djscaffold/internal/output"
	"github.com/myblog/djscaffold/internal/prompt"
	"github.com/myblog/djscaffold/internal/runner"
	"github.com/myblog/djscaffold/internal/workspace"
)

// Options configures a provisioning run.
type Options struct {
	// Python is the interpreter used to create the virtualenv.
	Python string

	// VenvDir is the virtualenv directory inside the project.
	VenvDir string

	// Packages are installed one pip invocation each, in order.
	Packages []string

	Project string
	App     string

	// GOOS selects the virtualenv layout. Empty means runtime.GOOS.
	GOOS string
}

func (o Options) goos() string {
	if o.GOOS == "" {
		return runtime.GOOS
	}
	return o.GOOS
}

// Provisioner runs the virtualenv pipeline.
type Provisioner struct {
	reporter *runner.Reporter
	opts     Options
	out      io.Writer
}

// New creates a Provisioner writing its report to out.
func New(reporter *runner.Reporter, opts Options, out io.Writer) *Provisioner {
	return &Provisioner{reporter: reporter, opts: opts, out: out}
}

// CheckPython verifies the interpreter runs and returns its version line.
func (p *Provisioner) CheckPython(ctx context.Context) (string, error) {
	cmd := runner.Command{Name: p.opts.Python, Args: []string{"--version"}}
	res, err := p.reporter.Runner().Run(ctx, cmd)
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if err != nil || !res.Success() {
		return "", oerrors.WithContext(oerrors.NewPreconditionError(p.opts.Python,
			fmt.Sprintf("%s was not found or failed to run", p.opts.Python),
			"Install Python 3.8+ or set python.binary in the config file."),
			res.OutputContext())
	}

	// Python 2 prints its version on stderr.
	version := strings.TrimSpace(res.Stdout)
	if version == "" {
		version = strings.TrimSpace(res.Stderr)
	}
	return version, nil
}

// Run checks the interpreter, prepares the project directory and runs every
// step in order. The first failing step aborts the run; nothing is rolled
// back.
func (p *Provisioner) Run(ctx context.Context, base *workspace.Base, name string, confirm prompt.Confirmer) (*workspace.Workspace, error) {
	version, err := p.CheckPython(ctx)
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(p.out, output.FormatCheckmark("Python found: "+version))

	ws, err := base.Prepare(name, confirm)
	if err != nil {
		return nil, err
	}

	for _, cmd := range p.Steps(ws) {
		if _, err := p.reporter.Step(ctx, cmd); err != nil {
			return ws, runner.StepError(err)
		}
	}

	return ws, nil
}

// Steps returns the commands Run executes inside ws.
func (p *Provisioner) Steps(ws *workspace.Workspace) []runner.Command {
	pip := p.venvBin(ws, "pip")

	steps := []runner.Command{
		{
			Name:        p.opts.Python,
			Args:        []string{"-m", "venv", p.opts.VenvDir},
			Description: "Creating virtual environment",
		},
		{
			Name:        pip,
			Args:        []string{"install", "--upgrade", "pip"},
			Description: "Upgrading pip",
		},
	}

	for _, pkg := range p.opts.Packages {
		steps = append(steps, runner.Command{
			Name:        pip,
			Args:        []string{"install", pkg},
			Description: "Installing " + pkg,
		})
	}

	steps = append(steps,
		runner.Command{
			Name:        p.venvBin(ws, "django-admin"),
			Args:        []string{"startproject", p.opts.Project, "."},
			Description: "Creating Django project " + p.opts.Project,
		},
		runner.Command{
			Name:        p.venvBin(ws, "python"),
			Args:        []string{"manage.py", "startapp", p.opts.App},
			Description: "Creating application " + p.opts.App,
		},
	)

	for i := range steps {
		steps[i].Dir = ws.Root
	}
	return steps
}

// NextSteps returns the follow-up instructions shown after a successful run.
func (p *Provisioner) NextSteps(ws *workspace.Workspace) []string {
	activate := "source " + filepath.ToSlash(filepath.Join(p.opts.VenvDir, "bin", "activate"))
	if p.opts.goos() == "windows" {
		activate = p.opts.VenvDir + `\Scripts\activate`
	}
	return []string{
		"cd " + ws.Root,
		activate,
		"Copy your settings into " + p.opts.Project + "/settings.py",
		"python manage.py migrate",
		"python manage.py createsuperuser",
		"python manage.py runserver 8000",
	}
}

// PrintNextSteps writes the numbered follow-up instructions.
func (p *Provisioner) PrintNextSteps(ws *workspace.Workspace) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, output.FormatCheckmark(output.StyleSummary.Render("Backend created")))
	fmt.Fprintln(p.out, "\nNext steps:")
	for i, step := range p.NextSteps(ws) {
		fmt.Fprintf(p.out, "  %d. %s\n", i+1, step)
	}
}

func (p *Provisioner) venvBin(ws *workspace.Workspace, name string) string {
	if p.opts.goos() == "windows" {
		return filepath.Join(ws.Root, p.opts.VenvDir, "Scripts", name)
	}
	return filepath.Join(ws.Root, p.opts.VenvDir, "bin", name)
}
