package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/myblog/djscaffold/internal/compose"
	oerrors "github.com/myblog/djscaffold/internal/errors"
	"github.com/myblog/djscaffold/internal/output"
	"github.com/myblog/djscaffold/internal/propagate"
	"github.com/myblog/djscaffold/internal/readiness"
	"github.com/myblog/djscaffold/internal/runner"
	"github.com/myblog/djscaffold/internal/toolcheck"
)

func (o *Orchestrator) checkDeps(ctx context.Context, s *state) error {
	checks, err := toolcheck.Run(ctx, o.reporter.Runner(), o.opts.Tools)
	for _, c := range checks {
		if c.Warning != "" {
			s.result.Warnings = append(s.result.Warnings, c.Warning)
		}
		fmt.Fprintln(o.out, output.FormatCheckmark(c.Tool.Name+": "+c.Output))
	}
	return err
}

func (o *Orchestrator) createStructure(_ context.Context, s *state) error {
	ws, err := s.base.Prepare(o.opts.TargetDir, o.confirm)
	if err != nil {
		return err
	}
	s.ws = ws
	s.compose = compose.New(o.opts.ComposeCommand, o.opts.ComposeFile, ws.Root)

	if _, err := o.opts.Layout.Build(ws.FS); err != nil {
		return err
	}
	return nil
}

func (o *Orchestrator) copyDockerFiles(_ context.Context, s *state) error {
	src, err := propagate.OpenSource(o.opts.TemplateDir)
	if err != nil {
		return err
	}

	report, err := propagate.CopyTemplates(src, s.ws.FS, o.opts.TemplateFiles, o.opts.EnvTemplate, o.opts.EnvFile)
	if err != nil {
		return err
	}
	s.result.Warnings = append(s.result.Warnings, report.Warnings...)
	for _, name := range report.Copied {
		fmt.Fprintln(o.out, output.FormatCheckmark("Copied "+output.StyleNoun.Render(name)))
	}

	// A manifest that lacks the datastores makes the later stages fail with
	// an unhelpful compose error; say so up front.
	file := o.opts.ComposeFile
	if file == "" {
		file = compose.DefaultFile
	}
	manifest, err := compose.Load(s.ws.FS, file)
	if err != nil {
		if errors.Is(err, oerrors.ErrNotFound) || errors.Is(err, oerrors.ErrValidation) {
			s.warn(fmt.Sprintf("compose manifest %s could not be inspected", file))
			return nil
		}
		return err
	}
	s.manifest = manifest
	for _, name := range compose.CheckDatastores(manifest, o.opts.datastoreServices()) {
		s.warn(fmt.Sprintf("datastore service %s is not defined in %s", name, file))
	}
	if o.opts.Backend != "" && !manifest.HasService(o.opts.Backend) {
		s.warn(fmt.Sprintf("backend service %s is not defined in %s", o.opts.Backend, file))
	}
	return nil
}

func (o *Orchestrator) copyAppFiles(_ context.Context, s *state) error {
	src, err := propagate.OpenSource(o.opts.TemplateDir)
	if err != nil {
		return err
	}

	report, err := propagate.CopyAppFiles(src, s.ws.FS, o.opts.AppDir, o.opts.AppFiles, o.opts.Layout.Project)
	if err != nil {
		return err
	}
	s.result.Warnings = append(s.result.Warnings, report.Warnings...)
	for _, name := range report.Copied {
		fmt.Fprintln(o.out, output.FormatCheckmark("Copied "+output.StyleNoun.Render(name)))
	}
	return nil
}

func (o *Orchestrator) writeBootstrap(_ context.Context, s *state) error {
	report, err := o.opts.Layout.WriteBootstrap(s.ws.FS)
	if err != nil {
		return err
	}
	for _, name := range report.Files {
		fmt.Fprintln(o.out, output.FormatCheckmark("Created "+output.StyleNoun.Render(name)))
	}
	return nil
}

func (o *Orchestrator) buildImages(ctx context.Context, s *state) error {
	return o.step(ctx, s.compose.Build())
}

func (o *Orchestrator) startDatastores(ctx context.Context, s *state) error {
	services := o.opts.datastoreServices()
	if len(services) == 0 {
		return nil
	}
	return o.step(ctx, s.compose.Up("Starting "+strings.Join(services, " and "), services...))
}

func (o *Orchestrator) waitDatastores(ctx context.Context, s *state) error {
	var probes []readiness.Probe
	for _, d := range o.opts.Datastores {
		probe := d.Probe
		if len(probe) == 0 && s.manifest != nil {
			probe = s.manifest.HealthProbe(d.Service)
		}
		if len(probe) == 0 {
			continue
		}
		probes = append(probes, readiness.Probe{
			Name:    d.Service,
			Command: s.compose.Exec("", d.Service, probe...),
		})
	}
	if len(probes) == 0 {
		return nil
	}

	var result *readiness.Result
	err := output.RunWithSpinner(ctx, "Waiting for datastores...", func(ctx context.Context) error {
		var err error
		result, err = readiness.Wait(ctx, o.reporter.Runner(), probes, o.opts.Readiness)
		return err
	})
	if err != nil {
		return err
	}

	for _, st := range result.Statuses {
		fmt.Fprintln(o.out, output.FormatCheckmark(st.Name+" is ready"))
	}
	return nil
}

func (o *Orchestrator) runMigrations(ctx context.Context, s *state) error {
	if err := o.step(ctx, s.compose.Migrate(o.opts.Backend)); err != nil {
		fmt.Fprintln(o.out, output.FormatWarning("Migrations were not applied. The Django models may not exist yet."))
		return err
	}
	return nil
}

func (o *Orchestrator) startAllServices(ctx context.Context, s *state) error {
	return o.step(ctx, s.compose.Up("Starting all services"))
}

func (o *Orchestrator) step(ctx context.Context, cmd runner.Command) error {
	_, err := o.reporter.Step(ctx, cmd)
	if err != nil {
		return runner.StepError(err)
	}
	return nil
}

// firstLine returns the most specific one-line description of err.
func firstLine(err error) string {
	var detail *oerrors.DetailError
	if errors.As(err, &detail) {
		return detail.Message
	}
	msg := err.Error()
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		return msg[:i]
	}
	return msg
}
