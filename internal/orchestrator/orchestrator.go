// Package orchestrator drives the containerized setup pipeline: tool checks,
// project structure, template propagation, image build, datastore startup,
// migrations and the final endpoint report.
package orchestrator

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/myblog/djscaffold/internal/compose"
	"github.com/myblog/djscaffold/internal/output"
	"github.com/myblog/djscaffold/internal/prompt"
	"github.com/myblog/djscaffold/internal/runner"
	"github.com/myblog/djscaffold/internal/workspace"
)

// Stage names a pipeline stage.
type Stage string

// Stages in execution order.
const (
	StageCheckDeps        Stage = "CHECK_DEPS"
	StageCreateStructure  Stage = "CREATE_STRUCTURE"
	StageCopyDockerFiles  Stage = "COPY_DOCKER_FILES"
	StageCopyAppFiles     Stage = "COPY_APP_FILES"
	StageWriteBootstrap   Stage = "WRITE_BOOTSTRAP_FILES"
	StageBuildImages      Stage = "BUILD_IMAGES"
	StageStartDatastores  Stage = "START_DATASTORES"
	StageWaitDatastores   Stage = "WAIT_DATASTORES"
	StageRunMigrations    Stage = "RUN_MIGRATIONS"
	StageStartAllServices Stage = "START_ALL_SERVICES"
	StageReport           Stage = "REPORT"
)

// StageResult records how a stage ended.
type StageResult struct {
	Stage    Stage
	Status   string
	Duration time.Duration

	// Err is set for failed stages, and for soft failures that were
	// downgraded to warnings.
	Err error
}

// Result is the outcome of a setup run.
type Result struct {
	Stages   []StageResult
	Warnings []string

	// Workspace is the project directory, once created.
	Workspace *workspace.Workspace
}

// Status returns the recorded status of stage, or "" if it never ran.
func (r *Result) Status(stage Stage) string {
	for _, s := range r.Stages {
		if s.Stage == stage {
			return s.Status
		}
	}
	return ""
}

// stage is one step of the pipeline. Soft stages downgrade failure to a
// warning; dockerOnly stages are skipped with Options.SkipDocker.
type stage struct {
	name       Stage
	soft       bool
	dockerOnly bool
	run        func(ctx context.Context, s *state) error
}

// state is carried between stages of a single run.
type state struct {
	base    *workspace.Base
	ws      *workspace.Workspace
	compose *compose.Compose
	result  *Result

	// manifest is nil when the compose file could not be inspected.
	manifest *compose.Manifest
	current  Stage
}

func (s *state) warn(msg string) {
	s.result.Warnings = append(s.result.Warnings, msg)
	output.StageLogger(string(s.current)).Warn(msg)
}

// Orchestrator runs the setup pipeline.
type Orchestrator struct {
	reporter *runner.Reporter
	confirm  prompt.Confirmer
	out      io.Writer
	opts     Options
}

// New creates an Orchestrator writing its report to out.
func New(reporter *runner.Reporter, confirm prompt.Confirmer, out io.Writer, opts Options) *Orchestrator {
	return &Orchestrator{
		reporter: reporter,
		confirm:  confirm,
		out:      out,
		opts:     opts,
	}
}

// pipeline returns the stages in order.
func (o *Orchestrator) pipeline() []stage {
	return []stage{
		{name: StageCheckDeps, dockerOnly: true, run: o.checkDeps},
		{name: StageCreateStructure, run: o.createStructure},
		{name: StageCopyDockerFiles, run: o.copyDockerFiles},
		{name: StageCopyAppFiles, run: o.copyAppFiles},
		{name: StageWriteBootstrap, run: o.writeBootstrap},
		{name: StageBuildImages, dockerOnly: true, run: o.buildImages},
		{name: StageStartDatastores, dockerOnly: true, run: o.startDatastores},
		{name: StageWaitDatastores, dockerOnly: true, run: o.waitDatastores},
		{name: StageRunMigrations, dockerOnly: true, soft: true, run: o.runMigrations},
		{name: StageStartAllServices, dockerOnly: true, run: o.startAllServices},
		{name: StageReport, run: o.report},
	}
}

// Run executes every stage in order inside base. A fatal stage failure
// stops the run and is returned; completed work is left in place.
func (o *Orchestrator) Run(ctx context.Context, base *workspace.Base) (*Result, error) {
	s := &state{base: base, result: &Result{}}

	for _, st := range o.pipeline() {
		s.current = st.name

		if st.dockerOnly && o.opts.SkipDocker {
			o.record(s, StageResult{Stage: st.name, Status: output.StatusSkipped})
			continue
		}

		if err := ctx.Err(); err != nil {
			return s.result, err
		}

		output.Debug("stage starting", "stage", st.name)
		start := time.Now()
		warningsBefore := len(s.result.Warnings)
		err := st.run(ctx, s)
		sr := StageResult{Stage: st.name, Duration: time.Since(start), Err: err}

		switch {
		case err == nil && len(s.result.Warnings) > warningsBefore:
			sr.Status = output.StatusWarning
		case err == nil:
			sr.Status = output.StatusDone
		case st.soft && ctx.Err() == nil:
			sr.Status = output.StatusWarning
			s.warn(fmt.Sprintf("%s failed, continuing: %s", st.name, firstLine(err)))
		default:
			sr.Status = output.StatusFailed
			o.record(s, sr)
			return s.result, err
		}

		o.record(s, sr)
	}

	return s.result, nil
}

func (o *Orchestrator) record(s *state, sr StageResult) {
	s.result.Stages = append(s.result.Stages, sr)
	s.result.Workspace = s.ws
	fmt.Fprintln(o.out, output.FormatStageLine(string(sr.Stage), sr.Status))
}
