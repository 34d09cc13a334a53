// Package readiness waits for datastore containers to accept connections.
package readiness

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"

	oerrors "github.com/myblog/djscaffold/internal/errors"
	"github.com/myblog/djscaffold/internal/output"
	"github.com/myblog/djscaffold/internal/runner"
)

// Health is the evaluated state of a datastore.
type Health string

const (
	// HealthReady means the probe succeeded.
	HealthReady Health = "Ready"

	// HealthNotReady means the probe ran and failed.
	HealthNotReady Health = "NotReady"

	// HealthUnknown means the probe has not run yet.
	HealthUnknown Health = "Unknown"
)

// Probe checks a single datastore. Exit code 0 means ready.
type Probe struct {
	Name    string
	Command runner.Command
}

// Options configures a wait.
type Options struct {
	// Interval between probe rounds.
	Interval time.Duration

	// Timeout bounds the whole wait.
	Timeout time.Duration
}

// Status is the last observed health of one datastore.
type Status struct {
	Name     string
	Health   Health
	Attempts int
	Message  string
}

// Result holds per-datastore status in probe order.
type Result struct {
	Statuses []Status
}

// Pending returns the names not yet ready.
func (r *Result) Pending() []string {
	var names []string
	for _, s := range r.Statuses {
		if s.Health != HealthReady {
			names = append(names, s.Name)
		}
	}
	return names
}

// Wait polls every probe until all succeed or opts.Timeout elapses. Ready
// datastores are not probed again. A probe that cannot be started is fatal;
// running out of time returns ErrNotReady.
func Wait(ctx context.Context, r runner.Runner, probes []Probe, opts Options) (*Result, error) {
	result := &Result{Statuses: make([]Status, len(probes))}
	for i, p := range probes {
		result.Statuses[i] = Status{Name: p.Name, Health: HealthUnknown}
	}
	if len(probes) == 0 {
		return result, nil
	}

	logger := output.StageLogger("readiness")

	err := wait.PollUntilContextTimeout(ctx, opts.Interval, opts.Timeout, true, func(ctx context.Context) (bool, error) {
		done := true
		for i, p := range probes {
			status := &result.Statuses[i]
			if status.Health == HealthReady {
				continue
			}

			status.Attempts++
			res, err := r.Run(ctx, p.Command)
			if err != nil {
				if ctx.Err() != nil {
					// Out of time mid-probe; let the poller report it.
					return false, nil
				}
				return false, &oerrors.DetailError{
					Type:     "probe failed",
					Message:  fmt.Sprintf("readiness probe for %s could not be run: %v", p.Name, err),
					Location: p.Command.String(),
					Cause:    oerrors.ErrStepFailed,
				}
			}

			if res.Success() {
				status.Health = HealthReady
				status.Message = strings.TrimSpace(res.Stdout)
				logger.Info("datastore ready", "name", p.Name, "attempts", status.Attempts)
				continue
			}

			done = false
			status.Health = HealthNotReady
			status.Message = strings.TrimSpace(res.Stderr)
			logger.Debug("datastore not ready", "name", p.Name, "exit", res.ExitCode, "attempt", status.Attempts)
		}
		return done, nil
	})

	switch {
	case err == nil:
		return result, nil
	case ctx.Err() != nil:
		return result, ctx.Err()
	case wait.Interrupted(err):
		pending := result.Pending()
		hint := "Raise readiness.timeout in the config file."
		if len(pending) > 0 {
			hint = "Inspect the container logs, e.g. docker-compose logs " + pending[0] + ", or raise readiness.timeout."
		}
		return result, &oerrors.DetailError{
			Type:    "not ready",
			Message: fmt.Sprintf("datastores not ready after %s: %s", opts.Timeout, strings.Join(pending, ", ")),
			Context: map[string]string{"pending": strings.Join(pending, ",")},
			Hint:    hint,
			Cause:   oerrors.ErrNotReady,
		}
	default:
		var detail *oerrors.DetailError
		if errors.As(err, &detail) {
			return result, err
		}
		return result, fmt.Errorf("waiting for datastores: %w", err)
	}
}
