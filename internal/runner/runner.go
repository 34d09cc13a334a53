// Package runner executes external commands and reports their outcome.
package runner

import (
	"context"
	"strings"
	"time"
)

// Command describes a single external command invocation.
type Command struct {
	// Name is the executable.
	Name string

	// Args are passed to the executable verbatim.
	Args []string

	// Dir is the working directory. Empty means the current directory.
	Dir string

	// Env is overlaid on the inherited environment.
	Env map[string]string

	// Timeout bounds the run. Zero means no timeout.
	Timeout time.Duration

	// Description is the human-readable label used in reports.
	Description string
}

// Shell wraps a command line with shell operators in `sh -c`.
func Shell(line string) Command {
	return Command{Name: "sh", Args: []string{"-c", line}}
}

// Argv returns the full argument vector.
func (c Command) Argv() []string {
	return append([]string{c.Name}, c.Args...)
}

// String renders the command line for logs.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	for _, p := range c.Argv() {
		if p == "" || strings.ContainsAny(p, " \t\"'$&|;<>") {
			p = "'" + strings.ReplaceAll(p, "'", `'\''`) + "'"
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, " ")
}

// Label returns the description, falling back to the command line.
func (c Command) Label() string {
	if c.Description != "" {
		return c.Description
	}
	return c.String()
}

// Result holds the outcome of a command that was started.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration

	// TimedOut is set when the command was killed by its timeout.
	TimedOut bool
}

// Success reports whether the command exited 0 within its timeout.
func (r Result) Success() bool {
	return r.ExitCode == 0 && !r.TimedOut
}

// maxContextLines caps each stream attached to an error report.
const maxContextLines = 10

// OutputContext returns the trimmed, non-empty output streams keyed Stderr
// and Stdout, keeping the last lines of long output.
func (r Result) OutputContext() map[string]string {
	ctx := map[string]string{}
	for key, stream := range map[string]string{"Stderr": r.Stderr, "Stdout": r.Stdout} {
		lines := strings.Split(strings.TrimSpace(stream), "\n")
		if len(lines) > maxContextLines {
			lines = lines[len(lines)-maxContextLines:]
		}
		if text := strings.Join(lines, "\n"); text != "" {
			ctx[key] = text
		}
	}
	return ctx
}

// Runner runs external commands.
type Runner interface {
	// Run executes cmd and blocks until it exits.
	// A non-zero exit is reported in Result, not as an error. An error is
	// returned only when the command could not be started or ctx was canceled.
	Run(ctx context.Context, cmd Command) (Result, error)
}
