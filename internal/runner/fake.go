package runner

import (
	"context"
	"sync"
)

// FakeResponse is a scripted outcome for Fake.
type FakeResponse struct {
	Result Result
	Err    error
}

// OK returns a successful response with the given stdout.
func OK(stdout string) FakeResponse {
	return FakeResponse{Result: Result{Stdout: stdout}}
}

// Fail returns a response that exited with code and stderr.
func Fail(code int, stderr string) FakeResponse {
	return FakeResponse{Result: Result{ExitCode: code, Stderr: stderr}}
}

// Fake is a scripted Runner for tests. Responses are keyed by the command
// line (Command.String()) and consumed in order; the last one repeats.
// Unscripted commands succeed with empty output.
type Fake struct {
	mu        sync.Mutex
	responses map[string][]FakeResponse
	calls     []Command
}

// NewFake creates an empty Fake.
func NewFake() *Fake {
	return &Fake{responses: make(map[string][]FakeResponse)}
}

// On scripts the responses for a command line.
func (f *Fake) On(line string, responses ...FakeResponse) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[line] = append(f.responses[line], responses...)
	return f
}

// Run implements Runner.
func (f *Fake) Run(ctx context.Context, cmd Command) (Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, cmd)
	if err := ctx.Err(); err != nil {
		return Result{ExitCode: -1}, err
	}

	line := cmd.String()
	queue := f.responses[line]
	if len(queue) == 0 {
		return Result{}, nil
	}

	resp := queue[0]
	if len(queue) > 1 {
		f.responses[line] = queue[1:]
	}
	return resp.Result, resp.Err
}

// Calls returns the commands run so far.
func (f *Fake) Calls() []Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Command(nil), f.calls...)
}

// Lines returns the command lines run so far.
func (f *Fake) Lines() []string {
	calls := f.Calls()
	lines := make([]string, len(calls))
	for i, c := range calls {
		lines[i] = c.String()
	}
	return lines
}
