package orchestrator

import (
	"context"
	"fmt"

	"github.com/myblog/djscaffold/internal/output"
)

// Frontend environment printed for the React client.
var frontendEnv = []string{
	"VITE_API_URL=http://localhost:8000",
	"VITE_USE_DRF=true",
}

// report prints the endpoints and follow-up commands. Endpoints are not
// probed.
func (o *Orchestrator) report(_ context.Context, s *state) error {
	fmt.Fprintln(o.out)

	if o.opts.SkipDocker {
		fmt.Fprintln(o.out, output.FormatCheckmark(output.StyleSummary.Render("Project created in "+s.ws.Root)))
		fmt.Fprintln(o.out, "\nStart the containers:")
		fmt.Fprintf(o.out, "  cd %s\n", s.ws.Root)
		fmt.Fprintf(o.out, "  %s\n", s.compose.Build().String())
		fmt.Fprintf(o.out, "  %s\n", s.compose.Up("").String())
		return nil
	}

	fmt.Fprintln(o.out, output.FormatCheckmark(output.StyleSummary.Render("Django backend created and running")))

	if len(o.opts.Endpoints) > 0 {
		fmt.Fprintln(o.out, "\nEndpoints:")
		for _, ep := range o.opts.Endpoints {
			fmt.Fprintf(o.out, "  - %s\n", ep)
		}
	}

	fmt.Fprintln(o.out, "\nFrontend .env:")
	for _, line := range frontendEnv {
		fmt.Fprintf(o.out, "  %s\n", line)
	}

	fmt.Fprintln(o.out, "\nNext steps:")
	for i, line := range o.followUps(s) {
		fmt.Fprintf(o.out, "  %d. %s\n", i+1, line)
	}

	if len(s.result.Warnings) > 0 {
		fmt.Fprintln(o.out)
		for _, w := range s.result.Warnings {
			fmt.Fprintln(o.out, output.FormatWarning(w))
		}
	}
	return nil
}

func (o *Orchestrator) followUps(s *state) []string {
	backend := o.opts.Backend
	return []string{
		fmt.Sprintf("Add the %s models", o.opts.Layout.App),
		s.compose.Run("", backend, "python", "manage.py", "makemigrations", o.opts.Layout.App).String(),
		s.compose.Migrate(backend).String(),
		s.compose.Run("", backend, "python", "manage.py", "createsuperuser").String(),
	}
}
