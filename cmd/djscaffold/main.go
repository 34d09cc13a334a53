// Command djscaffold scaffolds a Django REST backend and drives its
// container setup.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/myblog/djscaffold/internal/cmd"
	oerrors "github.com/myblog/djscaffold/internal/errors"
)

func main() {
	os.Exit(run())
}

func run() int {
	// External commands run in their own process group, so a terminal
	// interrupt reaches only djscaffold. Cancelling the context kills them.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		// A second interrupt terminates immediately, e.g. while a prompt
		// is blocked reading stdin.
		stop()
	}()

	err := cmd.NewRootCmd().ExecuteContext(ctx)
	if err == nil {
		return oerrors.ExitSuccess
	}

	var exitErr *oerrors.ExitError
	if !errors.As(err, &exitErr) || !exitErr.Printed {
		fmt.Fprintln(os.Stderr, err)
	}
	return oerrors.ExitCodeFromError(err)
}
