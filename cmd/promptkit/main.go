// Command promptkit turns a local project into ready-to-paste prompts for
// portfolio entries, proposals, documentation, feature plans and market
// research.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/roberthamel/promptkit/internal/console"
	apperrors "github.com/roberthamel/promptkit/internal/errors"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := &app{in: stdin, out: stdout, errOut: stderr}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	a.close()
	if err != nil {
		console.Error(stderr, err)
		return apperrors.ExitCode(err)
	}
	return apperrors.ExitOK
}
