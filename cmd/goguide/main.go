// Command goguide prints the Go guide: every topic in order, or just the
// one picked with --section.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/spf13/afero"

	"github.com/marcodamonte/go-guide/topics/concurrency"
)

func main() {
	// Must run before anything else: when this process was started as a
	// child task it serves the task and exits here.
	concurrency.ServeChild()
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the root command with args and returns the process exit
// status.
func execute(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd(stdout, stderr, afero.NewOsFs())
	cmd.SetArgs(args)
	return exitCode(stderr, func() error { return cmd.ExecuteContext(ctx) })
}

// exitCode maps the outcome of fn to an exit status: 0 on success, 1 on
// error, 2 on panic.
func exitCode(stderr io.Writer, fn func() error) (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(stderr, "PANIC: %v\nStack trace:\n%s\n", r, debug.Stack())
			code = 2
		}
	}()

	if err := fn(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
