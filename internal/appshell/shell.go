// internal/appshell/shell.go

// Package appshell owns the process edge: signal wiring, default argv,
// and the final os.Exit. Keeping these here leaves each tool's
// RunContext fully testable with injected writers and contexts.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// exitCancel is the conventional exit code for termination by signal.
const exitCancel = 130

// Main runs a tool entry point under a signal-aware context and exits
// the process with its code. A bare invocation shows help rather than a
// missing-flag error.
func Main(run func(context.Context, []string, io.Writer, io.Writer) int) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	argv := os.Args[1:]
	if len(argv) == 0 {
		argv = []string{"-h"}
	}

	code := run(ctx, argv, os.Stdout, os.Stderr)
	if ctx.Err() != nil && code == 0 {
		code = exitCancel
	}
	stop()
	os.Exit(code)
}
