// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"guidesafe/internal/cli"
	"guidesafe/internal/logging"
	"guidesafe/internal/output"
	"guidesafe/internal/version"
)

// Exit codes.
const (
	ExitOK        = 0
	ExitUsage     = 2
	ExitRuntime   = 3
	ExitCancelled = 130
)

// errNoResult is returned by runners that found nothing to report.
var errNoResult = errors.New("no result")

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// RunContext parses argv, runs the selected command, and returns the exit code.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	if argv == nil {
		argv = []string{}
	}

	var inv cli.Invocation
	root := cli.NewRoot(outw, stderr, &inv)
	root.SetArgs(argv)
	if err := root.ExecuteContext(parent); err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		_ = outw.Flush()
		return ExitUsage
	}

	var runErr error
	switch inv.Command {
	case "":
		// --help or --version already printed
	case cli.CmdVersion:
		_, runErr = fmt.Fprintf(outw, "guidesafe version %s\n", version.Version)
	default:
		lg := logging.New(stderr, inv.Config.Log.Level, inv.Config.Log.Quiet)
		id := uuid.NewString()
		env := &runEnv{
			ctx:   parent,
			out:   outw,
			log:   lg.With("run_id", id),
			runID: id,
			opts:  output.Options{Format: inv.Config.Output.Format, Header: inv.Config.Output.Header},
		}
		runErr = env.dispatch(inv)
	}

	if e := outw.Flush(); output.IsBrokenPipe(e) || output.IsBrokenPipe(runErr) {
		return ExitOK
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return ExitRuntime
	}
	switch {
	case runErr == nil:
		return ExitOK
	case errors.Is(runErr, errNoResult):
		return inv.Config.Output.NoMatchExitCode
	case errors.Is(runErr, context.Canceled):
		return ExitCancelled
	case errors.As(runErr, new(inputError)):
		_, _ = fmt.Fprintln(stderr, "error:", runErr)
		return ExitUsage
	default:
		_, _ = fmt.Fprintln(stderr, "error:", runErr)
		return ExitRuntime
	}
}

type runEnv struct {
	ctx   context.Context
	out   io.Writer
	log   *slog.Logger
	runID string
	opts  output.Options
}

func (e *runEnv) dispatch(inv cli.Invocation) error {
	switch inv.Command {
	case cli.CmdDesign:
		return e.design(inv.Design, inv.Config)
	case cli.CmdScreen:
		return e.screen(inv.Screen, inv.Config)
	case cli.CmdVariants:
		return e.variants(inv.Variants)
	}
	return fmt.Errorf("unknown command %q", inv.Command)
}

// inputError marks failures to load user-supplied files (exit code 2).
type inputError struct{ err error }

func (e inputError) Error() string { return e.err.Error() }
func (e inputError) Unwrap() error { return e.err }

func inputErr(err error) error {
	if err == nil {
		return nil
	}
	return inputError{err}
}
