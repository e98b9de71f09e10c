// Command seedance validates, submits and tracks Seedance video
// generation tasks, and runs the validating relay.
//
// Usage:
//
//	seedance validate -f request.json        # check a request locally
//	seedance create -f request.json [-wait]  # validate and submit
//	seedance get <task-id>...                # show one or more tasks
//	seedance wait [-timeout 30m] <task-id>   # poll until a task finishes
//	seedance cancel <task-id>                # cancel a queued task
//	seedance models                          # list available models
//	seedance serve                           # run the relay
//	seedance version
//
// Every command except validate and version reads VOLCES_* variables
// (and a .env file when present) for the API key and endpoint.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
)

// Set at build time with -ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return exitUsage
	}

	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}

	var err error
	switch args[0] {
	case "validate":
		err = a.validate(args[1:])
	case "create":
		err = a.create(ctx, args[1:])
	case "get":
		err = a.get(ctx, args[1:])
	case "wait":
		err = a.wait(ctx, args[1:])
	case "cancel":
		err = a.cancel(ctx, args[1:])
	case "models":
		err = a.models(ctx, args[1:])
	case "serve":
		err = a.serve(ctx, args[1:])
	case "version":
		fmt.Fprintf(stdout, "seedance %s (%s)\n", Version, GitCommit)
	case "help", "-h", "--help":
		printUsage(stdout)
	default:
		fmt.Fprintf(stderr, "unknown command: %s\n", args[0])
		printUsage(stderr)
		return exitUsage
	}

	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, flag.ErrHelp):
		return exitOK
	case errors.Is(err, errUsage):
		fmt.Fprintf(stderr, "%v\n", err)
		return exitUsage
	default:
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitError
	}
}

var errUsage = errors.New("usage error")

func usageError(format string, args ...any) error {
	return errors.Wrapf(errUsage, format, args...)
}

func (a *app) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Usage: seedance <command> [flags]

Commands:
  validate -f FILE            validate a request without sending it
  create -f FILE [-wait]      validate and submit a generation task
  get ID...                   show tasks
  wait [-timeout D] ID        poll a task until it finishes
  cancel ID                   cancel a queued task
  models                      list available models
  serve                       run the validating relay
  version                     print version information

FILE may be - to read standard input.
`)
}
