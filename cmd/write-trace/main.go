// Program write-trace explains the system calls a command makes.
//
// By default it runs use-write-directly under ptrace and prints every call
// next to a short explanation. Existing strace output can be annotated
// instead with -input.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/sysdemo/writedirect/internal"
	"github.com/sysdemo/writedirect/trace"
)

const helpText = `Usage: %[1]s [options] [command [args...]]

%[1]s runs command under ptrace, records the system calls of its main
thread and prints them together with an explanation of each. The output
of command goes to standard error so that it doesn't mix with the listing.

Without a command, %[2]s is traced.

Options:

`

const defaultCommand = "use-write-directly"

func main() {
	log.SetFlags(0)
	log.SetPrefix("write-trace: ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Stdin, os.Stdout, os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

type writeTrace struct {
	stdin  io.Reader
	stdout io.Writer
	// Receives the output of the traced command.
	commandOutput *os.File

	input   string
	argv    []string
	options trace.AnnotateOptions
}

func run(ctx context.Context, stdin io.Reader, stdout io.Writer, args []string) error {
	wt := writeTrace{
		stdin:         stdin,
		stdout:        stdout,
		commandOutput: os.Stderr,
	}

	fs := flag.NewFlagSet("write-trace", flag.ContinueOnError)
	fs.StringVar(&wt.input, "input", "", "annotate strace output from `file` instead of tracing, - reads stdin")
	fs.BoolVar(&wt.options.Plain, "plain", false, "print one call per line instead of a table")
	fs.BoolVar(&wt.options.Color, "color", false, "highlight failed calls")
	fs.IntVar(&wt.options.Width, "width", 60, "wrap explanations at `columns`")
	timeout := fs.Duration("timeout", 0, "kill the traced command after `duration`")

	fs.SetOutput(stdout)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), helpText, fs.Name(), defaultCommand)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); errors.Is(err, flag.ErrHelp) {
		return nil
	} else if err != nil {
		return err
	}

	if wt.options.Width <= 0 {
		return fmt.Errorf("invalid width %d", wt.options.Width)
	}

	wt.argv = fs.Args()
	if wt.input != "" && len(wt.argv) > 0 {
		return errors.New("-input and a command are mutually exclusive")
	}
	if len(wt.argv) == 0 {
		wt.argv = []string{defaultCommand}
	}

	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	events, err := wt.events(ctx)
	if err != nil {
		return err
	}

	return trace.Annotate(wt.stdout, events, wt.options)
}

func (wt *writeTrace) events(ctx context.Context) ([]trace.Event, error) {
	if wt.input != "" {
		return wt.readEvents()
	}

	header := "Tracing " + strings.Join(wt.argv, " ")
	if v, err := internal.KernelVersion(); err == nil {
		header += " on Linux " + v.String()
	}
	if _, err := fmt.Fprintf(wt.stdout, "%s\n\n", header); err != nil {
		return nil, err
	}

	res, err := trace.Trace(ctx, wt.argv, &trace.Options{
		Stdout: wt.commandOutput,
		Stderr: wt.commandOutput,
	})
	if err != nil {
		return nil, fmt.Errorf("trace %s: %w", wt.argv[0], err)
	}

	return res.Events, nil
}

func (wt *writeTrace) readEvents() ([]trace.Event, error) {
	if wt.input == "-" {
		return trace.ParseAll(wt.stdin)
	}

	f, err := os.Open(wt.input)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	events, err := trace.ParseAll(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", wt.input, err)
	}
	return events, nil
}
