package main

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"
)

const startup = "../../trace/testdata/startup.strace"

func TestRunInputFile(t *testing.T) {
	var stdout bytes.Buffer
	err := run(context.Background(), nil, &stdout, []string{"-input", startup, "-plain"})
	qt.Assert(t, qt.IsNil(err))

	out := stdout.String()
	qt.Assert(t, qt.StringContains(out, "4.\taccess(\"/etc/ld.so.preload\", R_OK)"))
	qt.Assert(t, qt.StringContains(out, "A missing file means nothing is preloaded. Failed with ENOENT (No such file or directory).\n"))
	qt.Assert(t, qt.StringContains(out, "32.\t+++ exited with 0 +++\n\tThe process exited with status 0.\n"))
}

func TestRunStdin(t *testing.T) {
	f, err := os.Open(startup)
	qt.Assert(t, qt.IsNil(err))
	defer f.Close()

	var stdout bytes.Buffer
	err = run(context.Background(), f, &stdout, []string{"-input", "-", "-width", "200"})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.StringContains(stdout.String(), "Writes 14 bytes to standard output. All of them were accepted."))
}

func TestRunErrors(t *testing.T) {
	for _, args := range [][]string{
		{"-input", "does-not-exist.strace"},
		{"-input", startup, "echo"},
		{"-width", "0"},
		{"-bogus"},
	} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			var stdout bytes.Buffer
			err := run(context.Background(), nil, &stdout, args)
			qt.Assert(t, qt.IsNotNil(err))
		})
	}

	var stdout bytes.Buffer
	err := run(context.Background(), strings.NewReader("bogus\n"), &stdout, []string{"-input", "-"})
	qt.Assert(t, qt.StringContains(err.Error(), "line 1"))
}

func TestRunHelp(t *testing.T) {
	var stdout bytes.Buffer
	qt.Assert(t, qt.IsNil(run(context.Background(), nil, &stdout, []string{"-h"})))
	qt.Assert(t, qt.StringContains(stdout.String(), "Without a command, use-write-directly is traced."))
}
