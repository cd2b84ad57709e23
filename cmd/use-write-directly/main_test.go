package main

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"testing"

	"github.com/go-quicktest/qt"
)

const childEnv = "USE_WRITE_DIRECTLY_CHILD"

func TestMain(m *testing.M) {
	if os.Getenv(childEnv) == "1" {
		main()
		os.Exit(0)
	}

	os.Exit(m.Run())
}

func command(tb testing.TB) *exec.Cmd {
	tb.Helper()

	exe, err := os.Executable()
	qt.Assert(tb, qt.IsNil(err))

	cmd := exec.Command(exe)
	cmd.Env = append(os.Environ(), childEnv+"=1")
	return cmd
}

func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	if err != nil {
		return -1
	}
	return 0
}

func TestGreeting(t *testing.T) {
	var outputs []string
	for i := 0; i < 2; i++ {
		var stdout, stderr bytes.Buffer
		cmd := command(t)
		cmd.Stdout, cmd.Stderr = &stdout, &stderr

		err := cmd.Run()
		qt.Assert(t, qt.Equals(exitCode(err), 0))
		qt.Assert(t, qt.Equals(stderr.Len(), 0))
		qt.Assert(t, qt.Equals(stdout.String(), "Hello world!\n\x00"))
		qt.Assert(t, qt.Equals(stdout.Len(), 14))

		outputs = append(outputs, stdout.String())
	}

	qt.Assert(t, qt.Equals(outputs[0], outputs[1]))
}

func TestBrokenPipe(t *testing.T) {
	r, w, err := os.Pipe()
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsNil(r.Close()))
	defer w.Close()

	var stderr bytes.Buffer
	cmd := command(t)
	cmd.Stdout, cmd.Stderr = w, &stderr

	err = cmd.Run()
	qt.Assert(t, qt.Equals(exitCode(err), 1))
	qt.Assert(t, qt.StringContains(stderr.String(), "use-write-directly: greeting: write fd 1"))
	qt.Assert(t, qt.StringContains(stderr.String(), "broken pipe"))
}
