package trace

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestExplainStartup(t *testing.T) {
	for _, event := range readStartup(t) {
		if event.Exit != nil {
			qt.Assert(t, qt.Equals(ExplainExit(event.Exit), "The process exited with status 0."))
			continue
		}

		qt.Assert(t, qt.IsTrue(Known(event.Call.Name)), qt.Commentf("%s", event.Call.Name))
		qt.Assert(t, qt.Not(qt.Equals(Explain(event.Call), "")), qt.Commentf("%s", event))
	}
}

func TestExplain(t *testing.T) {
	for _, tc := range []struct {
		line string
		want string
	}{
		{
			"brk(NULL) = 0x55a68cf91000",
			"Asks where the program break (the end of the heap) is without moving it. The answer is the current break address.",
		},
		{
			"brk(0x55a68cfb2000) = 0x55a68cfb2000",
			"Moves the program break to grow or shrink the heap.",
		},
		{
			`access("/etc/ld.so.preload", R_OK) = -1 ENOENT (No such file or directory)`,
			"The loader checks for a list of libraries to force into every process. A missing file means nothing is preloaded. Failed with ENOENT (No such file or directory).",
		},
		{
			`openat(AT_FDCWD, "/etc/ld.so.cache", O_RDONLY|O_CLOEXEC) = 3`,
			"Opens the loader's cache of library locations as fd 3.",
		},
		{
			`openat(AT_FDCWD, "/lib/x86_64-linux-gnu/libc.so.6", O_RDONLY|O_CLOEXEC) = 3`,
			`Opens shared library "/lib/x86_64-linux-gnu/libc.so.6" as fd 3 so the loader can map it.`,
		},
		{
			`openat(AT_FDCWD, "/nope", O_RDONLY) = -1 ENOENT (No such file or directory)`,
			`Opens "/nope". Failed with ENOENT (No such file or directory).`,
		},
		{
			"mmap(NULL, 8192, PROT_READ|PROT_WRITE, MAP_PRIVATE|MAP_ANONYMOUS, -1, 0) = 0x7f9e70c40000",
			"Allocates 8192 bytes of zeroed memory not backed by any file.",
		},
		{
			"mmap(NULL, 41202, PROT_READ, MAP_PRIVATE, 3, 0) = 0x7f9e70c35000",
			"Maps 41202 bytes of the file behind fd 3 at 0x7f9e70c35000.",
		},
		{
			"mmap(0x7f9e70a7a000, 1396736, PROT_READ|PROT_EXEC, MAP_PRIVATE|MAP_FIXED|MAP_DENYWRITE, 3, 0x26000) = 0x7f9e70a7a000",
			"Maps a code segment of fd 3 at a fixed address inside the earlier reservation.",
		},
		{
			"mprotect(0x7f9e70c22000, 16384, PROT_READ) = 0",
			"Makes relocated data read-only now that the loader is done patching it (RELRO).",
		},
		{
			"prlimit64(0, RLIMIT_STACK, NULL, {rlim_cur=8192*1024, rlim_max=RLIM64_INFINITY}) = 0",
			"Queries the RLIMIT_STACK limit without changing it.",
		},
		{
			"prlimit64(0, RLIMIT_NOFILE, {rlim_cur=1024, rlim_max=4096}, NULL) = 0",
			"Sets the RLIMIT_NOFILE limit.",
		},
		{
			`write(1, "Hello world!\n\0", 14) = 14`,
			"Writes 14 bytes to standard output. All of them were accepted.",
		},
		{
			`write(2, "Hello world!\n\0", 14) = 3`,
			"Writes 14 bytes to standard error. Only 3 were accepted.",
		},
		{
			`write(1, "Hello world!\n\0", 14) = -1 EBADF (Bad file descriptor)`,
			"Writes 14 bytes to standard output. Failed with EBADF (Bad file descriptor).",
		},
		{
			"exit_group(0) = ?",
			"Terminates every thread of the process with status 0. It never returns.",
		},
		{
			"frobnicate(1) = 0",
			"",
		},
		{
			"frobnicate(1) = -1 EPERM",
			"Failed with EPERM.",
		},
	} {
		t.Run(tc.line, func(t *testing.T) {
			event, err := Parse(tc.line)
			qt.Assert(t, qt.IsNil(err))
			qt.Assert(t, qt.Equals(Explain(event.Call), tc.want))
		})
	}
}

func TestExplainExit(t *testing.T) {
	qt.Assert(t, qt.Equals(ExplainExit(&Exit{Code: 3}), "The process exited with status 3."))
	qt.Assert(t, qt.Equals(ExplainExit(&Exit{Signal: "SIGKILL"}), "The process was killed by SIGKILL."))
}
