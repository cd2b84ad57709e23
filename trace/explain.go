package trace

import (
	"fmt"
	"strings"
)

type explainer func(c *Call) string

// explainers covers the calls a dynamically linked program makes on its way
// to main, and the few it makes afterwards.
var explainers = map[string]explainer{
	"execve": func(c *Call) string {
		return fmt.Sprintf("Replaces the process image with %s. Everything after this line belongs to the new program.", c.Arg(0))
	},
	"brk": func(c *Call) string {
		if isNull(c.Arg(0)) {
			return "Asks where the program break (the end of the heap) is without moving it. The answer is the current break address."
		}
		return "Moves the program break to grow or shrink the heap."
	},
	"mmap": explainMmap,
	"access": func(c *Call) string {
		if strings.Contains(c.Arg(0), "ld.so.preload") {
			return "The loader checks for a list of libraries to force into every process. A missing file means nothing is preloaded."
		}
		return fmt.Sprintf("Checks whether %s may be accessed.", c.Arg(0))
	},
	"openat": func(c *Call) string {
		path := c.Arg(1)
		switch {
		case strings.Contains(path, "ld.so.cache"):
			return fmt.Sprintf("Opens the loader's cache of library locations%s.", asFD(c))
		case strings.Contains(path, ".so"):
			return fmt.Sprintf("Opens shared library %s%s so the loader can map it.", path, asFD(c))
		default:
			return fmt.Sprintf("Opens %s%s.", path, asFD(c))
		}
	},
	"open": func(c *Call) string {
		return fmt.Sprintf("Opens %s%s.", c.Arg(0), asFD(c))
	},
	"newfstatat": func(c *Call) string {
		if c.Arg(1) == `""` {
			return fmt.Sprintf("Reads metadata (mode, size) of the file behind fd %s. The size tells the loader how much to map.", c.Arg(0))
		}
		return fmt.Sprintf("Reads metadata of %s.", c.Arg(1))
	},
	"fstat": func(c *Call) string {
		return fmt.Sprintf("Reads metadata (mode, size) of the file behind fd %s.", c.Arg(0))
	},
	"close": func(c *Call) string {
		return fmt.Sprintf("Releases fd %s. Memory mapped from the file stays valid.", c.Arg(0))
	},
	"read": func(c *Call) string {
		if c.Arg(2) == "832" {
			return fmt.Sprintf("Reads the ELF header of the file behind fd %s.", c.Arg(0))
		}
		return fmt.Sprintf("Reads up to %s bytes from fd %s.", c.Arg(2), c.Arg(0))
	},
	"pread64": func(c *Call) string {
		return fmt.Sprintf("Reads %s bytes at offset %s of fd %s without moving the file offset, here the program headers.", c.Arg(2), c.Arg(3), c.Arg(0))
	},
	"arch_prctl": func(c *Call) string {
		if c.Arg(0) == "ARCH_SET_FS" {
			return "Points the FS register at this thread's control block so thread-local variables resolve."
		}
		return "Changes architecture specific thread state."
	},
	"set_tid_address": func(*Call) string {
		return "Registers a word the kernel zeroes, waking futex waiters, when this thread exits. Returns the thread id."
	},
	"set_robust_list": func(*Call) string {
		return "Registers the thread's list of held robust futexes so they are released if the thread dies holding them."
	},
	"rseq": func(*Call) string {
		return "Registers a restartable sequence area shared with the kernel for fast per-CPU operations."
	},
	"mprotect": func(c *Call) string {
		if c.Arg(2) == "PROT_READ" {
			return "Makes relocated data read-only now that the loader is done patching it (RELRO)."
		}
		return fmt.Sprintf("Changes protection of %s bytes at %s to %s.", c.Arg(1), c.Arg(0), c.Arg(2))
	},
	"prlimit64": func(c *Call) string {
		if isNull(c.Arg(2)) {
			return fmt.Sprintf("Queries the %s limit without changing it.", c.Arg(1))
		}
		return fmt.Sprintf("Sets the %s limit.", c.Arg(1))
	},
	"munmap": func(c *Call) string {
		return fmt.Sprintf("Unmaps %s bytes at %s, such as the loader cache once every library is found.", c.Arg(1), c.Arg(0))
	},
	"write": explainWrite,
	"exit_group": func(c *Call) string {
		return fmt.Sprintf("Terminates every thread of the process with status %s. It never returns.", c.Arg(0))
	},
	"exit": func(c *Call) string {
		return fmt.Sprintf("Terminates the calling thread with status %s.", c.Arg(0))
	},
	"getrandom": func(c *Call) string {
		return fmt.Sprintf("Fills %s bytes with randomness, used to seed stack protectors and hash tables.", c.Arg(1))
	},
}

func explainMmap(c *Call) string {
	size, fd := c.Arg(1), c.Arg(4)
	switch {
	case fd == "-1" || strings.Contains(c.Arg(3), "MAP_ANONYMOUS"):
		return fmt.Sprintf("Allocates %s bytes of zeroed memory not backed by any file.", size)
	case strings.Contains(c.Arg(3), "MAP_FIXED"):
		return fmt.Sprintf("Maps a %s segment of fd %s at a fixed address inside the earlier reservation.", protSummary(c.Arg(2)), fd)
	default:
		return fmt.Sprintf("Maps %s bytes of the file behind fd %s%s.", size, fd, asAddr(c))
	}
}

func explainWrite(c *Call) string {
	target := "fd " + c.Arg(0)
	switch c.Arg(0) {
	case "1":
		target = "standard output"
	case "2":
		target = "standard error"
	}

	if c.Unfinished || c.Failed() {
		return fmt.Sprintf("Writes %s bytes to %s.", c.Arg(2), target)
	}
	if c.Ret == c.Arg(2) {
		return fmt.Sprintf("Writes %s bytes to %s. All of them were accepted.", c.Arg(2), target)
	}
	return fmt.Sprintf("Writes %s bytes to %s. Only %s were accepted.", c.Arg(2), target, c.Ret)
}

// Explain returns a short description of what c does, or the empty
// string if the call isn't known.
func Explain(c *Call) string {
	fn, ok := explainers[c.Name]
	if !ok {
		if c.Failed() {
			return failure(c)
		}
		return ""
	}

	text := fn(c)
	if c.Failed() {
		text += " " + failure(c)
	}
	return text
}

// ExplainExit describes how the process ended.
func ExplainExit(e *Exit) string {
	if e.Signal != "" {
		return fmt.Sprintf("The process was killed by %s.", e.Signal)
	}
	return fmt.Sprintf("The process exited with status %d.", e.Code)
}

// Known returns true if [Explain] has a description for the named call.
func Known(name string) bool {
	_, ok := explainers[name]
	return ok
}

func failure(c *Call) string {
	if c.Detail != "" {
		return fmt.Sprintf("Failed with %s (%s).", c.Errno, c.Detail)
	}
	return fmt.Sprintf("Failed with %s.", c.Errno)
}

func isNull(arg string) bool {
	return arg == "NULL" || arg == "0"
}

func asFD(c *Call) string {
	if c.Unfinished || c.Failed() || c.Ret == "" {
		return ""
	}
	return " as fd " + c.Ret
}

func asAddr(c *Call) string {
	if c.Unfinished || c.Failed() || c.Ret == "" {
		return ""
	}
	return " at " + c.Ret
}

func protSummary(prot string) string {
	switch {
	case strings.Contains(prot, "PROT_EXEC"):
		return "code"
	case strings.Contains(prot, "PROT_WRITE"):
		return "writable data"
	default:
		return "read-only"
	}
}
