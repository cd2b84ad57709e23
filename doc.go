// Package writedirect prints a greeting by issuing write(2) directly.
//
// The standard library routes output through [os.File], which registers
// descriptors with the runtime poller, retries short writes and converts
// errors. This package skips all of that: [Hello] hands a fixed buffer to
// the kernel in a single SYS_WRITE against descriptor 1 and returns whatever
// the kernel reports.
//
// A process running it under a syscall tracer shows exactly one write:
//
//	write(1, "Hello world!\n\0", 14) = 14
//
// The trace subpackage can produce and explain such listings.
package writedirect
