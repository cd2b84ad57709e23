// Program use-write-directly prints "Hello world!" with a single write(2)
// against standard output.
//
// It exits with status 0 once the write returned, even if the kernel took
// fewer bytes than offered. Only a failed write, such as EPIPE or EBADF on
// standard output, is reported on standard error with exit status 1.
//
// Run it under a syscall tracer to see everything a process does before and
// after its one line of output:
//
//	write-trace use-write-directly
package main

import (
	"log"

	"github.com/sysdemo/writedirect"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("use-write-directly: ")

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// A short write is not retried, only hard errors are reported.
	_, err := writedirect.Hello()
	return err
}
