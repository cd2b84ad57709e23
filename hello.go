package writedirect

import (
	"fmt"

	"github.com/sysdemo/writedirect/internal/sys"
)

// greeting keeps the NUL terminator. The byte count handed to the kernel
// is the size of the whole buffer, terminator included.
const greeting = "Hello world!\n\x00"

// ShortWriteError is returned by [HelloFull] when the kernel stops
// accepting bytes before the greeting was written.
type ShortWriteError = sys.ShortWriteError

// Greeting returns a copy of the buffer written by [Hello].
func Greeting() []byte {
	return []byte(greeting)
}

// Hello writes the greeting to standard output with a single write(2).
//
// The returned count is the kernel's. A short write is not retried.
func Hello() (int, error) {
	return write(sys.Stdout)
}

// HelloTo is like [Hello] but writes to an arbitrary descriptor.
func HelloTo(fd int) (int, error) {
	raw, err := sys.NewFD(fd)
	if err != nil {
		return 0, err
	}
	return write(raw)
}

// HelloFull writes the whole greeting to fd, retrying partial and
// interrupted writes.
func HelloFull(fd int) error {
	raw, err := sys.NewFD(fd)
	if err != nil {
		return err
	}

	if err := sys.WriteAll(raw, Greeting()); err != nil {
		return fmt.Errorf("greeting: %w", err)
	}
	return nil
}

func write(fd *sys.FD) (int, error) {
	buf := Greeting()
	n, err := sys.Write(fd, buf)
	if err != nil {
		return 0, fmt.Errorf("greeting: %w", err)
	}
	return n, nil
}
