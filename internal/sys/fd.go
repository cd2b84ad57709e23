package sys

import (
	"fmt"
	"strconv"

	"github.com/sysdemo/writedirect/internal/unix"
)

// ErrClosedFd is returned for descriptors which can't refer to an open
// file. It matches the EBADF the kernel reports for the same descriptors.
var ErrClosedFd = unix.EBADF

// FD is a raw file descriptor.
//
// Unlike an [os.File] it is never registered with the runtime poller and
// does not own the descriptor: nothing is closed when it is garbage
// collected.
type FD struct {
	raw int
}

// Stdout is the descriptor a process inherits for its normal output.
var Stdout = &FD{unix.STDOUT_FILENO}

func NewFD(value int) (*FD, error) {
	if value < 0 {
		return nil, fmt.Errorf("invalid fd %d: %w", value, ErrClosedFd)
	}
	return &FD{value}, nil
}

func (fd *FD) String() string {
	return strconv.FormatInt(int64(fd.raw), 10)
}

func (fd *FD) Int() int {
	return fd.raw
}
