//go:build linux

package unix

import (
	"syscall"

	linux "golang.org/x/sys/unix"
)

const (
	EINTR  = linux.EINTR
	EAGAIN = linux.EAGAIN
	EBADF  = linux.EBADF
	EPIPE  = linux.EPIPE
)

const (
	STDOUT_FILENO = 1
)

const (
	SYS_WRITE  = linux.SYS_WRITE
	O_CLOEXEC  = linux.O_CLOEXEC
	O_NONBLOCK = linux.O_NONBLOCK
)

func Syscall(trap, a1, a2, a3 uintptr) (r1, r2 uintptr, err syscall.Errno) {
	return linux.Syscall(trap, a1, a2, a3)
}

func Pipe2(p []int, flags int) error {
	return linux.Pipe2(p, flags)
}

func Close(fd int) error {
	return linux.Close(fd)
}

// WaitWritable blocks until fd can accept more data.
func WaitWritable(fd int) error {
	fds := []linux.PollFd{{Fd: int32(fd), Events: linux.POLLOUT}}
	_, err := linux.Poll(fds, -1)
	return err
}
