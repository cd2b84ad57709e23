//go:build !linux

package unix

import "syscall"

const (
	EINTR  = syscall.EINTR
	EAGAIN = syscall.EAGAIN
	EBADF  = syscall.EBADF
	EPIPE  = syscall.EPIPE
)

const (
	STDOUT_FILENO = 1
)

const (
	SYS_WRITE  = 1
	O_CLOEXEC  = 0
	O_NONBLOCK = 0
)

func Syscall(trap, a1, a2, a3 uintptr) (r1, r2 uintptr, err syscall.Errno) {
	return 0, 0, syscall.ENOTSUP
}

func Pipe2(p []int, flags int) error {
	return errNonLinux()
}

func Close(fd int) error {
	return errNonLinux()
}

func WaitWritable(fd int) error {
	return errNonLinux()
}
