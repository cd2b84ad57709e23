package sys

import (
	"fmt"
	"runtime"
	"syscall"
	"unsafe"

	"github.com/pkg/errors"

	"github.com/sysdemo/writedirect/internal/unix"
)

// Write wraps SYS_WRITE.
//
// The kernel may accept fewer bytes than len(buf). The count it returns is
// passed through unchanged and nothing is retried.
func Write(fd *FD, buf []byte) (int, error) {
	var ptr unsafe.Pointer
	if len(buf) > 0 {
		ptr = unsafe.Pointer(&buf[0])
	}

	r1, _, errNo := unix.Syscall(unix.SYS_WRITE, uintptr(fd.raw), uintptr(ptr), uintptr(len(buf)))
	runtime.KeepAlive(buf)

	if errNo != 0 {
		return 0, errors.Wrapf(wrappedErrno{errNo}, "write fd %s", fd)
	}

	return int(r1), nil
}

// WriteAll writes buf to fd, retrying partial writes.
//
// EINTR restarts the write. EAGAIN from a non-blocking descriptor waits
// until the descriptor is writable again.
func WriteAll(fd *FD, buf []byte) error {
	return writeAll(fd, buf, Write)
}

func writeAll(fd *FD, buf []byte, write func(*FD, []byte) (int, error)) error {
	want := len(buf)
	for len(buf) > 0 {
		n, err := write(fd, buf)
		switch {
		case errors.Is(err, unix.EINTR):
			continue

		case errors.Is(err, unix.EAGAIN):
			if err := unix.WaitWritable(fd.raw); err != nil && !errors.Is(err, unix.EINTR) {
				return errors.Wrapf(err, "wait for fd %s", fd)
			}
			continue

		case err != nil:
			return err
		}

		if n == 0 {
			return &ShortWriteError{Written: want - len(buf), Want: want}
		}

		buf = buf[n:]
	}

	return nil
}

// ShortWriteError is returned when the kernel stops accepting bytes before
// the whole buffer was written.
type ShortWriteError struct {
	Written, Want int
}

func (swe *ShortWriteError) Error() string {
	return fmt.Sprintf("short write: %d of %d bytes", swe.Written, swe.Want)
}

// wrappedErrno wraps syscall.Errno to prevent direct comparisons with
// syscall.E* or unix.E* constants.
//
// You should never export an error of this type.
type wrappedErrno struct {
	syscall.Errno
}

func (we wrappedErrno) Unwrap() error {
	return we.Errno
}
