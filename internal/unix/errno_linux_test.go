package unix

import (
	"testing"

	"github.com/go-quicktest/qt"
	"golang.org/x/sys/unix"
)

func TestErrnoIsUnix(t *testing.T) {
	qt.Assert(t, qt.ErrorIs(EBADF, unix.EBADF))
	qt.Assert(t, qt.ErrorIs(EPIPE, unix.EPIPE))
	qt.Assert(t, qt.ErrorIs(EINTR, unix.EINTR))
	qt.Assert(t, qt.ErrorIs(EAGAIN, unix.EAGAIN))
}

func TestPipeRoundTrip(t *testing.T) {
	var p [2]int
	qt.Assert(t, qt.IsNil(Pipe2(p[:], O_CLOEXEC)))
	defer Close(p[0])
	defer Close(p[1])

	r1, _, errno := Syscall(SYS_WRITE, uintptr(p[1]), 0, 0)
	qt.Assert(t, qt.Equals(errno, unix.Errno(0)))
	qt.Assert(t, qt.Equals(r1, uintptr(0)))

	qt.Assert(t, qt.IsNil(WaitWritable(p[1])))
}
