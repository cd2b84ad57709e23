package sys

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestFD(t *testing.T) {
	_, err := NewFD(-1)
	qt.Assert(t, qt.ErrorIs(err, ErrClosedFd), qt.Commentf("negative fd should be rejected"))

	fd, err := NewFD(7)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(fd.Int(), 7))
	qt.Assert(t, qt.Equals(fd.String(), "7"))

	qt.Assert(t, qt.Equals(Stdout.Int(), 1))
}
