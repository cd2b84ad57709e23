package internal

import (
	"sync"

	"golang.org/x/sys/unix"
)

var kernelVersion = sync.OnceValues(func() (Version, error) {
	var uname unix.Utsname
	if err := unix.Uname(&uname); err != nil {
		return Version{}, err
	}
	return findKernelVersion(CString(uname.Release[:]))
})

// KernelVersion returns the version of the running kernel.
func KernelVersion() (Version, error) {
	return kernelVersion()
}
