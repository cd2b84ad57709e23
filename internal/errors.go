package internal

import (
	"bytes"
	"errors"
)

// ErrNotSupportedOnOS is returned by operations that need a Linux kernel.
var ErrNotSupportedOnOS = errors.New("not supported on this operating system")

// CString turns a NUL / zero terminated byte buffer into a string.
func CString(in []byte) string {
	inLen := bytes.IndexByte(in, 0)
	if inLen == -1 {
		return ""
	}
	return string(in[:inLen])
}
