//go:build !linux

package internal

import "fmt"

// KernelVersion returns the version of the running kernel.
func KernelVersion() (Version, error) {
	return Version{}, fmt.Errorf("kernel version: %w", ErrNotSupportedOnOS)
}
