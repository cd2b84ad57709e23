//go:build !(linux && amd64)

package trace

import (
	"context"
	"fmt"

	"github.com/sysdemo/writedirect/internal"
)

// Trace runs argv under ptrace and records the system calls of its main
// thread until it exits.
//
// Only linux/amd64 is supported.
func Trace(ctx context.Context, argv []string, opts *Options) (*Result, error) {
	return nil, fmt.Errorf("trace: %w", internal.ErrNotSupportedOnOS)
}
