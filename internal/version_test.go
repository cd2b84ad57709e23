package internal

import (
	"runtime"
	"testing"

	"github.com/go-quicktest/qt"
)

func TestVersion(t *testing.T) {
	a, err := NewVersion("1.2")
	if err != nil {
		t.Fatal(err)
	}

	b, err := NewVersion("2.2.1")
	if err != nil {
		t.Fatal(err)
	}

	if !a.Less(b) {
		t.Error("A should be less than B")
	}

	if b.Less(a) {
		t.Error("B shouldn't be less than A")
	}

	v200 := Version{2, 0, 0}
	if !a.Less(v200) {
		t.Error("1.2.1 should not be less than 2.0.0")
	}

	if v200.Less(a) {
		t.Error("2.0.0 should not be less than 1.2.1")
	}

	qt.Assert(t, qt.Equals(a.String(), "v1.2"))
	qt.Assert(t, qt.Equals(b.String(), "v2.2.1"))

	_, err = NewVersion("foo")
	qt.Assert(t, qt.IsNotNil(err))
}

func TestVersionDetection(t *testing.T) {
	var tests = []struct {
		name string
		s    string
		v    Version
		err  bool
	}{
		{"debian uname release (missing patch)", "4.19.0-5-amd64", Version{4, 19, 0}, false},
		{"debian custom uname version", "#1577309 SMP Thu Dec 31 08:32:02 UTC 2020", Version{}, true},
		{"ovh uname release (missing patch)", "4.19-ovh-xxxx-std-ipv6-64", Version{4, 19, 0}, false},
		{"arch uname version", "#1 SMP PREEMPT Thu, 11 Mar 2021 21:27:06 +0000", Version{}, true},
		{"arch uname release", "5.5.10-arch1-1", Version{5, 5, 10}, false},
		{"alpine uname release", "4.14.167-0-virt", Version{4, 14, 167}, false},
		{"fedora uname release", "5.0.16-100.fc28.x86_64", Version{5, 0, 16}, false},
		{"centos8 uname release", "4.18.0-240.15.1.el8_3.x86_64", Version{4, 18, 0}, false},
		{"firecracker release", "6.18.44-fc-v139", Version{6, 18, 44}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := findKernelVersion(tt.s)
			if err != nil {
				if !tt.err {
					t.Error("unexpected error:", err)
				}
				return
			}

			if tt.err {
				t.Error("expected error, but got none")
			}

			if v != tt.v {
				t.Errorf("unexpected version for string '%s'. got: %v, want: %v", tt.s, v, tt.v)
			}
		})
	}
}

func TestKernelVersion(t *testing.T) {
	v, err := KernelVersion()
	if runtime.GOOS != "linux" {
		qt.Assert(t, qt.ErrorIs(err, ErrNotSupportedOnOS))
		return
	}
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsFalse(v.Unspecified()))
}
