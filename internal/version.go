package internal

import (
	"fmt"
	"regexp"
	"strconv"
)

// A Version in the form Major.Minor.Patch.
type Version [3]uint16

// NewVersion creates a version from a string like "Major.Minor.Patch".
//
// Patch is optional.
func NewVersion(ver string) (Version, error) {
	var major, minor, patch uint16
	n, _ := fmt.Sscanf(ver, "%d.%d.%d", &major, &minor, &patch)
	if n < 2 {
		return Version{}, fmt.Errorf("invalid version: %s", ver)
	}
	return Version{major, minor, patch}, nil
}

func (v Version) String() string {
	if v[2] == 0 {
		return fmt.Sprintf("v%d.%d", v[0], v[1])
	}
	return fmt.Sprintf("v%d.%d.%d", v[0], v[1], v[2])
}

// Less returns true if the version is less than another version.
func (v Version) Less(other Version) bool {
	for i, a := range v {
		if a == other[i] {
			continue
		}
		return a < other[i]
	}
	return false
}

// Unspecified returns true if the version is all zero.
func (v Version) Unspecified() bool {
	return v[0] == 0 && v[1] == 0 && v[2] == 0
}

// Distributions put the upstream version in different places, but the
// release string always starts with major.minor and usually has a patch.
var releaseRegex = regexp.MustCompile(`^(\d+)\.(\d+)(?:\.(\d+))?`)

// findKernelVersion extracts a Version from a uname release string such as
// "5.5.10-arch1-1" or "4.19-ovh-xxxx-std-ipv6-64".
func findKernelVersion(release string) (Version, error) {
	parts := releaseRegex.FindStringSubmatch(release)
	if parts == nil {
		return Version{}, fmt.Errorf("no kernel version in release %q", release)
	}

	var v Version
	for i, part := range parts[1:] {
		if part == "" {
			continue
		}
		n, err := strconv.ParseUint(part, 10, 16)
		if err != nil {
			return Version{}, fmt.Errorf("release %q: %w", release, err)
		}
		v[i] = uint16(n)
	}
	return v, nil
}
