package util

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/coreos/go-semver/semver"
)

// MacOS returns if the current OS is macOS.
func MacOS() bool {
	return runtime.GOOS == "darwin"
}

// Windows returns if the current OS is Windows.
func Windows() bool {
	return runtime.GOOS == "windows"
}

// ParseVersion parses a version string leniently.
// The leading "v" is ignored and missing minor and patch components are
// treated as zero e.g. "v5.2" is parsed as "5.2.0".
func ParseVersion(version string) (*semver.Version, error) {
	v := strings.TrimPrefix(strings.TrimSpace(version), "v")

	// pre-release and build metadata are not padded
	core, rest := v, ""
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		core, rest = v[:i], v[i:]
	}
	if core == "" {
		return nil, fmt.Errorf("invalid version %q", version)
	}
	for strings.Count(core, ".") < 2 {
		core += ".0"
	}

	ver, err := semver.NewVersion(core + rest)
	if err != nil {
		return nil, fmt.Errorf("invalid version %q: %w", version, err)
	}
	return ver, nil
}
