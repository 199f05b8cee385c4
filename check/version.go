package check

import (
	"context"
	"fmt"

	"github.com/coreos/go-semver/semver"
	"github.com/vzhukovs/podman-desktop-sub003/binary"
	"github.com/vzhukovs/podman-desktop-sub003/util"
)

// MinimumVersion returns a check that passes if the installed binary
// version is at or above minimum.
// Pre-releases pass once the version numbers reach the minimum e.g. 5.2.0-dev passes for 5.2.0.
func MinimumVersion(src binary.Source, minimum string, links ...DocLink) Check {
	title := fmt.Sprintf("Podman version %s or newer", minimum)
	return NewFunc(title, func(ctx context.Context) (*Result, error) {
		required, err := util.ParseVersion(minimum)
		if err != nil {
			return nil, fmt.Errorf("invalid minimum version: %w", err)
		}

		info := src.BinaryInfo(ctx)
		if info == nil {
			return Failure(fmt.Sprintf("Podman is not installed, version %s or newer is required.", minimum), links...), nil
		}

		installed, err := util.ParseVersion(info.Version)
		if err != nil {
			return Failure(fmt.Sprintf("Cannot determine the installed Podman version %q, version %s or newer is required.", info.Version, minimum), links...), nil
		}

		if !atLeast(*installed, *required) {
			return Failure(fmt.Sprintf("Podman %s is installed, version %s or newer is required.", info.Version, minimum), links...), nil
		}
		return Success(), nil
	})
}

// Installed returns a check that passes if the binary is installed.
func Installed(src binary.Source, links ...DocLink) Check {
	return NewFunc("Podman is installed", func(ctx context.Context) (*Result, error) {
		if src.BinaryInfo(ctx) == nil {
			return Failure("Podman is not installed, it must be installed before it can be updated.", links...), nil
		}
		return Success(), nil
	})
}

// VersionFunc retrieves a version.
type VersionFunc func(ctx context.Context) (string, error)

// OSVersion returns a check that passes if the version returned by current
// is at or above minimum.
func OSVersion(title string, current VersionFunc, minimum string, links ...DocLink) Check {
	return NewFunc(title, func(ctx context.Context) (*Result, error) {
		required, err := util.ParseVersion(minimum)
		if err != nil {
			return nil, fmt.Errorf("invalid minimum version: %w", err)
		}

		v, err := current(ctx)
		if err != nil {
			return nil, err
		}
		ver, err := util.ParseVersion(v)
		if err != nil {
			return nil, err
		}

		if !atLeast(*ver, *required) {
			return Failure(fmt.Sprintf("Version %s is not supported, %s or newer is required.", v, minimum), links...), nil
		}
		return Success(), nil
	})
}

// atLeast compares the version numbers of v against required, pre-release and metadata are ignored.
func atLeast(v, required semver.Version) bool {
	v.PreRelease = ""
	v.Metadata = ""
	return !v.LessThan(required)
}
