package util

import (
	"context"
	"fmt"
	"strings"

	"github.com/vzhukovs/podman-desktop-sub003/environment"
)

// MacOSProductVersion returns the host's macOS version.
func MacOSProductVersion(ctx context.Context, exec environment.Executor) (string, error) {
	if !MacOS() {
		return "", fmt.Errorf("not macOS")
	}

	// output is like "12.3.1\n"
	res, err := exec.Exec(ctx, "sw_vers", "-productVersion")
	if err != nil {
		return "", fmt.Errorf("error retrieving macOS version: %w", err)
	}

	// macOS 12.4 returns just "12.4\n", padded when parsed
	ver, err := ParseVersion(res.Stdout)
	if err != nil {
		return "", fmt.Errorf("failed to parse macOS version %q: %w", strings.TrimSpace(res.Stdout), err)
	}
	return ver.String(), nil
}
