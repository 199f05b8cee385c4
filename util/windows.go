package util

import (
	"context"
	"fmt"
	"regexp"

	"github.com/shirou/gopsutil/v3/host"
)

// kernelVersion is swapped in tests.
var kernelVersion = host.KernelVersionWithContext

// e.g. "10.0.19045 Build 19045.3803"
var windowsBuildRegex = regexp.MustCompile(`^\d+\.\d+\.(\d+)`)

// WindowsBuild returns the build number of the host's Windows release e.g. "19045".
func WindowsBuild(ctx context.Context) (string, error) {
	if !Windows() {
		return "", fmt.Errorf("not Windows")
	}

	v, err := kernelVersion(ctx)
	if err != nil {
		return "", fmt.Errorf("error retrieving Windows version: %w", err)
	}
	return parseWindowsBuild(v)
}

func parseWindowsBuild(kernel string) (string, error) {
	m := windowsBuildRegex.FindStringSubmatch(kernel)
	if len(m) < 2 {
		return "", fmt.Errorf("cannot parse Windows build from %q", kernel)
	}
	return m[1], nil
}
