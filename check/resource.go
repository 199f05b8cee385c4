package check

import (
	"context"
	"fmt"
	"runtime"

	"github.com/docker/go-units"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// host resource readers, swapped in tests.
var (
	cpuCount = func(ctx context.Context) (int, error) {
		return cpu.CountsWithContext(ctx, true)
	}
	totalMemory = func(ctx context.Context) (uint64, error) {
		v, err := mem.VirtualMemoryWithContext(ctx)
		if err != nil {
			return 0, err
		}
		return v.Total, nil
	}
	freeDisk = func(ctx context.Context, path string) (uint64, error) {
		u, err := disk.UsageWithContext(ctx, path)
		if err != nil {
			return 0, err
		}
		return u.Free, nil
	}
	goArch = runtime.GOARCH
)

// CPUCores returns a check that passes if the host has at least n logical CPUs.
func CPUCores(n int) Check {
	return NewFunc(fmt.Sprintf("At least %d CPU cores", n), func(ctx context.Context) (*Result, error) {
		count, err := cpuCount(ctx)
		if err != nil {
			return nil, fmt.Errorf("error retrieving CPU count: %w", err)
		}
		if count < n {
			return Failure(fmt.Sprintf("You need at least %d CPU cores to run Podman, found %d.", n, count)), nil
		}
		return Success(), nil
	})
}

// Memory returns a check that passes if the host has at least size bytes of memory.
func Memory(size uint64) Check {
	return NewFunc(fmt.Sprintf("At least %s of memory", units.BytesSize(float64(size))), func(ctx context.Context) (*Result, error) {
		total, err := totalMemory(ctx)
		if err != nil {
			return nil, fmt.Errorf("error retrieving memory size: %w", err)
		}
		if total < size {
			return Failure(fmt.Sprintf("You need at least %s of memory to run Podman, found %s.",
				units.BytesSize(float64(size)), units.BytesSize(float64(total)))), nil
		}
		return Success(), nil
	})
}

// DiskSpace returns a check that passes if the filesystem of path has at least size bytes free.
func DiskSpace(path string, size uint64) Check {
	return NewFunc(fmt.Sprintf("At least %s of free disk space", units.BytesSize(float64(size))), func(ctx context.Context) (*Result, error) {
		free, err := freeDisk(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("error retrieving free disk space of '%s': %w", path, err)
		}
		if free < size {
			return Failure(fmt.Sprintf("You need at least %s of free disk space to run Podman, found %s.",
				units.BytesSize(float64(size)), units.BytesSize(float64(free)))), nil
		}
		return Success(), nil
	})
}

// Arch64 returns a check that passes on 64-bit hosts.
func Arch64(links ...DocLink) Check {
	return NewFunc("64-bit system", func(context.Context) (*Result, error) {
		switch goArch {
		case "amd64", "arm64":
			return Success(), nil
		}
		return Failure("Podman requires a 64-bit system.", links...), nil
	})
}
