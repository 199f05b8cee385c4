package check

import (
	"context"
	"errors"
	"testing"

	"github.com/docker/go-units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCPUCores(t *testing.T) {
	orig := cpuCount
	defer func() { cpuCount = orig }()
	ctx := context.Background()

	cpuCount = func(context.Context) (int, error) { return 8, nil }
	res, err := CPUCores(4).Execute(ctx)
	require.NoError(t, err)
	assert.True(t, res.Successful)

	cpuCount = func(context.Context) (int, error) { return 2, nil }
	res, err = CPUCores(4).Execute(ctx)
	require.NoError(t, err)
	assert.False(t, res.Successful)
	assert.Contains(t, res.Description, "4 CPU cores")

	cpuCount = func(context.Context) (int, error) { return 0, errors.New("unsupported") }
	_, err = CPUCores(4).Execute(ctx)
	assert.Error(t, err)
}

func TestMemory(t *testing.T) {
	orig := totalMemory
	defer func() { totalMemory = orig }()
	ctx := context.Background()

	totalMemory = func(context.Context) (uint64, error) { return 8 * units.GiB, nil }
	res, err := Memory(4 * units.GiB).Execute(ctx)
	require.NoError(t, err)
	assert.True(t, res.Successful)

	totalMemory = func(context.Context) (uint64, error) { return 2 * units.GiB, nil }
	c := Memory(4 * units.GiB)
	assert.Equal(t, "At least 4GiB of memory", c.Title())
	res, err = c.Execute(ctx)
	require.NoError(t, err)
	assert.False(t, res.Successful)
	assert.Contains(t, res.Description, "4GiB")
	assert.Contains(t, res.Description, "2GiB")
}

func TestDiskSpace(t *testing.T) {
	orig := freeDisk
	defer func() { freeDisk = orig }()
	ctx := context.Background()

	var gotPath string
	freeDisk = func(_ context.Context, path string) (uint64, error) {
		gotPath = path
		return 5 * units.GiB, nil
	}
	res, err := DiskSpace("/Users/test", 10*units.GiB).Execute(ctx)
	require.NoError(t, err)
	assert.False(t, res.Successful)
	assert.Equal(t, "/Users/test", gotPath)

	freeDisk = func(context.Context, string) (uint64, error) { return 50 * units.GiB, nil }
	res, err = DiskSpace("/Users/test", 10*units.GiB).Execute(ctx)
	require.NoError(t, err)
	assert.True(t, res.Successful)
}

func TestArch64(t *testing.T) {
	orig := goArch
	defer func() { goArch = orig }()
	ctx := context.Background()

	for arch, want := range map[string]bool{"amd64": true, "arm64": true, "386": false, "arm": false} {
		goArch = arch
		res, err := Arch64().Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, res.Successful, arch)
	}
}
