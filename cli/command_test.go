package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDryRun(t *testing.T) {
	defer DryRun(false)
	ctx := context.Background()

	DryRun(true)
	cmd := Command(ctx, "open", "-W", "/assets/podman-installer-macos-universal.pkg")
	assert.Equal(t, []string{"echo"}, cmd.Args)

	DryRun(false)
	cmd = Command(ctx, "podman", "--version")
	assert.Equal(t, []string{"podman", "--version"}, cmd.Args)
}

func TestDryRunFormat(t *testing.T) {
	got := dryRunCommandRunner{}.format("run:", "C:\\assets\\podman-setup.exe", "/install", "/norestart")
	assert.Equal(t, `run: "C:\\assets\\podman-setup.exe" "/install" "/norestart"`, got)
}
