package binary

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/shlex"
	"github.com/vzhukovs/podman-desktop-sub003/environment"
)

// VersionArg is the argument passed to the binary to print its version.
const VersionArg = "--version"

// Probe runs the binary to retrieve its version.
type Probe struct {
	exec environment.Executor
}

// NewProbe creates a Probe that runs commands with exec.
func NewProbe(exec environment.Executor) *Probe {
	return &Probe{exec: exec}
}

// Version runs `<command> --version` and returns the trailing token of the output.
// command may include leading arguments e.g. `podman --remote`.
//
// Errors from the process are returned as-is.
func (p Probe) Version(ctx context.Context, command string) (string, error) {
	args, err := shlex.Split(command)
	if err != nil {
		return "", fmt.Errorf("invalid binary command '%s': %w", command, err)
	}
	if len(args) == 0 {
		return "", fmt.Errorf("binary command not specified")
	}

	args = append(args, VersionArg)
	res, err := p.exec.Exec(ctx, args[0], args[1:]...)
	if err != nil {
		return "", err
	}

	return parseVersion(res.Stdout)
}

// parseVersion returns the last whitespace delimited token of out.
// e.g. `podman version 5.2.1` returns `5.2.1`.
func parseVersion(out string) (string, error) {
	fields := strings.Fields(out)
	if len(fields) == 0 {
		return "", fmt.Errorf("empty version output")
	}
	return fields[len(fields)-1], nil
}
