package environment

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Result is the captured output of a command that exited successfully.
type Result struct {
	Command string
	Stdout  string
	Stderr  string
}

// Executor runs commands.
type Executor interface {
	// Exec runs command and captures its output.
	// A non-zero exit or a failure to start the command returns an *ExecError.
	Exec(ctx context.Context, command string, args ...string) (Result, error)
}

// HostActions are actions performed on the host.
type HostActions interface {
	Executor
	// WithEnv creates a new instance based on the current instance
	// with the specified environment variables.
	WithEnv(env ...string) HostActions
}

// ExitCodeNotStarted is the exit code reported for commands that could not be started.
const ExitCodeNotStarted = -1

// ExecError is the error returned when a command fails.
type ExecError struct {
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ExecError) Error() string {
	msg := fmt.Sprintf("'%s' failed", e.Command)
	if e.ExitCode != ExitCodeNotStarted {
		msg = fmt.Sprintf("'%s' exited with code %d", e.Command, e.ExitCode)
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		return msg + ": " + stderr
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *ExecError) Unwrap() error { return e.Err }

// ExitCode returns the exit code carried by err.
// ok is false if err is not an *ExecError.
func ExitCode(err error) (code int, ok bool) {
	var execErr *ExecError
	if errors.As(err, &execErr) {
		return execErr.ExitCode, true
	}
	return 0, false
}

// Arch is the host architecture.
type Arch string

const (
	X8664   Arch = "x86_64"
	AARCH64 Arch = "aarch64"
)

// HostArch returns the architecture of the host.
func HostArch() Arch { return Arch(runtime.GOARCH).Value() }

// Value converts the underlying architecture alias value to one of X8664 or AARCH64.
func (a Arch) Value() Arch {
	switch a {
	case X8664, AARCH64:
		return a
	// accept amd, amd64, x86, x64, arm, arm64 and m1 values
	case "amd", "amd64", "x86", "x64":
		return X8664
	case "arm", "arm64", "m1":
		return AARCH64
	}

	return "default"
}
