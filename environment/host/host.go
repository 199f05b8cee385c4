package host

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vzhukovs/podman-desktop-sub003/cli"
	"github.com/vzhukovs/podman-desktop-sub003/environment"
)

// New creates a new host environment.
func New() environment.HostActions {
	return &hostEnv{}
}

var _ environment.HostActions = (*hostEnv)(nil)

type hostEnv struct {
	env []string
}

func (h hostEnv) WithEnv(env ...string) environment.HostActions {
	var newHost hostEnv
	// use current and new env vars
	newHost.env = append(newHost.env, h.env...)
	newHost.env = append(newHost.env, env...)
	return newHost
}

func (h hostEnv) Exec(ctx context.Context, command string, args ...string) (environment.Result, error) {
	if command == "" {
		return environment.Result{}, errors.New("command not specified")
	}

	cmd := cli.Command(ctx, command, args...)
	cmd.Env = append(os.Environ(), h.env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	commandLine := strings.Join(append([]string{command}, args...), " ")
	logrus.Tracef("cmd: %s", commandLine)

	err := cmd.Run()
	if cli.Settings.Verbose {
		logrus.Debugf("%s: stdout=%q stderr=%q", commandLine, stdout.String(), stderr.String())
	}
	if err == nil {
		return environment.Result{
			Command: commandLine,
			Stdout:  stdout.String(),
			Stderr:  stderr.String(),
		}, nil
	}

	execErr := &environment.ExecError{
		Command:  commandLine,
		ExitCode: environment.ExitCodeNotStarted,
		Stderr:   stderr.String(),
		Err:      err,
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		execErr.ExitCode = exitErr.ExitCode()
	}
	return environment.Result{}, execErr
}
