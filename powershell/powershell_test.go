package powershell

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vzhukovs/podman-desktop-sub003/environment"
)

type fakeExec struct {
	stdout string
	err    error
	args   []string
}

func (f *fakeExec) Exec(_ context.Context, command string, args ...string) (environment.Result, error) {
	f.args = append([]string{command}, args...)
	return environment.Result{Stdout: f.stdout}, f.err
}

func TestProbes(t *testing.T) {
	ctx := context.Background()

	type probe func(*Client, context.Context) bool
	probes := map[string]struct {
		fn    probe
		token string
	}{
		"IsUserAdmin":               {(*Client).IsUserAdmin, "True"},
		"IsRunningElevated":         {(*Client).IsRunningElevated, "True"},
		"IsHyperVInstalled":         {(*Client).IsHyperVInstalled, "True"},
		"IsHyperVRunning":           {(*Client).IsHyperVRunning, "Running"},
		"IsVirtualMachineAvailable": {(*Client).IsVirtualMachineAvailable, "Enabled"},
	}

	for name, p := range probes {
		t.Run(name, func(t *testing.T) {
			tests := []struct {
				stdout string
				err    error
				want   bool
			}{
				{stdout: p.token, want: true},
				{stdout: "\r\n" + p.token + "\r\n", want: true},
				{stdout: "False", want: false},
				{stdout: "Stopped", want: false},
				{stdout: "Disabled", want: false},
				{stdout: "", want: false},
				// case sensitive
				{stdout: "true", want: false},
				{stdout: "running", want: false},
				{stdout: p.token, err: errors.New("powershell.exe not found"), want: false},
			}

			for _, tt := range tests {
				f := &fakeExec{stdout: tt.stdout, err: tt.err}
				assert.Equal(t, tt.want, p.fn(New(f), ctx), "stdout=%q err=%v", tt.stdout, tt.err)
			}
		})
	}
}

func TestProbeArgs(t *testing.T) {
	f := &fakeExec{stdout: "True"}
	New(f).IsUserAdmin(context.Background())

	require.Len(t, f.args, 7)
	assert.Equal(t, []string{Command, "-NoProfile", "-NonInteractive", "-ExecutionPolicy", "Bypass", "-Command"}, f.args[:6])
	assert.Equal(t, scriptIsUserAdmin, f.args[6])
}
