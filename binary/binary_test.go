package binary

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vzhukovs/podman-desktop-sub003/config"
	"github.com/vzhukovs/podman-desktop-sub003/environment"
)

type fakeExec struct {
	sync.Mutex
	calls  [][]string
	stdout string
	err    error
}

func (f *fakeExec) Exec(_ context.Context, command string, args ...string) (environment.Result, error) {
	f.Lock()
	defer f.Unlock()
	f.calls = append(f.calls, append([]string{command}, args...))
	if f.err != nil {
		return environment.Result{}, f.err
	}
	return environment.Result{Command: command, Stdout: f.stdout}, nil
}

func (f *fakeExec) count() int {
	f.Lock()
	defer f.Unlock()
	return len(f.calls)
}

type fakeSettings struct {
	values    map[string]any
	listeners []config.Listener
	disposed  int
}

func (f *fakeSettings) Get(key string) (any, bool) {
	v, ok := f.values[key]
	return v, ok
}

func (f *fakeSettings) Update(key string, value any) error {
	f.values[key] = value
	return nil
}

func (f *fakeSettings) OnDidChangeConfiguration(l config.Listener) config.Subscription {
	f.listeners = append(f.listeners, l)
	return disposeFunc(func() { f.disposed++ })
}

func (f *fakeSettings) fire(ev config.ChangeEvent) {
	for _, l := range f.listeners {
		l(ev)
	}
}

type disposeFunc func()

func (d disposeFunc) Dispose() { d() }

type affects bool

func (a affects) AffectsConfiguration(string) bool { return bool(a) }

func TestProbe_Version(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		command string
		stdout  string
		want    string
		args    []string
		wantErr bool
	}{
		{name: "plain", command: "podman", stdout: "podman version 5.2.1\n", want: "5.2.1", args: []string{"podman", "--version"}},
		{name: "path with args", command: "/opt/podman/bin/podman --remote", stdout: "podman version 5.3.0-dev", want: "5.3.0-dev", args: []string{"/opt/podman/bin/podman", "--remote", "--version"}},
		{name: "quoted path", command: `"/Applications/My Tools/podman"`, stdout: "podman.exe version 4.9.4\r\n", want: "4.9.4", args: []string{"/Applications/My Tools/podman", "--version"}},
		{name: "empty command", command: "  ", wantErr: true},
		{name: "empty output", command: "podman", stdout: "\n", wantErr: true, args: []string{"podman", "--version"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fakeExec{stdout: tt.stdout}
			got, err := NewProbe(f).Version(ctx, tt.command)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			if tt.args != nil {
				require.Len(t, f.calls, 1)
				assert.Equal(t, tt.args, f.calls[0])
			} else {
				assert.Empty(t, f.calls)
			}
		})
	}
}

func TestProbe_VersionError(t *testing.T) {
	execErr := &environment.ExecError{Command: "podman --version", ExitCode: 127}
	_, err := NewProbe(&fakeExec{err: execErr}).Version(context.Background(), "podman")
	assert.ErrorIs(t, err, execErr)
}

func TestCache_Memoization(t *testing.T) {
	f := &fakeExec{stdout: "podman version 5.2.0"}
	c := NewCache(NewProbe(f), nil, nil)
	ctx := context.Background()

	first := c.BinaryInfo(ctx)
	second := c.BinaryInfo(ctx)

	require.NotNil(t, first)
	assert.Equal(t, "5.2.0", first.Version)
	assert.Same(t, first, second)
	assert.Equal(t, 1, f.count())
}

func TestCache_Invalidate(t *testing.T) {
	f := &fakeExec{stdout: "podman version 5.2.0"}
	c := NewCache(NewProbe(f), nil, nil)
	ctx := context.Background()

	c.BinaryInfo(ctx)
	c.Invalidate()
	info := c.BinaryInfo(ctx)

	require.NotNil(t, info)
	assert.Equal(t, "5.2.0", info.Version)
	assert.Equal(t, 2, f.count())
}

func TestCache_ProbeFailure(t *testing.T) {
	f := &fakeExec{err: errors.New("exec: \"podman\": executable file not found in $PATH")}
	c := NewCache(NewProbe(f), nil, nil)
	ctx := context.Background()

	assert.Nil(t, c.BinaryInfo(ctx))
	// failures are not cached
	assert.Nil(t, c.BinaryInfo(ctx))
	assert.Equal(t, 2, f.count())
}

func TestCache_ConfiguredCommand(t *testing.T) {
	f := &fakeExec{stdout: "podman version 5.2.0"}
	s := &fakeSettings{values: map[string]any{config.KeyBinaryPath: " /opt/podman/bin/podman "}}
	c := NewCache(NewProbe(f), s, s)

	c.BinaryInfo(context.Background())
	require.Len(t, f.calls, 1)
	assert.Equal(t, "/opt/podman/bin/podman --version", strings.Join(f.calls[0], " "))

	s.values[config.KeyBinaryPath] = ""
	assert.Equal(t, DefaultCommand, c.Command())
}

func TestCache_SelectiveInvalidation(t *testing.T) {
	f := &fakeExec{stdout: "podman version 5.2.0"}
	s := &fakeSettings{values: map[string]any{}}
	c := NewCache(NewProbe(f), s, s)
	c.Init()
	ctx := context.Background()

	c.BinaryInfo(ctx)
	assert.Equal(t, 1, f.count())

	s.fire(affects(false))
	c.BinaryInfo(ctx)
	assert.Equal(t, 1, f.count())

	s.fire(affects(true))
	c.BinaryInfo(ctx)
	assert.Equal(t, 2, f.count())

	s.fire(config.KeysChanged{config.KeyInstallerSilent})
	c.BinaryInfo(ctx)
	assert.Equal(t, 2, f.count())

	s.fire(config.KeysChanged{config.KeyBinaryPath})
	c.BinaryInfo(ctx)
	assert.Equal(t, 3, f.count())
}

func TestCache_Dispose(t *testing.T) {
	s := &fakeSettings{values: map[string]any{}}
	c := NewCache(NewProbe(&fakeExec{}), s, s)

	c.Init()
	c.Dispose()
	assert.Equal(t, 1, s.disposed)

	// subsequent dispose is a no-op
	c.Dispose()
	assert.Equal(t, 1, s.disposed)
}
