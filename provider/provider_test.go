package provider

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vzhukovs/podman-desktop-sub003/binary"
	"github.com/vzhukovs/podman-desktop-sub003/check"
	"github.com/vzhukovs/podman-desktop-sub003/config"
	"github.com/vzhukovs/podman-desktop-sub003/store"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "podmanctl-provider-test")
	if err != nil {
		panic(err)
	}
	os.Setenv(config.EnvHome, dir)

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

type fakeCache struct {
	info        *binary.Info
	invalidated int
}

func (f *fakeCache) BinaryInfo(context.Context) *binary.Info { return f.info }
func (f *fakeCache) Invalidate() { f.invalidated++ }

type memoryHandle struct {
	opts     Options
	disposed bool
}

func (m *memoryHandle) Options() Options { return m.opts }
func (m *memoryHandle) Dispose() { m.disposed = true }

type memoryRegistry struct {
	handles []*memoryHandle
	err     error
}

func (m *memoryRegistry) CreateProvider(opts Options) (Handle, error) {
	if m.err != nil {
		return nil, m.err
	}
	h := &memoryHandle{opts: opts}
	m.handles = append(m.handles, h)
	return h, nil
}

func detection() []check.Check {
	return []check.Check{check.NewFunc("Podman version 5.2.0 or newer", func(context.Context) (*check.Result, error) {
		return check.Success(), nil
	})}
}

func TestController_Lifecycle(t *testing.T) {
	reg := &memoryRegistry{}
	c := NewController(&fakeCache{info: &binary.Info{Version: "5.2.1"}}, reg, detection())

	_, err := c.Provider()
	assert.ErrorIs(t, err, ErrNotInitialized)

	require.NoError(t, c.Init(context.Background()))
	h, err := c.Provider()
	require.NoError(t, err)
	assert.Same(t, reg.handles[0], h)

	opts := h.Options()
	assert.Equal(t, "Podman", opts.Name)
	assert.Equal(t, "podman", opts.ID)
	assert.Equal(t, StatusInstalled, opts.Status)
	assert.Equal(t, "5.2.1", opts.Version)
	assert.Len(t, opts.DetectionChecks, 1)
	assert.NotEmpty(t, opts.Links)
	assert.NotEmpty(t, opts.EmptyConnectionMarkdownDescription)

	c.Dispose()
	assert.True(t, reg.handles[0].disposed)
	_, err = c.Provider()
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestController_NotInstalled(t *testing.T) {
	reg := &memoryRegistry{}
	c := NewController(&fakeCache{}, reg, detection())

	require.NoError(t, c.Init(context.Background()))
	h, err := c.Provider()
	require.NoError(t, err)
	assert.Equal(t, StatusNotInstalled, h.Options().Status)
	assert.Empty(t, h.Options().Version)
}

func TestController_InitError(t *testing.T) {
	c := NewController(&fakeCache{}, &memoryRegistry{err: errors.New("registry closed")}, nil)

	assert.Error(t, c.Init(context.Background()))
	_, err := c.Provider()
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestController_InitTwice(t *testing.T) {
	reg := &memoryRegistry{}
	c := NewController(&fakeCache{info: &binary.Info{Version: "5.2.1"}}, reg, detection())
	ctx := context.Background()

	require.NoError(t, c.Init(ctx))
	require.NoError(t, c.Init(ctx))
	require.Len(t, reg.handles, 2)
	assert.True(t, reg.handles[0].disposed)

	h, err := c.Provider()
	require.NoError(t, err)
	assert.Same(t, reg.handles[1], h)

	c.Dispose()
	for _, h := range reg.handles {
		assert.True(t, h.disposed)
	}
}

func TestController_Refresh(t *testing.T) {
	cache := &fakeCache{}
	reg := &memoryRegistry{}
	c := NewController(cache, reg, detection())
	ctx := context.Background()

	assert.ErrorIs(t, c.Refresh(ctx), ErrNotInitialized)
	assert.Equal(t, 1, cache.invalidated)

	require.NoError(t, c.Init(ctx))
	cache.info = &binary.Info{Version: "5.2.0"}
	require.NoError(t, c.Refresh(ctx))
	assert.Equal(t, 2, cache.invalidated)

	require.Len(t, reg.handles, 2)
	assert.True(t, reg.handles[0].disposed)
	h, err := c.Provider()
	require.NoError(t, err)
	assert.Equal(t, StatusInstalled, h.Options().Status)
}

func TestStoreRegistry(t *testing.T) {
	r := NewStoreRegistry()
	c := NewController(&fakeCache{info: &binary.Info{Version: "5.2.0"}}, r, detection())
	ctx := context.Background()

	require.NoError(t, c.Init(ctx))

	s, err := store.Load()
	require.NoError(t, err)
	p, ok := s.Providers[ID]
	require.True(t, ok)
	assert.Equal(t, "installed", p.Status)
	assert.Equal(t, "5.2.0", p.Version)
	assert.Equal(t, []string{"Podman version 5.2.0 or newer"}, p.DetectionChecks)

	// duplicate registration is refused
	_, err = r.CreateProvider(Options{ID: ID})
	assert.Error(t, err)

	_, err = r.CreateProvider(Options{})
	assert.Error(t, err)

	c.Dispose()
	s, err = store.Load()
	require.NoError(t, err)
	assert.NotContains(t, s.Providers, ID)

	// can be registered again once disposed
	require.NoError(t, c.Init(ctx))
	// and initialized again while registered
	require.NoError(t, c.Init(ctx))
	s, err = store.Load()
	require.NoError(t, err)
	assert.Contains(t, s.Providers, ID)

	c.Dispose()
	s, err = store.Load()
	require.NoError(t, err)
	assert.NotContains(t, s.Providers, ID)
}
