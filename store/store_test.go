package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempStore(t *testing.T) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "store.json")
	orig := storeFile
	storeFile = func() string { return file }
	t.Cleanup(func() { storeFile = orig })
	return file
}

func TestSet(t *testing.T) {
	useTempStore(t)

	_, err := Load()
	assert.ErrorIs(t, err, os.ErrNotExist)

	now := time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, Set(func(s *Store) {
		s.Providers = map[string]Provider{
			"podman": {ID: "podman", Name: "Podman", Status: "installed", Version: "5.2.0", RegisteredAt: now},
		}
	}))
	require.NoError(t, Set(func(s *Store) {
		s.LastInstall = &Install{Operation: "install", Platform: "darwin", Successful: true, Time: now}
	}))

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "5.2.0", s.Providers["podman"].Version)
	assert.True(t, s.Providers["podman"].RegisteredAt.Equal(now))
	require.NotNil(t, s.LastInstall)
	assert.Equal(t, "install", s.LastInstall.Operation)
}

func TestSet_CorruptFile(t *testing.T) {
	file := useTempStore(t)
	require.NoError(t, os.WriteFile(file, []byte("{not json"), 0o644))

	_, err := Load()
	assert.Error(t, err)

	// a corrupt store is replaced
	require.NoError(t, Set(func(s *Store) {
		s.LastInstall = &Install{Operation: "update"}
	}))
	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "update", s.LastInstall.Operation)
}
