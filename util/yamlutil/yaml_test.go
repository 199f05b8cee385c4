package yamlutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatten(t *testing.T) {
	doc := `
podman:
  binary:
    path: /opt/podman/bin/podman
installer:
  silent: true
  assets:
    dir: ""
tags: [a, b]
`
	vals, err := Flatten([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"podman.binary.path":   "/opt/podman/bin/podman",
		"installer.silent":     true,
		"installer.assets.dir": "",
		"tags":                 []any{"a", "b"},
	}, vals)
}

func TestFlatten_Empty(t *testing.T) {
	vals, err := Flatten(nil)
	require.NoError(t, err)
	assert.Empty(t, vals)
}

func TestFlatten_Invalid(t *testing.T) {
	_, err := Flatten([]byte("- just\n- a list\n"))
	assert.Error(t, err)

	_, err = Flatten([]byte("podman: [unclosed"))
	assert.Error(t, err)
}

func TestEncode_RoundTrip(t *testing.T) {
	vals := map[string]any{
		"podman.binary.path":   "podman --remote",
		"installer.silent":     false,
		"installer.assets.dir": "/tmp/assets",
	}

	b, err := Encode(vals)
	require.NoError(t, err)

	got, err := Flatten(b)
	require.NoError(t, err)
	assert.Equal(t, vals, got)
}

func TestEncode_Conflict(t *testing.T) {
	_, err := Encode(map[string]any{
		"podman":             "value",
		"podman.binary.path": "podman",
	})
	assert.Error(t, err)
}

func TestSave(t *testing.T) {
	file := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, Save(map[string]any{"podman.binary.path": "podman"}, file))

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "podman:\n  binary:\n    path: podman\n", string(b))
}
