package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeysChanged_AffectsConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		changed KeysChanged
		key     string
		want    bool
	}{
		{"exact key", KeysChanged{KeyBinaryPath}, KeyBinaryPath, true},
		{"parent section changed", KeysChanged{"podman"}, KeyBinaryPath, true},
		{"child key changed", KeysChanged{KeyBinaryPath}, "podman.binary", true},
		{"unrelated key", KeysChanged{KeyAssetsDir}, KeyBinaryPath, false},
		{"shared prefix is not a section", KeysChanged{"podman.binary.pathx"}, KeyBinaryPath, false},
		{"no changes", nil, KeyBinaryPath, false},
		{"one of many", KeysChanged{KeyInstallerSilent, KeyBinaryPath}, KeyBinaryPath, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.changed.AffectsConfiguration(tt.key))
		})
	}
}

type mapSettings map[string]any

func (m mapSettings) Get(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

func (m mapSettings) Update(key string, value any) error {
	m[key] = value
	return nil
}

func TestSettingsValues(t *testing.T) {
	s := mapSettings{
		KeyBinaryPath:      "  /opt/podman/bin/podman ",
		KeyInstallerSilent: true,
		KeyAssetsDir:       42,
	}

	assert.Equal(t, "/opt/podman/bin/podman", String(s, KeyBinaryPath))
	assert.Equal(t, "", String(s, KeyAssetsDir))
	assert.Equal(t, "", String(s, "missing"))
	assert.True(t, Bool(s, KeyInstallerSilent))
	assert.False(t, Bool(s, "missing"))

	assert.NoError(t, s.Update(KeyInstallerSilent, "true"))
	assert.True(t, Bool(s, KeyInstallerSilent))
}
