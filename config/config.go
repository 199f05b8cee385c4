package config

import (
	"strings"
)

// AppName is the application name.
const AppName = "podmanctl"

// Version is the application version.
type Version struct {
	Version  string
	Revision string
}

// set at build time with ldflags
var (
	appVersion = "development"
	revision   = "unknown"
)

// AppVersion returns the application version.
func AppVersion() Version {
	return Version{Version: appVersion, Revision: revision}
}

// Settings keys.
const (
	// KeyBinaryPath is the path to the podman binary.
	// Extra arguments may follow the path.
	KeyBinaryPath = "podman.binary.path"
	// KeyAssetsDir is the directory containing bundled installers.
	KeyAssetsDir = "installer.assets.dir"
	// KeyInstallerSilent runs the Windows installer without UI.
	KeyInstallerSilent = "installer.silent"
)

// Defaults are the default values of the settings.
func Defaults() map[string]any {
	return map[string]any{
		KeyBinaryPath:      "",
		KeyAssetsDir:       "",
		KeyInstallerSilent: false,
	}
}

// Settings is the configuration boundary.
type Settings interface {
	// Get retrieves the value for key.
	Get(key string) (any, bool)
	// Update sets the value for key and persists it.
	Update(key string, value any) error
}

// String retrieves key from s as a string.
func String(s Settings, key string) string {
	v, ok := s.Get(key)
	if !ok || v == nil {
		return ""
	}
	if str, ok := v.(string); ok {
		return strings.TrimSpace(str)
	}
	return ""
}

// Bool retrieves key from s as a bool.
func Bool(s Settings, key string) bool {
	v, ok := s.Get(key)
	if !ok {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b == "true"
	}
	return false
}

// ChangeEvent describes a change to the settings.
type ChangeEvent interface {
	// AffectsConfiguration returns if the change affects key
	// or any of its parent or child sections.
	AffectsConfiguration(key string) bool
}

// Listener receives change events.
type Listener func(ChangeEvent)

// Subscription is a registered listener.
type Subscription interface {
	Dispose()
}

// ChangeNotifier delivers settings change events.
type ChangeNotifier interface {
	OnDidChangeConfiguration(Listener) Subscription
}

// KeysChanged is a ChangeEvent for a set of changed keys.
type KeysChanged []string

// AffectsConfiguration implements ChangeEvent.
func (k KeysChanged) AffectsConfiguration(key string) bool {
	for _, changed := range k {
		switch {
		case changed == key:
			return true
		case strings.HasPrefix(changed, key+"."):
			return true
		case strings.HasPrefix(key, changed+"."):
			return true
		}
	}
	return false
}
