package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/vzhukovs/podman-desktop-sub003/util/fsutil"
)

// EnvHome overrides the configuration directory.
const EnvHome = "PODMANCTL_HOME"

// requiredDir is a directory that must exist on the filesystem
type requiredDir struct {
	once sync.Once

	// dir is a func to enable deferring the value of the directory
	// until execution time.
	// if dir() returns an error, a fatal error is triggered.
	dir func() (string, error)

	computedDir *string
}

// Dir returns the directory path.
// It ensures the directory is created on the filesystem by calling
// `mkdir` prior to returning the directory path.
func (r *requiredDir) Dir() string {
	if r.computedDir != nil {
		return *r.computedDir
	}

	dir, err := r.dir()
	if err != nil {
		logrus.Fatal(fmt.Errorf("cannot fetch required directory: %w", err))
	}

	r.once.Do(func() {
		if err := fsutil.MkdirAll(dir, 0755); err != nil {
			logrus.Fatal(fmt.Errorf("cannot make required directory: %w", err))
		}
	})

	r.computedDir = &dir
	return dir
}

var configDir = requiredDir{
	dir: func() (string, error) {
		if dir := os.Getenv(EnvHome); dir != "" {
			return dir, nil
		}

		dir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "."+AppName), nil
	},
}

// Dir returns the configuration directory.
func Dir() string { return configDir.Dir() }

// AssetsDir returns the default directory for bundled installers.
func AssetsDir() string { return filepath.Join(Dir(), "assets") }

const settingsFileName = "settings.yaml"

// SettingsFile returns the path to the settings file.
func SettingsFile() string { return filepath.Join(Dir(), settingsFileName) }

// StoreFile returns the path to the internal state file.
func StoreFile() string { return filepath.Join(Dir(), "store.json") }
