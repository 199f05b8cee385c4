package installer

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/vzhukovs/podman-desktop-sub003/check"
	"github.com/vzhukovs/podman-desktop-sub003/check/catalog"
	"github.com/vzhukovs/podman-desktop-sub003/config"
	"github.com/vzhukovs/podman-desktop-sub003/environment"
	"github.com/vzhukovs/podman-desktop-sub003/util/fsutil"
	"github.com/vzhukovs/podman-desktop-sub003/util/terminal"
)

// Operation is an installer operation.
type Operation string

const (
	OperationInstall Operation = "install"
	OperationUpdate  Operation = "update"
)

// Installer installs Podman on a platform.
type Installer interface {
	// Platform returns the platform of the installer.
	Platform() string
	// Install launches the installer and returns if Podman got installed.
	// A cancelled install returns false without an error.
	Install(ctx context.Context, progress terminal.Reporter) (bool, error)
	// Update updates an existing installation.
	Update(ctx context.Context, progress terminal.Reporter) (bool, error)
	// Artifact returns the installer artifact that would be launched.
	Artifact() (string, error)
	// PreflightChecks returns the checks that must pass before Install.
	PreflightChecks() []check.Check
	// UpdatePreflightChecks returns the checks that must pass before Update.
	UpdatePreflightChecks() []check.Check
}

// Plan is the installation plan of a platform.
type Plan struct {
	// Candidates are the artifact file names in order of preference.
	Candidates []string
	Install    []check.Check
	Update     []check.Check
}

// Deps are the dependencies of the installers.
type Deps struct {
	Exec     environment.Executor
	FS       fsutil.FileSystem
	Settings config.Settings
	Catalog  catalog.Catalog
	Arch     environment.Arch
	// Version is the version of the bundled installer.
	Version string
	// AssetsDir is the directory of the bundled installers when not configured.
	AssetsDir string
}

func (d Deps) assetsDir() string {
	if d.Settings != nil {
		if dir := config.String(d.Settings, config.KeyAssetsDir); dir != "" {
			return dir
		}
	}
	return d.AssetsDir
}

// resolve returns the first of the plan's candidates present in the assets directory.
func (d Deps) resolve(p Plan) (string, error) {
	dir := d.assetsDir()
	var paths []string
	for _, name := range p.Candidates {
		path := filepath.Join(dir, name)
		if fsutil.Exists(d.FS, path) {
			return path, nil
		}
		paths = append(paths, path)
	}
	return "", &ArtifactNotFoundError{Candidates: paths}
}

// ForPlatform returns the installer for the platform goos.
func ForPlatform(goos string, deps Deps) (Installer, error) {
	if deps.FS == nil {
		deps.FS = fsutil.FS
	}
	if deps.Arch == "" {
		deps.Arch = environment.HostArch()
	}

	switch goos {
	case "darwin":
		return newMacOS(deps), nil
	case "windows":
		return newWindows(deps), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
}
