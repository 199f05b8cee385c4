package installer

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vzhukovs/podman-desktop-sub003/check"
	"github.com/vzhukovs/podman-desktop-sub003/environment"
	"github.com/vzhukovs/podman-desktop-sub003/util/fsutil"
	"github.com/vzhukovs/podman-desktop-sub003/util/terminal"
)

// MacOSBinaryPath is the location of the binary installed by the macOS package.
const MacOSBinaryPath = "/opt/podman/bin/podman"

const macOSUniversalPackage = "podman-installer-macos-universal.pkg"

// macOSPackage returns the package name for the architecture.
func macOSPackage(arch environment.Arch) string {
	name := "amd64"
	if arch.Value() == environment.AARCH64 {
		name = "aarch64"
	}
	return fmt.Sprintf("podman-installer-macos-%s.pkg", name)
}

var _ Installer = (*macOSInstaller)(nil)

type macOSInstaller struct {
	deps Deps
	plan Plan
	log  *logrus.Entry
}

func newMacOS(deps Deps) *macOSInstaller {
	return &macOSInstaller{
		deps: deps,
		plan: Plan{
			Candidates: []string{macOSPackage(deps.Arch), macOSUniversalPackage},
			Install:    deps.Catalog.InstallPreflight(),
			Update:     deps.Catalog.UpdatePreflight(),
		},
		log: logrus.WithField("context", "installer"),
	}
}

func (m *macOSInstaller) Platform() string { return "darwin" }

func (m *macOSInstaller) Artifact() (string, error) { return m.deps.resolve(m.plan) }

func (m *macOSInstaller) PreflightChecks() []check.Check { return m.plan.Install }

func (m *macOSInstaller) UpdatePreflightChecks() []check.Check { return m.plan.Update }

// Install opens the package with the macOS installer and waits for it to close.
// A package that cannot be opened is an error. A successful exit is not
// reliable as a cancelled install reports success, the installed binary is
// checked instead.
func (m *macOSInstaller) Install(ctx context.Context, progress terminal.Reporter) (bool, error) {
	progress.Report(5)

	pkg, err := m.Artifact()
	if err != nil {
		return false, err
	}
	m.log.Debugf("launching installer %s", pkg)

	_, err = m.deps.Exec.Exec(ctx, "open", "-W", pkg)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return false, ctxErr
	}
	if err != nil {
		return false, fmt.Errorf("error launching installer: %w", err)
	}
	progress.Report(80)

	return fsutil.Exists(m.deps.FS, MacOSBinaryPath), nil
}

// Update runs the installer, the package upgrades an existing installation.
func (m *macOSInstaller) Update(ctx context.Context, progress terminal.Reporter) (bool, error) {
	return m.Install(ctx, progress)
}
