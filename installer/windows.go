package installer

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vzhukovs/podman-desktop-sub003/check"
	"github.com/vzhukovs/podman-desktop-sub003/config"
	"github.com/vzhukovs/podman-desktop-sub003/environment"
	"github.com/vzhukovs/podman-desktop-sub003/util/terminal"
)

// Exit codes of the Windows Installer.
const (
	// ExitCodeUserCancelled is ERROR_INSTALL_USEREXIT, the user cancelled the installation.
	ExitCodeUserCancelled = 1602
	// ExitCodeInstallFailure is ERROR_INSTALL_FAILURE, a fatal error during installation.
	ExitCodeInstallFailure = 1603
)

const windowsSetup = "podman-setup.exe"

var _ Installer = (*windowsInstaller)(nil)

type windowsInstaller struct {
	deps Deps
	plan Plan
	log  *logrus.Entry
}

func newWindows(deps Deps) *windowsInstaller {
	var candidates []string
	if deps.Version != "" {
		candidates = append(candidates, fmt.Sprintf("podman-%s-setup.exe", deps.Version))
	}
	candidates = append(candidates, windowsSetup)

	return &windowsInstaller{
		deps: deps,
		plan: Plan{
			Candidates: candidates,
			Install:    deps.Catalog.InstallPreflight(),
			Update:     deps.Catalog.UpdatePreflight(),
		},
		log: logrus.WithField("context", "installer"),
	}
}

func (w *windowsInstaller) Platform() string { return "windows" }

func (w *windowsInstaller) Artifact() (string, error) { return w.deps.resolve(w.plan) }

func (w *windowsInstaller) PreflightChecks() []check.Check { return w.plan.Install }

func (w *windowsInstaller) UpdatePreflightChecks() []check.Check { return w.plan.Update }

// args returns the arguments of the setup executable.
func (w *windowsInstaller) args() []string {
	args := []string{"/install", "/norestart"}
	if w.deps.Settings != nil && config.Bool(w.deps.Settings, config.KeyInstallerSilent) {
		args = append(args, "/quiet")
	}
	return args
}

// Install runs the setup executable.
// A cancelled install is not an error, any other non-zero exit code is.
func (w *windowsInstaller) Install(ctx context.Context, progress terminal.Reporter) (bool, error) {
	if _, err := w.launch(ctx, progress); err != nil {
		return false, err
	}
	return true, nil
}

// launch runs the setup executable and returns if the user cancelled it.
func (w *windowsInstaller) launch(ctx context.Context, progress terminal.Reporter) (cancelled bool, err error) {
	progress.Report(5)

	exe, err := w.Artifact()
	if err != nil {
		return false, err
	}
	w.log.Debugf("launching installer %s", exe)

	if _, err := w.deps.Exec.Exec(ctx, exe, w.args()...); err != nil {
		code, ok := environment.ExitCode(err)
		if !ok || !tolerated(code) {
			return false, err
		}
		cancelled = code == ExitCodeUserCancelled
	}
	progress.Report(80)

	return cancelled, nil
}

// Update runs the setup executable, it upgrades an existing installation.
func (w *windowsInstaller) Update(ctx context.Context, progress terminal.Reporter) (bool, error) {
	return w.Install(ctx, progress)
}

func tolerated(code int) bool {
	return code == 0 || code == ExitCodeUserCancelled
}
