// Package catalog assembles the checks for each platform.
package catalog

import (
	"context"

	"github.com/docker/go-units"
	"github.com/vzhukovs/podman-desktop-sub003/binary"
	"github.com/vzhukovs/podman-desktop-sub003/check"
	"github.com/vzhukovs/podman-desktop-sub003/environment"
	"github.com/vzhukovs/podman-desktop-sub003/util"
)

// MinimumVersion is the minimum supported Podman version.
const MinimumVersion = "5.2.0"

// Documentation links.
var (
	InstallationLink   = check.DocLink{Title: "Podman installation", URL: "https://podman.io/docs/installation"}
	WindowsLink        = check.DocLink{Title: "Podman on Windows", URL: "https://github.com/containers/podman/blob/main/docs/tutorials/podman-for-windows.md"}
	HyperVLink         = check.DocLink{Title: "Enable Hyper-V", URL: "https://learn.microsoft.com/virtualization/hyper-v-on-windows/quick-start/enable-hyper-v"}
	VirtualMachineLink = check.DocLink{Title: "Enable Virtual Machine Platform", URL: "https://learn.microsoft.com/windows/wsl/install-manual#step-3---enable-virtual-machine-feature"}
)

// Install requirements.
const (
	MacOSMinCPUs     = 4
	MacOSMinMemory   = 4 * units.GiB
	MacOSMinDisk     = 10 * units.GiB
	MacOSMinVersion  = "13.0.0"
	WindowsMinBuild  = "19043"
	WindowsMinMemory = 5 * units.GiB
)

// Capabilities are the Windows capability probes.
type Capabilities interface {
	IsUserAdmin(ctx context.Context) bool
	IsRunningElevated(ctx context.Context) bool
	IsHyperVInstalled(ctx context.Context) bool
	IsVirtualMachineAvailable(ctx context.Context) bool
}

// Deps are the dependencies of the checks.
type Deps struct {
	Binary       binary.Source
	Exec         environment.Executor
	// Capabilities are required on Windows, capability checks fail without them.
	Capabilities Capabilities
	// DataDir is the directory checked for free disk space.
	DataDir string
}

// Catalog is the ordered checks of a platform.
// Preflight checks are memoized, the same Catalog should be reused across retries.
// Detection checks reflect the current state and are not memoized.
type Catalog struct {
	detection []check.Check
	install   []check.Check
	update    []check.Check
}

// Detection returns the checks that determine if Podman is usable.
// They are not memoized, each execution reflects the current installation.
func (c Catalog) Detection() []check.Check { return c.detection }

// InstallPreflight returns the checks that must pass before installing.
func (c Catalog) InstallPreflight() []check.Check { return c.install }

// UpdatePreflight returns the checks that must pass before updating.
func (c Catalog) UpdatePreflight() []check.Check { return c.update }

// For returns the catalog for the platform goos.
// Platforms without an installer only have detection checks.
func For(goos string, deps Deps) Catalog {
	var c Catalog
	c.detection = []check.Check{
		check.MinimumVersion(deps.Binary, MinimumVersion, InstallationLink),
	}

	switch goos {
	case "darwin":
		c.install = []check.Check{
			check.CPUCores(MacOSMinCPUs),
			check.Memory(MacOSMinMemory),
			check.OSVersion("macOS "+MacOSMinVersion+" or newer", func(ctx context.Context) (string, error) {
				return util.MacOSProductVersion(ctx, deps.Exec)
			}, MacOSMinVersion, InstallationLink),
			check.DiskSpace(deps.DataDir, MacOSMinDisk),
		}
		c.update = []check.Check{
			check.Installed(deps.Binary, InstallationLink),
		}

	case "windows":
		caps := deps.Capabilities
		if caps == nil {
			caps = noCapabilities{}
		}
		c.install = []check.Check{
			check.Arch64(WindowsLink),
			check.OSVersion("Windows build "+WindowsMinBuild+" or newer", util.WindowsBuild, WindowsMinBuild, WindowsLink),
			check.Memory(WindowsMinMemory),
			check.Capability("Administrator rights",
				"The installation requires administrator rights, run as a user in the Administrators group or from an elevated prompt.",
				nil,
				caps.IsUserAdmin, caps.IsRunningElevated),
			check.Capability("Virtual Machine Platform",
				"The Virtual Machine Platform feature must be enabled.",
				[]check.DocLink{VirtualMachineLink},
				caps.IsVirtualMachineAvailable),
			check.Capability("Hyper-V",
				"Hyper-V must be installed.",
				[]check.DocLink{HyperVLink},
				caps.IsHyperVInstalled),
		}
		c.update = []check.Check{
			check.Installed(deps.Binary, InstallationLink),
		}
	}

	c.install = memoize(c.install)
	c.update = memoize(c.update)
	return c
}

func memoize(checks []check.Check) []check.Check {
	for i, c := range checks {
		checks[i] = check.Memoize(c)
	}
	return checks
}

// noCapabilities reports every capability as absent.
type noCapabilities struct{}

func (noCapabilities) IsUserAdmin(context.Context) bool { return false }

func (noCapabilities) IsRunningElevated(context.Context) bool { return false }

func (noCapabilities) IsHyperVInstalled(context.Context) bool { return false }

func (noCapabilities) IsVirtualMachineAvailable(context.Context) bool { return false }
