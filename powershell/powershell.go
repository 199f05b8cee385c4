// Package powershell provides Windows capability probes backed by PowerShell.
package powershell

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vzhukovs/podman-desktop-sub003/environment"
)

// Command is the PowerShell executable.
const Command = "powershell.exe"

const (
	tokenTrue    = "True"
	tokenRunning = "Running"
	tokenEnabled = "Enabled"
)

const (
	scriptIsUserAdmin        = `$null -ne (whoami /groups /fo csv | ConvertFrom-Csv | Where-Object {$_.SID -eq "S-1-5-32-544"})`
	scriptIsRunningElevated  = `([Security.Principal.WindowsPrincipal][Security.Principal.WindowsIdentity]::GetCurrent()).IsInRole([Security.Principal.WindowsBuiltInRole]::Administrator)`
	scriptIsHyperVInstalled  = `@(Get-Service vmms -ErrorAction SilentlyContinue).Count -eq 1`
	scriptIsHyperVRunning    = `@(Get-Service vmms -ErrorAction SilentlyContinue).Status`
	scriptIsVirtualMachineOn = `(Get-WindowsOptionalFeature -Online -FeatureName VirtualMachinePlatform).State`
)

// Client runs capability probes.
// A probe that cannot be run or returns unexpected output reports false.
type Client struct {
	exec environment.Executor
	log  *logrus.Entry
}

// New creates a new PowerShell client.
func New(exec environment.Executor) *Client {
	return &Client{
		exec: exec,
		log:  logrus.WithField("context", "powershell"),
	}
}

// IsUserAdmin returns if the current user is a member of the Administrators group.
func (c *Client) IsUserAdmin(ctx context.Context) bool {
	return c.probe(ctx, scriptIsUserAdmin, tokenTrue)
}

// IsRunningElevated returns if the current process runs with administrator privileges.
func (c *Client) IsRunningElevated(ctx context.Context) bool {
	return c.probe(ctx, scriptIsRunningElevated, tokenTrue)
}

// IsHyperVInstalled returns if the Hyper-V management service is installed.
func (c *Client) IsHyperVInstalled(ctx context.Context) bool {
	return c.probe(ctx, scriptIsHyperVInstalled, tokenTrue)
}

// IsHyperVRunning returns if the Hyper-V management service is running.
func (c *Client) IsHyperVRunning(ctx context.Context) bool {
	return c.probe(ctx, scriptIsHyperVRunning, tokenRunning)
}

// IsVirtualMachineAvailable returns if the Virtual Machine Platform feature is enabled.
func (c *Client) IsVirtualMachineAvailable(ctx context.Context) bool {
	return c.probe(ctx, scriptIsVirtualMachineOn, tokenEnabled)
}

func (c *Client) probe(ctx context.Context, script, token string) bool {
	res, err := c.exec.Exec(ctx, Command,
		"-NoProfile",
		"-NonInteractive",
		"-ExecutionPolicy", "Bypass",
		"-Command", script,
	)
	if err != nil {
		c.log.Debugf("probe failed: %v", err)
		return false
	}

	return strings.TrimSpace(res.Stdout) == token
}
