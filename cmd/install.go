package cmd

import (
	"github.com/spf13/cobra"
	"github.com/vzhukovs/podman-desktop-sub003/cli"
	"github.com/vzhukovs/podman-desktop-sub003/cmd/root"
)

var installCmdArgs struct {
	Yes bool
}

// installCmd represents the install command
var installCmd = &cobra.Command{
	Use:   "install",
	Short: "install Podman",
	Long: `Install Podman with the bundled installer.

The install preflight checks must pass before the installer is launched.
The installer is looked up in the directory of the 'installer.assets.dir' setting.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !installCmdArgs.Yes && !cli.Prompt("The Podman installer will be launched to install Podman, continue") {
			return nil
		}

		ctx, cancel := signalContext(cmd)
		defer cancel()

		a := newApp()
		defer a.Close()
		return a.Install(ctx)
	},
}

func init() {
	root.Cmd().AddCommand(installCmd)
	installCmd.Flags().BoolVarP(&installCmdArgs.Yes, "yes", "y", false, "do not prompt for confirmation")
}
