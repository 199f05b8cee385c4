package cmd

import (
	"github.com/spf13/cobra"
	"github.com/vzhukovs/podman-desktop-sub003/cli"
	"github.com/vzhukovs/podman-desktop-sub003/cmd/root"
)

var updateCmdArgs struct {
	Yes bool
}

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:     "update",
	Aliases: []string{"u", "up"},
	Short:   "update Podman",
	Long:    `Update an existing Podman installation with the bundled installer.`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !updateCmdArgs.Yes && !cli.Prompt("The Podman installer will be launched to update Podman, continue") {
			return nil
		}

		ctx, cancel := signalContext(cmd)
		defer cancel()

		a := newApp()
		defer a.Close()
		return a.Update(ctx)
	},
}

func init() {
	root.Cmd().AddCommand(updateCmd)
	updateCmd.Flags().BoolVarP(&updateCmdArgs.Yes, "yes", "y", false, "do not prompt for confirmation")
}
