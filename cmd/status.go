package cmd

import (
	"github.com/spf13/cobra"
	"github.com/vzhukovs/podman-desktop-sub003/cmd/root"
)

var statusCmdArgs struct {
	Watch bool
}

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "show the status of Podman",
	Long: `Show the status of Podman and the result of the detection checks.

With --watch, the status is displayed again whenever the binary path setting changes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext(cmd)
		defer cancel()

		a := newApp()
		defer a.Close()

		if statusCmdArgs.Watch {
			return a.Watch(ctx)
		}
		return a.Status(ctx)
	},
}

func init() {
	root.Cmd().AddCommand(statusCmd)
	statusCmd.Flags().BoolVarP(&statusCmdArgs.Watch, "watch", "w", false, "watch for settings changes")
}
