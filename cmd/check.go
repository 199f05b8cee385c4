package cmd

import (
	"github.com/spf13/cobra"
	"github.com/vzhukovs/podman-desktop-sub003/app"
	"github.com/vzhukovs/podman-desktop-sub003/cmd/root"
)

var checkCmdArgs struct {
	Install bool
	Update  bool
}

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "run the Podman checks",
	Long: `Run the checks that detect if Podman is usable.

The checks that run before an install or update can be run with --install and --update.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		checks := app.ChecksDetection
		switch {
		case checkCmdArgs.Install:
			checks = app.ChecksInstall
		case checkCmdArgs.Update:
			checks = app.ChecksUpdate
		}

		ctx, cancel := signalContext(cmd)
		defer cancel()

		a := newApp()
		defer a.Close()
		return a.Check(ctx, checks)
	},
}

func init() {
	root.Cmd().AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&checkCmdArgs.Install, "install", false, "run the install preflight checks")
	checkCmd.Flags().BoolVar(&checkCmdArgs.Update, "update", false, "run the update preflight checks")
	checkCmd.MarkFlagsMutuallyExclusive("install", "update")
}
